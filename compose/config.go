package compose

import "fmt"

// Config 描述一次排版运行的全部页面参数，构造后不再修改。
// 所有长度均以 CSS 像素为单位（96dpi），与最终 HTML/渲染输出保持同一坐标系。
type Config struct {
	PageWidth  float64 `json:"pageWidth"`  // A4 宽度 210mm ≈ 794px
	PageHeight float64 `json:"pageHeight"` // A4 高度 297mm ≈ 1123px

	MarginLeft   float64 `json:"marginLeft"`
	MarginTop    float64 `json:"marginTop"`
	MarginRight  float64 `json:"marginRight"`
	MarginBottom float64 `json:"marginBottom"`

	// 文字区域：逐行铺排发生在这个矩形内。
	TextAreaWidth  float64 `json:"textAreaWidth"`
	TextAreaHeight float64 `json:"textAreaHeight"`

	HeaderHeight float64 `json:"headerHeight"`
	FooterHeight float64 `json:"footerHeight"`

	FontFamily string  `json:"fontFamily"`
	FontSizePt float64 `json:"fontSizePt"`
	TitleColor string  `json:"titleColor"`

	LineHeight      float64 `json:"lineHeight"`      // 正文行槽高度
	TitleLineHeight float64 `json:"titleLineHeight"` // 标题槽高度（占两行计数）
	ParagraphIndent float64 `json:"paragraphIndent"` // 段首缩进，约 2em

	FirstPageLines  int `json:"firstPageLines"`
	NormalPageLines int `json:"normalPageLines"`

	// MaxPages 是排版页数的安全上限，超过视为内部不变式被破坏。
	MaxPages int `json:"maxPages"`
}

// DefaultConfig 返回按 A4 纸与微软雅黑 15.9pt 校准的默认配置。
func DefaultConfig() Config {
	return Config{
		PageWidth:  794,
		PageHeight: 1123,

		MarginLeft:   48,
		MarginTop:    71,
		MarginRight:  48,
		MarginBottom: 71,

		TextAreaWidth:  698,
		TextAreaHeight: 972,

		HeaderHeight: 30,
		FooterHeight: 30,

		FontFamily: `"Microsoft YaHei", "微软雅黑", sans-serif`,
		FontSizePt: 15.9,
		TitleColor: "#A60000",

		LineHeight:      36,
		TitleLineHeight: 72,
		ParagraphIndent: 43.6,

		FirstPageLines:  27,
		NormalPageLines: 27,

		MaxPages: 20,
	}
}

// FontSizePx 把字号从 pt 换算成 CSS 像素（96dpi）。
func (c Config) FontSizePx() float64 { return c.FontSizePt * 96.0 / 72.0 }

// Capacity 返回指定页码的行槽预算，第一页允许与普通页不同。
func (c Config) Capacity(pageNumber int) int {
	if pageNumber == 1 {
		return c.FirstPageLines
	}
	return c.NormalPageLines
}

// Validate 校验配置，尺寸或预算非正即为配置错误。
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"pageWidth", c.PageWidth},
		{"pageHeight", c.PageHeight},
		{"textAreaWidth", c.TextAreaWidth},
		{"textAreaHeight", c.TextAreaHeight},
		{"fontSizePt", c.FontSizePt},
		{"lineHeight", c.LineHeight},
		{"titleLineHeight", c.TitleLineHeight},
		{"firstPageLines", float64(c.FirstPageLines)},
		{"normalPageLines", float64(c.NormalPageLines)},
		{"maxPages", float64(c.MaxPages)},
	}
	for _, ck := range checks {
		if ck.value <= 0 {
			return fmt.Errorf("%w：%s = %g", ErrInvalidConfig, ck.name, ck.value)
		}
	}
	if c.ParagraphIndent < 0 {
		return fmt.Errorf("%w：paragraphIndent = %g", ErrInvalidConfig, c.ParagraphIndent)
	}
	if c.ParagraphIndent >= c.TextAreaWidth {
		return fmt.Errorf("%w：段首缩进 %g 不小于文字区域宽度 %g", ErrInvalidConfig, c.ParagraphIndent, c.TextAreaWidth)
	}
	return nil
}

package compose

import "fmt"

// 该文件定义排版输入与输出的数据结构，供铺排、HTML 输出与调试 JSON 共用。

// BlockKind 是内容块类型的封闭集合。
type BlockKind int

const (
	Heading1 BlockKind = iota
	Heading2
	Paragraph
)

// String 返回与原始标记语法对应的短名。
func (k BlockKind) String() string {
	switch k {
	case Heading1:
		return "h1"
	case Heading2:
		return "h2"
	case Paragraph:
		return "paragraph"
	}
	return fmt.Sprintf("BlockKind(%d)", int(k))
}

// ContentBlock 是解析器产出的一个内容块。块创建后不可修改：
// 段落跨页拆分时生成新的续行块，而不是原地改写。
type ContentBlock struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
	// IsContinuation 仅在段落被分页器拆分后为真，续行段落不再缩进。
	IsContinuation bool `json:"isContinuation,omitempty"`
}

// LineStyle 是产出行样式的封闭集合，对应 HTML 输出的固定 CSS 类。
type LineStyle int

const (
	TitleMain    LineStyle = iota // bt1：一级标题，占两个行槽
	TitleSection                  // bt2：二级标题，占两个行槽
	ParaFirst                     // zw1：段首行，带缩进
	ParaMiddle                    // zw2：段中行，两端对齐
	ParaLast                      // zw3：段末行，左对齐
)

// CSSClass 返回该样式在页面模板中的 CSS 类名。
func (s LineStyle) CSSClass() string {
	switch s {
	case TitleMain:
		return "bt1"
	case TitleSection:
		return "bt2"
	case ParaFirst:
		return "zw1"
	case ParaMiddle:
		return "zw2"
	case ParaLast:
		return "zw3"
	}
	return ""
}

// SlotCount 返回该样式占用的行槽数，标题占两个。
func (s LineStyle) SlotCount() int {
	switch s {
	case TitleMain, TitleSection:
		return 2
	}
	return 1
}

// Indented 报告该样式是否带段首缩进。
func (s LineStyle) Indented() bool { return s == ParaFirst }

// String 返回样式的 CSS 类名，便于日志与测试输出。
func (s LineStyle) String() string {
	if c := s.CSSClass(); c != "" {
		return c
	}
	return fmt.Sprintf("LineStyle(%d)", int(s))
}

// titleStyle 把标题块类型映射到对应的行样式。
func titleStyle(k BlockKind) LineStyle {
	if k == Heading1 {
		return TitleMain
	}
	return TitleSection
}

// LayoutLine 是铺排产出的一行，创建后不再修改。
// Width 为包含缩进的实测渲染宽度，Utilization = Width / 文字区域宽度。
type LayoutLine struct {
	Text        string    `json:"text"`
	Style       LineStyle `json:"style"`
	Width       float64   `json:"width"`
	Utilization float64   `json:"utilization"`
	// Index 是该行在页内占用的首个行槽号（从 1 开始）。
	Index int `json:"index"`
	// Label 是行号展示文本：标题为 "n+m"（两个槽），正文为槽号本身。
	Label string `json:"label"`
}

// Page 是铺排完成的一页。LineCount 与 RemainingCapacity 以行槽计数，
// 标题行计两个槽，因此 LineCount 恒不超过该页预算。
type Page struct {
	Lines             []LayoutLine `json:"lines"`
	Number            int          `json:"number"`
	LineCount         int          `json:"lineCount"`
	RemainingCapacity int          `json:"remainingCapacity"`
}

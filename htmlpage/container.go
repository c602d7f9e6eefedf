// Package htmlpage 把铺排结果装进 A4 页面容器并输出完整 HTML 文档。
// 行样式映射为固定 CSS 类（bt1/bt2/zw1/zw2/zw3），行号写入 data-line
// 属性供排查分页问题，页面尺寸与铺排配置共用同一套像素值。
package htmlpage

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/ByLCY/manuscript/binding"
	"github.com/ByLCY/manuscript/compose"
)

// Options 控制 HTML 文档的外观与附属信息。
type Options struct {
	// Title 为 <title> 与 ${title} 占位符取值，为空时用默认标题。
	Title string
	// HeaderText 是页眉文本，支持 ${page}/${pages}/${title} 占位符。
	HeaderText string
	// FooterText 是页脚文本，为空时用默认的页码样式。
	FooterText string
	// ShowDebugPanel 在右上角显示配置信息浮层。
	ShowDebugPanel bool
	// ShowPageBorders 给文字区域画虚线边框，便于核对行槽位置。
	ShowPageBorders bool
}

const defaultTitle = "手写稿排版文档"
const defaultFooter = "第 ${page} 页 / 共 ${pages} 页"

type lineView struct {
	Class string
	Label string
	Text  string
}

type pageView struct {
	Number int
	Header string
	Footer string
	Lines  []lineView
}

type debugView struct {
	PageSize    string
	TextArea    string
	Margins     string
	Font        string
	LineHeight  string
	FirstPage   int
	NormalPage  int
	GeneratedAt string
}

type docView struct {
	Title string
	Style template.CSS
	Debug *debugView
	Pages []pageView
}

var docTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>{{.Style}}</style>
</head>
<body>
{{- with .Debug}}
<div class="debug-info">
<strong>页面容器信息</strong><br>
页面尺寸: {{.PageSize}}<br>
文字区域: {{.TextArea}}<br>
页面边距: {{.Margins}}<br>
字体设置: {{.Font}}<br>
行高: {{.LineHeight}}<br>
第一页: {{.FirstPage}}行<br>
普通页: {{.NormalPage}}行<br>
生成时间: {{.GeneratedAt}}
</div>
{{- end}}
{{- range .Pages}}
<div class="page">
<div class="page-header">{{.Header}}</div>
<div class="text-area">
{{- range .Lines}}
<div class="{{.Class}}" data-line="{{.Label}}">{{.Text}}</div>
{{- end}}
</div>
<div class="page-footer">{{.Footer}}</div>
</div>
{{- end}}
</body>
</html>
`))

// Render 把页面序列写成完整 HTML 文档。
func Render(w io.Writer, pages []compose.Page, cfg compose.Config, opts Options) error {
	title := opts.Title
	if title == "" {
		title = defaultTitle
	}
	footer := opts.FooterText
	if footer == "" {
		footer = defaultFooter
	}

	views := make([]pageView, 0, len(pages))
	for _, page := range pages {
		data := binding.PageData(page.Number, len(pages), title)

		lines := make([]lineView, 0, len(page.Lines))
		for _, line := range page.Lines {
			lines = append(lines, lineView{
				Class: line.Style.CSSClass(),
				Label: line.Label,
				Text:  line.Text,
			})
		}
		views = append(views, pageView{
			Number: page.Number,
			Header: binding.Interpolate(opts.HeaderText, data),
			Footer: binding.Interpolate(footer, data),
			Lines:  lines,
		})
	}

	doc := docView{
		Title: title,
		Style: styleSheet(cfg, opts),
		Pages: views,
	}
	if opts.ShowDebugPanel {
		doc.Debug = &debugView{
			PageSize:    fmt.Sprintf("%g×%gpx", cfg.PageWidth, cfg.PageHeight),
			TextArea:    fmt.Sprintf("%g×%gpx", cfg.TextAreaWidth, cfg.TextAreaHeight),
			Margins:     fmt.Sprintf("左%g 上%g 右%g 下%g", cfg.MarginLeft, cfg.MarginTop, cfg.MarginRight, cfg.MarginBottom),
			Font:        fmt.Sprintf("%gpt %s", cfg.FontSizePt, cfg.FontFamily),
			LineHeight:  fmt.Sprintf("%gpx", cfg.LineHeight),
			FirstPage:   cfg.FirstPageLines,
			NormalPage:  cfg.NormalPageLines,
			GeneratedAt: time.Now().Format("15:04:05"),
		}
	}
	return docTemplate.Execute(w, doc)
}

// RenderString 是 Render 的字符串便捷形式。
func RenderString(pages []compose.Page, cfg compose.Config, opts Options) (string, error) {
	var buf strings.Builder
	if err := Render(&buf, pages, cfg, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// styleSheet 按配置生成样式表。字体族里的引号会被模板的 CSS 过滤器
// 拒绝，所以整张表通过 fmt 拼好后作为受信 CSS 注入；配置值全部来自
// 代码内常量或数值，不含用户输入。
func styleSheet(cfg compose.Config, opts Options) template.CSS {
	textAreaBorder := "none"
	if opts.ShowPageBorders {
		textAreaBorder = "1px dashed #ccc"
	}

	return template.CSS(fmt.Sprintf(`
* { margin: 0; padding: 0; box-sizing: border-box; }

body {
  font-family: %[1]s;
  font-size: %[2]gpt;
  line-height: %[3]gpx;
  background-color: #f0f0f0;
  padding: 20px;
  color: #333;
}

.page {
  width: %[4]gpx;
  height: %[5]gpx;
  background-color: white;
  margin: 0 auto 20px auto;
  box-shadow: 0 4px 8px rgba(0,0,0,0.1);
  position: relative;
  page-break-after: always;
}

.text-area {
  position: absolute;
  left: %[6]gpx;
  top: %[7]gpx;
  width: %[8]gpx;
  height: %[9]gpx;
  font-size: %[2]gpt;
  line-height: %[3]gpx;
  font-weight: normal;
  border: %[10]s;
}

.page-header {
  position: absolute;
  top: %[11]gpx;
  left: %[6]gpx;
  right: %[12]gpx;
  height: %[13]gpx;
  text-align: center;
  font-size: 12pt;
  color: #666;
  line-height: %[13]gpx;
}

.page-footer {
  position: absolute;
  bottom: %[14]gpx;
  left: %[6]gpx;
  right: %[12]gpx;
  height: %[15]gpx;
  text-align: center;
  font-size: 10pt;
  color: #999;
  line-height: %[15]gpx;
}

.bt1, .bt2 {
  font-weight: bold;
  color: %[16]s;
  height: %[17]gpx;
  line-height: %[17]gpx;
  text-align: left !important;
  text-align-last: left !important;
}

.zw1, .zw2, .zw3 {
  font-weight: normal;
  height: %[3]gpx;
  line-height: %[3]gpx;
  text-align: justify;
  text-align-last: justify;
  word-spacing: 0.1em;
  letter-spacing: 0.02em;
}

.zw1 { text-indent: %[18]gpx; }

.zw2 { text-indent: 0; }

.zw3 {
  text-indent: 0;
  text-align: left !important;
  text-align-last: left !important;
  word-spacing: normal;
  letter-spacing: normal;
}

.debug-info {
  position: fixed;
  top: 10px;
  right: 10px;
  background: rgba(0,0,0,0.9);
  color: white;
  padding: 15px;
  border-radius: 8px;
  font-size: 11px;
  z-index: 1000;
  max-width: 300px;
}

@media print {
  body { background: white; padding: 0; }
  .page { margin: 0; box-shadow: none; page-break-after: always; }
  .text-area { border: none; }
  .debug-info { display: none; }
}
`,
		cfg.FontFamily,
		cfg.FontSizePt,
		cfg.LineHeight,
		cfg.PageWidth,
		cfg.PageHeight,
		cfg.MarginLeft,
		cfg.MarginTop,
		cfg.TextAreaWidth,
		cfg.TextAreaHeight,
		textAreaBorder,
		cfg.MarginTop-40,
		cfg.MarginRight,
		cfg.HeaderHeight,
		cfg.MarginBottom-40,
		cfg.FooterHeight,
		cfg.TitleColor,
		cfg.TitleLineHeight,
		cfg.ParagraphIndent,
	))
}

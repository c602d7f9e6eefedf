// Package canvasrenderer 通过 github.com/tdewolff/canvas 把铺排结果
// 绘制为 PDF 与 PNG。铺排坐标以 CSS 像素（96dpi）表示，画布以毫米
// 表示，换算只发生在本包边界。
package canvasrenderer

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/manuscript/binding"
	"github.com/ByLCY/manuscript/compose"
	"github.com/ByLCY/manuscript/render"
)

// pxToMm 把 CSS 像素换算为毫米。
const pxToMm = 25.4 / 96.0

// pngDPMM 让位图输出与铺排像素一一对应（96dpi）。
const pngDPMM = 96.0 / 25.4

// defaultFontCandidates 按优先级列出可承载中文正文的系统字体文件名，
// 通过 go-findfont 在系统字体目录中查找。
var defaultFontCandidates = []string{
	"msyh.ttc",
	"msyh.ttf",
	"simhei.ttf",
	"simsun.ttc",
	"NotoSansCJK-Regular.ttc",
	"NotoSansSC-Regular.otf",
	"NotoSansSC-Regular.ttf",
	"wqy-microhei.ttc",
	"DejaVuSans.ttf",
}

// Options 配置画布渲染器。
type Options struct {
	// FontPath 指定字体文件，为空时按默认候选表在系统中查找。
	FontPath string
	// HeaderText、FooterText 支持 ${page}/${pages}/${title} 占位符。
	HeaderText string
	FooterText string
	// Title 为占位符 ${title} 取值，同时写入 PDF 元数据。
	Title string
}

// Renderer 是基于 canvas 的渲染器，字体族懒加载并缓存。
type Renderer struct {
	opts Options

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer 构造画布渲染器。字体在首次渲染时才加载，
// 找不到可用字体会在渲染时报错而非构造时。
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// RenderPDF 把全部页面渲染成一份 PDF。
func (r *Renderer) RenderPDF(pages []compose.Page, cfg compose.Config) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	widthMm := cfg.PageWidth * pxToMm
	heightMm := cfg.PageHeight * pxToMm

	var buf bytes.Buffer
	writer := pdf.New(&buf, widthMm, heightMm, nil)
	writer.SetInfo(r.opts.Title, "", "", "", "")

	for i, page := range pages {
		if i > 0 {
			writer.NewPage(widthMm, heightMm)
		}
		c, err := r.drawPage(page, len(pages), cfg)
		if err != nil {
			return nil, err
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG 逐页渲染为 PNG，分辨率与铺排像素一致。
func (r *Renderer) RenderPNG(pages []compose.Page, cfg compose.Config) ([][]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	writePNG := renderers.PNG(canvas.DPMM(pngDPMM))
	out := make([][]byte, 0, len(pages))
	for _, page := range pages {
		c, err := r.drawPage(page, len(pages), cfg)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := writePNG(&buf, c); err != nil {
			return nil, fmt.Errorf("写入第 %d 页 PNG 失败: %w", page.Number, err)
		}
		out = append(out, buf.Bytes())
	}
	return out, nil
}

// drawPage 在一张新画布上绘制单页：页眉、正文行、页脚。
// 画布坐标取左上角为原点，与铺排坐标一致。
func (r *Renderer) drawPage(page compose.Page, totalPages int, cfg compose.Config) (*canvas.Canvas, error) {
	family, err := r.ensureFamily()
	if err != nil {
		return nil, err
	}

	c := canvas.New(cfg.PageWidth*pxToMm, cfg.PageHeight*pxToMm)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	// 白色页面底色。
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(cfg.PageWidth*pxToMm, cfg.PageHeight*pxToMm))

	data := binding.PageData(page.Number, totalPages, r.opts.Title)

	bodyFace := family.Face(cfg.FontSizePt, canvas.Hex("#333333"), canvas.FontRegular, canvas.FontNormal)
	titleFace := family.Face(cfg.FontSizePt, canvas.Hex(cfg.TitleColor), canvas.FontBold, canvas.FontNormal)

	if r.opts.HeaderText != "" {
		headerFace := family.Face(12, canvas.Hex("#666666"), canvas.FontRegular, canvas.FontNormal)
		r.drawCenteredText(ctx, binding.Interpolate(r.opts.HeaderText, data), headerFace, cfg,
			(cfg.MarginTop-40)*pxToMm, cfg.HeaderHeight*pxToMm)
	}

	footer := r.opts.FooterText
	if footer == "" {
		footer = "第 ${page} 页 / 共 ${pages} 页"
	}
	footerFace := family.Face(10, canvas.Hex("#999999"), canvas.FontRegular, canvas.FontNormal)
	r.drawCenteredText(ctx, binding.Interpolate(footer, data), footerFace, cfg,
		(cfg.PageHeight-cfg.MarginBottom+40-cfg.FooterHeight)*pxToMm, cfg.FooterHeight*pxToMm)

	// 正文行：按行槽推进游标，标题槽高是正文的两倍。
	cursorY := cfg.MarginTop * pxToMm
	for _, line := range page.Lines {
		slotHeight := cfg.LineHeight * pxToMm
		face := bodyFace
		x := cfg.MarginLeft
		switch line.Style {
		case compose.TitleMain, compose.TitleSection:
			slotHeight = cfg.TitleLineHeight * pxToMm
			face = titleFace
		case compose.ParaFirst:
			x += cfg.ParagraphIndent
		}

		if line.Text != "" {
			metrics := face.Metrics()
			baseline := cursorY + (slotHeight-metrics.LineHeight)/2 + metrics.Ascent
			ctx.DrawText(x*pxToMm, baseline, canvas.NewTextLine(face, line.Text, canvas.Left))
		}
		cursorY += slotHeight
	}
	return c, nil
}

// drawCenteredText 在指定高度条带内水平居中、垂直居中绘制一行文本。
func (r *Renderer) drawCenteredText(ctx *canvas.Context, text string, face *canvas.FontFace, cfg compose.Config, topMm, heightMm float64) {
	if text == "" {
		return
	}
	metrics := face.Metrics()
	baseline := topMm + (heightMm-metrics.LineHeight)/2 + metrics.Ascent
	anchorX := (cfg.MarginLeft + cfg.TextAreaWidth/2) * pxToMm
	ctx.DrawText(anchorX, baseline, canvas.NewTextLine(face, text, canvas.Center))
}

// ensureFamily 懒加载字体族。只加载一个字体文件，粗体交给 canvas 的
// 样式合成；混排场景下避免多字体族的基线不一致。
func (r *Renderer) ensureFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if r.family != nil {
		return r.family, nil
	}

	path, err := r.locateFont()
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("manuscript")
	if err := family.LoadFontFile(path, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", path, err)
	}
	r.family = family
	return family, nil
}

// locateFont 返回第一个能找到的字体文件路径。
func (r *Renderer) locateFont() (string, error) {
	if r.opts.FontPath != "" {
		return r.opts.FontPath, nil
	}

	var tried []string
	for _, name := range defaultFontCandidates {
		path, err := findfont.Find(name)
		if err == nil {
			return path, nil
		}
		tried = append(tried, name)
	}
	return "", fmt.Errorf("系统中找不到可用字体（尝试过：%s）", strings.Join(tried, ", "))
}

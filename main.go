package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/manuscript/compose"
	"github.com/ByLCY/manuscript/htmlpage"
	"github.com/ByLCY/manuscript/markdown"
	"github.com/ByLCY/manuscript/render"
	canvasrenderer "github.com/ByLCY/manuscript/render/canvas"
)

func main() {
	input := flag.String("in", "examples/report.md", "Markdown 文件路径")
	outDir := flag.String("outdir", "output", "输出目录")
	name := flag.String("name", "", "输出文件名（不含扩展名），默认取输入文件名")
	title := flag.String("title", "", "文档标题，默认取输入文件名")
	header := flag.String("header", "${title}", "页眉文本，支持 ${page}/${pages}/${title}")
	fontPath := flag.String("font", "", "渲染 PDF/PNG 使用的字体文件路径")
	pdfOut := flag.Bool("pdf", false, "同时输出 PDF")
	pngOut := flag.Bool("png", false, "同时逐页输出 PNG")
	debug := flag.Bool("debug", false, "输出铺排调试 JSON 并在 HTML 中显示调试面板")
	verbose := flag.Bool("v", false, "打印每页铺排进度")
	flag.Parse()

	base := *name
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(*input), filepath.Ext(*input))
	}
	docTitle := *title
	if docTitle == "" {
		docTitle = base
	}

	var r render.Renderer
	if *pdfOut || *pngOut {
		r = canvasrenderer.NewRenderer(canvasrenderer.Options{
			FontPath:   *fontPath,
			HeaderText: *header,
			Title:      docTitle,
		})
	}

	if err := run(*input, *outDir, base, docTitle, *header, *debug, *verbose, r, *pdfOut, *pngOut); err != nil {
		log.Fatalf("排版失败: %v", err)
	}
}

// run 串联解析、铺排与输出：HTML 必出，PDF/PNG 按需。
func run(inputPath, outDir, base, title, header string, debug, verbose bool, r render.Renderer, pdfOut, pngOut bool) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开 Markdown 文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	blocks, err := markdown.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 Markdown 失败: %w", err)
	}
	if verbose {
		log.Printf("解析出 %d 个内容块", len(blocks))
	}

	cfg := compose.DefaultConfig()
	opts := compose.Options{}
	if verbose {
		opts.Trace = func(e compose.PageEvent) {
			log.Printf("第 %d 页铺排完成：%d 行，剩余 %d 槽，待排 %d 块",
				e.Page, e.LineCount, e.RemainingCapacity, e.PendingBlocks)
		}
	}

	composer, err := compose.NewComposer(cfg, opts)
	if err != nil {
		return err
	}
	pages, err := composer.ComposeDocument(blocks)
	if err != nil {
		return fmt.Errorf("铺排失败: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	htmlPath := filepath.Join(outDir, base+".html")
	htmlFile, err := os.Create(htmlPath)
	if err != nil {
		return fmt.Errorf("创建 HTML 文件失败: %w", err)
	}
	err = htmlpage.Render(htmlFile, pages, cfg, htmlpage.Options{
		Title:          title,
		HeaderText:     header,
		ShowDebugPanel: debug,
	})
	if cerr := htmlFile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("输出 HTML 失败: %w", err)
	}
	fmt.Printf("已生成 HTML：%s\n", htmlPath)

	if debug {
		debugPath := filepath.Join(outDir, base+".layout.json")
		if err := compose.WriteDebugJSON(pages, cfg, debugPath); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
		fmt.Printf("已生成调试 JSON：%s\n", debugPath)
	}

	if r == nil {
		return nil
	}

	if pdfOut {
		pdfPath := filepath.Join(outDir, base+".pdf")
		pdfBytes, err := r.RenderPDF(pages, cfg)
		if err != nil {
			return fmt.Errorf("渲染 PDF 失败: %w", err)
		}
		if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
			return fmt.Errorf("写入 PDF 文件失败: %w", err)
		}
		fmt.Printf("已生成 PDF：%s\n", pdfPath)
	}

	if pngOut {
		images, err := r.RenderPNG(pages, cfg)
		if err != nil {
			return fmt.Errorf("渲染 PNG 失败: %w", err)
		}
		for i, data := range images {
			pngPath := filepath.Join(outDir, fmt.Sprintf("%s_page%d.png", base, i+1))
			if err := os.WriteFile(pngPath, data, 0o644); err != nil {
				return fmt.Errorf("写入 PNG 文件失败: %w", err)
			}
		}
		fmt.Printf("已生成 %d 张 PNG：%s\n", len(images), outDir)
	}
	return nil
}

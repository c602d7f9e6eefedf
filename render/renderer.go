// Package render 定义铺排结果到最终文件（PDF、图像）的输出接口。
package render

import "github.com/ByLCY/manuscript/compose"

// Renderer 将铺排好的页面绘制成最终文件。
// RenderPDF 返回整份文档的 PDF 字节；RenderPNG 每页返回一张图。
type Renderer interface {
	RenderPDF(pages []compose.Page, cfg compose.Config) ([]byte, error)
	RenderPNG(pages []compose.Page, cfg compose.Config) ([][]byte, error)
}

// Package markdown 解析手写稿使用的 Markdown 子集：
// "# "/"## " 标题与空行分隔的段落。分隔线与引用行被忽略。
package markdown

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/manuscript/compose"
)

var (
	markdownLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "H2", Pattern: `[ \t]*##[ \t][^\n]*`},
		{Name: "H1", Pattern: `[ \t]*#[ \t][^\n]*`},
		{Name: "Divider", Pattern: `[ \t]*-{3,}[ \t]*`},
		{Name: "Quote", Pattern: `[ \t]*>[^\n]*`},
		{Name: "Line", Pattern: `[^\n]+`},
		{Name: "Newline", Pattern: `\n`},
	})

	documentParser = participle.MustBuild[document](
		participle.Lexer(markdownLexer),
	)
)

// document 是解析出的原始节点序列，转换为内容块前还需一次后处理。
type document struct {
	Nodes []*node `parser:"( @@ | Newline )*"`
}

// node 对应源文件中的一个结构单元。段落节点收集相邻的普通行，
// 行与行之间至多隔一个换行；空行会结束当前段落节点。
type node struct {
	H1      *string  `parser:"  @H1"`
	H2      *string  `parser:"| @H2"`
	Divider *string  `parser:"| @Divider"`
	Quote   *string  `parser:"| @Quote"`
	Para    []string `parser:"| ( @Line Newline? )+"`
}

// Parse 从 io.Reader 解析 Markdown 内容块序列。
func Parse(r io.Reader) ([]compose.ContentBlock, error) {
	doc, err := documentParser.Parse("", r)
	if err != nil {
		return nil, err
	}
	return toBlocks(doc), nil
}

// ParseString 从字符串解析 Markdown 内容块序列。
func ParseString(input string) ([]compose.ContentBlock, error) {
	doc, err := documentParser.ParseString("", input)
	if err != nil {
		return nil, err
	}
	return toBlocks(doc), nil
}

// toBlocks 把语法节点整理成内容块：标题去掉记号，分隔线与引用丢弃，
// 段落内的行去除首尾空白后直接拼接（中文语义，行间不补空格），
// 纯空白行把一个段落节点拆成多个段落。
func toBlocks(doc *document) []compose.ContentBlock {
	var blocks []compose.ContentBlock

	appendParagraph := func(buf *strings.Builder) {
		if buf.Len() == 0 {
			return
		}
		blocks = append(blocks, compose.ContentBlock{
			Kind: compose.Paragraph,
			Text: buf.String(),
		})
		buf.Reset()
	}

	for _, n := range doc.Nodes {
		switch {
		case n.H1 != nil:
			blocks = append(blocks, compose.ContentBlock{
				Kind: compose.Heading1,
				Text: headingText(*n.H1),
			})
		case n.H2 != nil:
			blocks = append(blocks, compose.ContentBlock{
				Kind: compose.Heading2,
				Text: headingText(*n.H2),
			})
		case n.Divider != nil, n.Quote != nil:
			// 忽略

		case len(n.Para) > 0:
			var buf strings.Builder
			for _, line := range n.Para {
				trimmed := strings.TrimSpace(line)
				if trimmed == "" {
					appendParagraph(&buf)
					continue
				}
				buf.WriteString(trimmed)
			}
			appendParagraph(&buf)
		}
	}
	return blocks
}

// headingText 去掉标题记号与两侧空白。
func headingText(raw string) string {
	return strings.TrimLeft(strings.TrimSpace(raw), "# \t")
}

package compose

import (
	"fmt"
	"strconv"
	"strings"
)

// Composer 模拟手写稿纸的逐行铺排：像人写字一样一行一行写，
// 一行写满换行，一页写满换页。标题整体占两个行槽且不跨页，
// 段落可以在页边界拆成续行块。
type Composer struct {
	cfg     Config
	widths  *WidthModel
	breaker *LineBreaker
	trace   TraceFunc
}

// NewComposer 校验配置并构造铺排器。
func NewComposer(cfg Config, opts Options) (*Composer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	metrics := MetricsForFont(cfg.FontSizePx())
	if opts.Metrics != nil {
		metrics = *opts.Metrics
	}
	hyph := opts.Hyphenator
	if hyph == nil {
		hyph = DefaultHyphenator()
	}

	widths := NewWidthModel(metrics)
	return &Composer{
		cfg:     cfg,
		widths:  widths,
		breaker: NewLineBreaker(cfg, widths, hyph),
		trace:   opts.Trace,
	}, nil
}

// Widths 暴露铺排器使用的宽度模型，供渲染侧做一致性测量。
func (c *Composer) Widths() *WidthModel { return c.widths }

// ComposeDocument 逐页铺排直至内容块耗尽。页数超过安全上限视为
// 内部不变式被破坏（排版循环失去前进性），整体失败而非静默截断。
func (c *Composer) ComposeDocument(blocks []ContentBlock) ([]Page, error) {
	pending := append([]ContentBlock(nil), blocks...)
	var pages []Page

	pageNumber := 1
	for len(pending) > 0 {
		if pageNumber > c.cfg.MaxPages {
			return nil, fmt.Errorf("%w：已铺排 %d 页仍剩 %d 个内容块",
				ErrCompositionOverrun, len(pages), len(pending))
		}

		page, rest, err := c.ComposePage(pending, pageNumber)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
		pending = rest

		if c.trace != nil {
			c.trace(PageEvent{
				Page:              page.Number,
				LineCount:         page.LineCount,
				RemainingCapacity: page.RemainingCapacity,
				PendingBlocks:     len(pending),
			})
		}
		pageNumber++
	}
	return pages, nil
}

// ComposePage 铺排一页：从队列头依次取块，页满或队列空时收束。
// 返回该页与剩余队列；队列不被原地修改，段落拆分产生新的续行块
// 放在剩余队列的头部。
func (c *Composer) ComposePage(blocks []ContentBlock, pageNumber int) (Page, []ContentBlock, error) {
	capacity := c.cfg.Capacity(pageNumber)
	queue := blocks

	var lines []LayoutLine
	used := 0

fill:
	for len(queue) > 0 && used < capacity {
		block := queue[0]

		switch block.Kind {
		case Heading1, Heading2:
			// 标题需要两个连续行槽且不可拆分；放不下就整块留给下一页。
			if used+2 > capacity {
				break fill
			}
			lines = append(lines, c.titleLine(block, used+1))
			used += 2
			queue = queue[1:]

		case Paragraph:
			paraLines, remainder := c.fillParagraph(block, used, capacity)
			lines = append(lines, paraLines...)
			used += len(paraLines)

			if remainder != "" {
				// 段落没写完：用剩余文本生成续行块顶替原块，
				// 下一页从它继续（不缩进）。
				cont := ContentBlock{Kind: Paragraph, Text: remainder, IsContinuation: true}
				rest := make([]ContentBlock, 0, len(queue))
				rest = append(rest, cont)
				rest = append(rest, queue[1:]...)
				queue = rest
				break fill
			}
			queue = queue[1:]

		default:
			return Page{}, nil, fmt.Errorf("%w：%v", ErrUnknownBlockKind, block.Kind)
		}
	}

	page := Page{
		Lines:             lines,
		Number:            pageNumber,
		LineCount:         used,
		RemainingCapacity: capacity - used,
	}
	return page, queue, nil
}

// titleLine 生成标题行。标题不折行，占槽 n 与 n+1，行号展示为 "n+m"。
func (c *Composer) titleLine(block ContentBlock, slot int) LayoutLine {
	text := strings.TrimSpace(block.Text)
	w := c.widths.TextWidth(text)
	utilization := 0.0
	if c.cfg.TextAreaWidth > 0 {
		utilization = w / c.cfg.TextAreaWidth
	}
	return LayoutLine{
		Text:        text,
		Style:       titleStyle(block.Kind),
		Width:       w,
		Utilization: utilization,
		Index:       slot,
		Label:       fmt.Sprintf("%d+%d", slot, slot+1),
	}
}

// fillParagraph 在剩余行槽内逐行装填段落，返回装出的行与未消费文本。
// 首行带缩进（续行块除外）；装完剩余文本清空的那一行改为段末样式。
func (c *Composer) fillParagraph(block ContentBlock, used, capacity int) ([]LayoutLine, string) {
	remaining := strings.TrimSpace(block.Text)
	first := !block.IsContinuation

	var lines []LayoutLine
	for remaining != "" && used+len(lines) < capacity {
		style := ParaMiddle
		if first {
			style = ParaFirst
		}

		text, rest, width, utilization := c.breaker.FillLine(remaining, style)
		if text == "" && rest == "" {
			// 剩余内容只是空白，段落到此结束。
			remaining = ""
			break
		}
		if rest == "" {
			style = ParaLast
		}

		slot := used + len(lines) + 1
		lines = append(lines, LayoutLine{
			Text:        text,
			Style:       style,
			Width:       width,
			Utilization: utilization,
			Index:       slot,
			Label:       strconv.Itoa(slot),
		})
		remaining = rest
		first = false
	}
	return lines, remaining
}

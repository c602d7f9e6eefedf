package compose

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// testComposerConfig 返回每行 10 个全角字符、每页 5 个行槽的小配置，
// 便于手算期望页面。
func testComposerConfig() Config {
	cfg := DefaultConfig()
	cfg.TextAreaWidth = 100
	cfg.ParagraphIndent = 20
	cfg.FirstPageLines = 5
	cfg.NormalPageLines = 5
	cfg.MaxPages = 4
	return cfg
}

func newTestComposer(t *testing.T, cfg Config) *Composer {
	t.Helper()
	c, err := NewComposer(cfg, Options{Metrics: testMetrics()})
	if err != nil {
		t.Fatalf("构造铺排器失败：%v", err)
	}
	return c
}

func TestComposeSingleLineParagraph(t *testing.T) {
	c := newTestComposer(t, testComposerConfig())

	pages, err := c.ComposeDocument([]ContentBlock{
		{Kind: Paragraph, Text: "你好世界"},
	})
	if err != nil {
		t.Fatalf("铺排失败：%v", err)
	}
	if len(pages) != 1 || len(pages[0].Lines) != 1 {
		t.Fatalf("期望 1 页 1 行，实际 %d 页", len(pages))
	}

	line := pages[0].Lines[0]
	// 单行段落既是段首也是段末：缩进生效，样式取段末。
	if line.Style != ParaLast {
		t.Errorf("单行段落样式：期望 %v，实际 %v", ParaLast, line.Style)
	}
	if !almostEqual(line.Width, 60) {
		t.Errorf("单行段落宽度应含缩进：期望 60，实际 %g", line.Width)
	}
	if line.Index != 1 || line.Label != "1" {
		t.Errorf("行槽编号错误：index=%d label=%q", line.Index, line.Label)
	}
}

func TestComposeParagraphStyles(t *testing.T) {
	c := newTestComposer(t, testComposerConfig())

	// 28 个字：缩进行 8 + 整行 10 + 末行 10。
	pages, err := c.ComposeDocument([]ContentBlock{
		{Kind: Paragraph, Text: strings.Repeat("字", 28)},
	})
	if err != nil {
		t.Fatalf("铺排失败：%v", err)
	}

	lines := pages[0].Lines
	if len(lines) != 3 {
		t.Fatalf("期望 3 行，实际 %d", len(lines))
	}
	wantStyles := []LineStyle{ParaFirst, ParaMiddle, ParaLast}
	for i, want := range wantStyles {
		if lines[i].Style != want {
			t.Errorf("第 %d 行样式：期望 %v，实际 %v", i+1, want, lines[i].Style)
		}
	}
	for i, line := range lines {
		if line.Index != i+1 {
			t.Errorf("第 %d 行槽号错误：%d", i+1, line.Index)
		}
	}
}

func TestComposeHeadingSlots(t *testing.T) {
	c := newTestComposer(t, testComposerConfig())

	pages, err := c.ComposeDocument([]ContentBlock{
		{Kind: Heading1, Text: "总标题"},
		{Kind: Heading2, Text: "小节"},
		{Kind: Paragraph, Text: "正文"},
	})
	if err != nil {
		t.Fatalf("铺排失败：%v", err)
	}

	lines := pages[0].Lines
	if len(lines) != 3 {
		t.Fatalf("期望 3 行，实际 %d", len(lines))
	}
	if lines[0].Style != TitleMain || lines[0].Label != "1+2" {
		t.Errorf("一级标题应占槽 1、2：style=%v label=%q", lines[0].Style, lines[0].Label)
	}
	if lines[1].Style != TitleSection || lines[1].Label != "3+4" {
		t.Errorf("二级标题应占槽 3、4：style=%v label=%q", lines[1].Style, lines[1].Label)
	}
	if lines[2].Index != 5 {
		t.Errorf("正文应落在槽 5，实际 %d", lines[2].Index)
	}
	if pages[0].LineCount != 5 || pages[0].RemainingCapacity != 0 {
		t.Errorf("行槽核算错误：used=%d remaining=%d", pages[0].LineCount, pages[0].RemainingCapacity)
	}
}

func TestComposeHeadingDeferredToNextPage(t *testing.T) {
	c := newTestComposer(t, testComposerConfig())

	// 38 个字占满 4 个行槽（8+10+10+10），页面只剩 1 槽放不下标题。
	pages, err := c.ComposeDocument([]ContentBlock{
		{Kind: Paragraph, Text: strings.Repeat("字", 38)},
		{Kind: Heading1, Text: "新章节"},
	})
	if err != nil {
		t.Fatalf("铺排失败：%v", err)
	}

	if len(pages) != 2 {
		t.Fatalf("标题应顺延到第 2 页，实际共 %d 页", len(pages))
	}
	if pages[0].LineCount != 4 || pages[0].RemainingCapacity != 1 {
		t.Errorf("第 1 页应留 1 个空槽：used=%d remaining=%d",
			pages[0].LineCount, pages[0].RemainingCapacity)
	}
	head := pages[1].Lines[0]
	if head.Style != TitleMain || head.Label != "1+2" {
		t.Errorf("顺延标题应从第 2 页槽 1 开始：style=%v label=%q", head.Style, head.Label)
	}
}

func TestComposeParagraphContinuation(t *testing.T) {
	c := newTestComposer(t, testComposerConfig())

	// 60 个字：第 1 页 8+10+10+10+10=48，续行块剩 12 个字。
	pages, err := c.ComposeDocument([]ContentBlock{
		{Kind: Paragraph, Text: strings.Repeat("字", 60)},
	})
	if err != nil {
		t.Fatalf("铺排失败：%v", err)
	}

	if len(pages) != 2 {
		t.Fatalf("期望 2 页，实际 %d", len(pages))
	}
	if pages[0].RemainingCapacity != 0 {
		t.Errorf("第 1 页应排满：remaining=%d", pages[0].RemainingCapacity)
	}

	cont := pages[1].Lines
	if len(cont) != 2 {
		t.Fatalf("第 2 页期望 2 行，实际 %d", len(cont))
	}
	// 续行段落不再缩进：首行是 10 个字的段中行。
	if cont[0].Style != ParaMiddle || !almostEqual(cont[0].Width, 100) {
		t.Errorf("续行首行不应缩进：style=%v width=%g", cont[0].Style, cont[0].Width)
	}
	if cont[1].Style != ParaLast || cont[1].Text != strings.Repeat("字", 2) {
		t.Errorf("段末行错误：style=%v text=%q", cont[1].Style, cont[1].Text)
	}
}

func TestComposeCharacterConservation(t *testing.T) {
	c := newTestComposer(t, testComposerConfig())
	input := strings.Repeat("字", 97)

	pages, err := c.ComposeDocument([]ContentBlock{
		{Kind: Paragraph, Text: input},
	})
	if err != nil {
		t.Fatalf("铺排失败：%v", err)
	}

	var out strings.Builder
	for _, page := range pages {
		for _, line := range page.Lines {
			out.WriteString(line.Text)
		}
	}
	if out.String() != input {
		t.Errorf("纯中文输入的字符应当守恒：输入 %d 字，输出 %d 字",
			len([]rune(input)), len([]rune(out.String())))
	}
}

func TestComposeFirstPageBudget(t *testing.T) {
	cfg := testComposerConfig()
	cfg.FirstPageLines = 3
	c := newTestComposer(t, cfg)

	pages, err := c.ComposeDocument([]ContentBlock{
		{Kind: Paragraph, Text: strings.Repeat("字", 40)},
	})
	if err != nil {
		t.Fatalf("铺排失败：%v", err)
	}

	if pages[0].LineCount != 3 {
		t.Errorf("第 1 页预算 3 槽，实际用了 %d", pages[0].LineCount)
	}
	if len(pages) != 2 || pages[1].LineCount != 2 {
		t.Errorf("第 2 页应按普通预算续排 2 行，实际 %d 页", len(pages))
	}
}

func TestComposeEmptyBlocksSkipped(t *testing.T) {
	c := newTestComposer(t, testComposerConfig())

	pages, err := c.ComposeDocument([]ContentBlock{
		{Kind: Paragraph, Text: "   "},
		{Kind: Paragraph, Text: "正文"},
	})
	if err != nil {
		t.Fatalf("铺排失败：%v", err)
	}
	if len(pages) != 1 || len(pages[0].Lines) != 1 {
		t.Fatalf("空白段落应被跳过且不得死循环：%d 页", len(pages))
	}
	if pages[0].Lines[0].Text != "正文" {
		t.Errorf("产出行错误：%q", pages[0].Lines[0].Text)
	}
}

func TestComposeDoesNotMutateInput(t *testing.T) {
	c := newTestComposer(t, testComposerConfig())
	blocks := []ContentBlock{
		{Kind: Heading1, Text: "标题"},
		{Kind: Paragraph, Text: strings.Repeat("字", 60)},
	}
	snapshot := append([]ContentBlock(nil), blocks...)

	first, err := c.ComposeDocument(blocks)
	if err != nil {
		t.Fatalf("铺排失败：%v", err)
	}
	if !reflect.DeepEqual(blocks, snapshot) {
		t.Errorf("输入内容块不应被原地修改")
	}

	second, err := c.ComposeDocument(blocks)
	if err != nil {
		t.Fatalf("第二次铺排失败：%v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("同一输入两次铺排结果应一致")
	}
}

func TestComposeNarrowLineWithPunct(t *testing.T) {
	// 行宽窄到每行只容一个全角字符时，标点修正不得让装行失去前进性，
	// 否则这段合法输入会被误报为超出页数上限。
	cfg := testComposerConfig()
	cfg.TextAreaWidth = 15
	cfg.ParagraphIndent = 0
	c := newTestComposer(t, cfg)

	pages, err := c.ComposeDocument([]ContentBlock{
		{Kind: Paragraph, Text: "字。字"},
	})
	if err != nil {
		t.Fatalf("铺排失败：%v", err)
	}

	var out strings.Builder
	for _, page := range pages {
		for _, line := range page.Lines {
			if line.Text == "" {
				t.Errorf("第 %d 页出现空文本行", page.Number)
			}
			out.WriteString(line.Text)
		}
	}
	if out.String() != "字。字" {
		t.Errorf("字符应当守恒：%q", out.String())
	}
}

func TestComposeOverrun(t *testing.T) {
	cfg := testComposerConfig()
	cfg.MaxPages = 2
	c := newTestComposer(t, cfg)

	_, err := c.ComposeDocument([]ContentBlock{
		{Kind: Paragraph, Text: strings.Repeat("字", 500)},
	})
	if !errors.Is(err, ErrCompositionOverrun) {
		t.Fatalf("超过页数上限应报 ErrCompositionOverrun，实际 %v", err)
	}
}

func TestComposeUnknownBlockKind(t *testing.T) {
	c := newTestComposer(t, testComposerConfig())

	_, err := c.ComposeDocument([]ContentBlock{
		{Kind: BlockKind(99), Text: "无效"},
	})
	if !errors.Is(err, ErrUnknownBlockKind) {
		t.Fatalf("未知块类型应报 ErrUnknownBlockKind，实际 %v", err)
	}
}

func TestComposeInvalidConfig(t *testing.T) {
	cfg := testComposerConfig()
	cfg.TextAreaWidth = 0

	if _, err := NewComposer(cfg, Options{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("非法配置应报 ErrInvalidConfig，实际 %v", err)
	}
}

func TestComposeTraceEvents(t *testing.T) {
	cfg := testComposerConfig()
	var events []PageEvent
	c, err := NewComposer(cfg, Options{
		Metrics: testMetrics(),
		Trace:   func(e PageEvent) { events = append(events, e) },
	})
	if err != nil {
		t.Fatalf("构造铺排器失败：%v", err)
	}

	pages, err := c.ComposeDocument([]ContentBlock{
		{Kind: Paragraph, Text: strings.Repeat("字", 60)},
	})
	if err != nil {
		t.Fatalf("铺排失败：%v", err)
	}

	if len(events) != len(pages) {
		t.Fatalf("每页应产生一次进度事件：期望 %d，实际 %d", len(pages), len(events))
	}
	last := events[len(events)-1]
	if last.Page != len(pages) || last.PendingBlocks != 0 {
		t.Errorf("末次事件错误：%+v", last)
	}
}

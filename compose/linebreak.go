package compose

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LineBreaker 把剩余文本装进一行：贪心接收记号，必要时对超宽英文
// 单词断词，并保证行首不出现尾随标点。装行永远成功——宽度溢出
// 是活性换来的代价，不作为错误上报。
type LineBreaker struct {
	cfg    Config
	widths *WidthModel
	hyph   *Hyphenator
}

// NewLineBreaker 构造装行器，宽度模型与断词表均由调用方注入。
func NewLineBreaker(cfg Config, widths *WidthModel, hyph *Hyphenator) *LineBreaker {
	return &LineBreaker{cfg: cfg, widths: widths, hyph: hyph}
}

// token 是装行的最小单位：一个全角字符、一个空格、一个尾随标点，
// 或一段连续的其他字符（"单词"）。
type token struct {
	text  string
	class CharClass
}

// tokenize 按字符分类切分文本。全角、空白、尾随标点各自单独成记号，
// 其余字符聚成单词记号。
func (b *LineBreaker) tokenize(text string) []token {
	var tokens []token
	var word strings.Builder

	flushWord := func() {
		if word.Len() == 0 {
			return
		}
		tokens = append(tokens, token{text: word.String(), class: ClassLatin})
		word.Reset()
	}

	for _, r := range text {
		class := b.widths.Classify(r)
		if class == ClassLatin {
			word.WriteRune(r)
			continue
		}
		flushWord()
		tokens = append(tokens, token{text: string(r), class: class})
	}
	flushWord()
	return tokens
}

// FillLine 从 text 头部装出一行。style 决定是否扣除段首缩进。
// 返回 (本行文本, 剩余文本, 实际宽度含缩进, 利用率)。
//
// 前进性保证：只要输入含非空白内容，本调用至少消费一个记号——
// 单个超宽且无法断词的记号会被整个放入本行，避免分页循环空转。
func (b *LineBreaker) FillLine(text string, style LineStyle) (line, remainder string, actualWidth, utilization float64) {
	maxWidth := b.cfg.TextAreaWidth
	indent := 0.0
	if style.Indented() {
		indent = b.cfg.ParagraphIndent
	}
	availableWidth := maxWidth - indent

	if strings.TrimSpace(text) == "" {
		return "", "", indent, 0
	}

	tokens := b.tokenize(text)
	var accepted strings.Builder
	currentWidth := 0.0
	idx := 0

	for idx < len(tokens) {
		tok := tokens[idx]
		tokenWidth := b.widths.TextWidth(tok.text)

		if currentWidth+tokenWidth > availableWidth {
			// 超宽英文单词先尝试断词，首段带连字符留在本行。
			if tok.class == ClassLatin && utf8.RuneCountInString(tok.text) > hyphenMinRunes {
				if fitted, rest, fittedWidth, ok := b.hyph.Split(tok.text, availableWidth-currentWidth, b.widths); ok {
					accepted.WriteString(fitted)
					currentWidth += fittedWidth
					tokens[idx].text = rest
					break
				}
			}
			if currentWidth == 0 {
				// 单个记号独占一行仍放不下：照样放入，保证前进。
				accepted.WriteString(tok.text)
				currentWidth += tokenWidth
				idx++
			}
			break
		}

		accepted.WriteString(tok.text)
		currentWidth += tokenWidth
		idx++
	}

	line = accepted.String()
	var rest strings.Builder
	for _, tok := range tokens[idx:] {
		rest.WriteString(tok.text)
	}
	remainder = rest.String()

	// 段首标点修正：剩余文本以尾随标点开头时，把本行最后一个
	// 非空格非标点字符移到剩余文本前面，保证下一行不以标点起头。
	if r, ok := firstRune(remainder); ok && b.widths.Classify(r) == ClassPunct {
		line, remainder, currentWidth = b.moveOrphanPunct(line, remainder, currentWidth)
	}

	remainder = strings.TrimLeftFunc(remainder, unicode.IsSpace)
	actualWidth = currentWidth + indent
	if maxWidth > 0 {
		utilization = actualWidth / maxWidth
	}
	return line, remainder, actualWidth, utilization
}

// moveOrphanPunct 把 line 末尾最后一个可移动字符挪到 remainder 开头。
// 回移会把本行掏空时放弃修正：前进性优先于标点规则，否则极窄行宽下
// 同一段文本会被反复装行，分页循环原地空转。
func (b *LineBreaker) moveOrphanPunct(line, remainder string, currentWidth float64) (string, string, float64) {
	runes := []rune(line)
	for i := len(runes) - 1; i >= 0; i-- {
		switch b.widths.Classify(runes[i]) {
		case ClassSpace, ClassPunct:
			continue
		}
		rest := string(runes[:i]) + string(runes[i+1:])
		if rest == "" {
			return line, remainder, currentWidth
		}
		moved := runes[i]
		currentWidth -= b.widths.RuneWidth(moved)
		remainder = string(moved) + remainder
		return rest, remainder, currentWidth
	}
	return line, remainder, currentWidth
}

func firstRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}

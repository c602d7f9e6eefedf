package compose

import (
	"unicode"

	"golang.org/x/text/width"
)

// CharClass 是字符宽度模型使用的分类结果。
type CharClass int

const (
	ClassCJK   CharClass = iota // 全角字符，两侧均可断行
	ClassLatin                  // 拉丁字母、数字等按词成组的字符
	ClassPunct                  // 不允许出现在行首的尾随标点
	ClassSpace                  // 空白
)

// trailingPunct 收录中英文尾随标点：这些字符不允许落在行首，
// 分词时单独成记号，断行后若出现在剩余文本开头会触发回移修正。
var trailingPunct = map[rune]bool{}

func init() {
	for _, r := range ".,;:!?):]}，。；：！？）：】》、" {
		trailingPunct[r] = true
	}
}

// Metrics 是字符宽度表。宽度为渲染像素值，与下游渲染器使用的字体
// 必须保持一致，否则计算宽度与实际渲染宽度会悄悄失配。
// 表内容是数据而非算法的一部分，可针对其他字体重新标定后注入。
type Metrics struct {
	CJK     float64          `json:"cjk"`     // 全角字符统一宽度（1em）
	Space   float64          `json:"space"`   // 空格宽度
	Default float64          `json:"default"` // 未收录字形的兜底宽度
	Glyphs  map[rune]float64 `json:"-"`       // 拉丁字形与半角标点的逐字宽度
}

// latinFractions 是以 em 为单位的比例宽度表，按微软雅黑目测标定。
// 不追求字形级精确（见 Metrics 注释），但在正文字号下逐行累计误差
// 足够小，能与浏览器渲染保持同一断行结果。
var latinFractions = map[rune]float64{
	'i': 0.26, 'j': 0.26, 'l': 0.26,
	'f': 0.32, 't': 0.34, 'r': 0.36,
	'a': 0.50, 'b': 0.53, 'c': 0.46, 'd': 0.53, 'e': 0.50,
	'g': 0.53, 'h': 0.52, 'k': 0.48, 'n': 0.52, 'o': 0.53,
	'p': 0.53, 'q': 0.53, 's': 0.44, 'u': 0.52, 'v': 0.48,
	'x': 0.46, 'y': 0.48, 'z': 0.44,
	'm': 0.80, 'w': 0.72,

	'I': 0.28, 'J': 0.42, 'L': 0.50,
	'E': 0.56, 'F': 0.54, 'T': 0.56, 'Z': 0.56,
	'A': 0.62, 'B': 0.60, 'C': 0.62, 'D': 0.66, 'G': 0.68,
	'H': 0.66, 'K': 0.60, 'N': 0.66, 'O': 0.70, 'P': 0.58,
	'Q': 0.70, 'R': 0.60, 'S': 0.54, 'U': 0.66, 'V': 0.60,
	'X': 0.58, 'Y': 0.56,
	'M': 0.84, 'W': 0.90,

	'0': 0.53, '1': 0.53, '2': 0.53, '3': 0.53, '4': 0.53,
	'5': 0.53, '6': 0.53, '7': 0.53, '8': 0.53, '9': 0.53,

	'.': 0.25, ',': 0.25, ';': 0.26, ':': 0.26,
	'!': 0.28, '?': 0.44,
	'(': 0.32, ')': 0.32, '[': 0.32, ']': 0.32,
	'{': 0.32, '}': 0.32,
	'-': 0.34, '\'': 0.20, '"': 0.36, '/': 0.36,
	'%': 0.80, '&': 0.66, '+': 0.56, '=': 0.56, '*': 0.42,
	'_': 0.50, '@': 0.92, '#': 0.56, '$': 0.53,
	'<': 0.56, '>': 0.56,
}

// MetricsForFont 按给定像素字号生成默认宽度表。
func MetricsForFont(fontSizePx float64) Metrics {
	glyphs := make(map[rune]float64, len(latinFractions))
	for r, f := range latinFractions {
		glyphs[r] = f * fontSizePx
	}
	return Metrics{
		CJK:     fontSizePx,
		Space:   0.30 * fontSizePx,
		Default: 0.53 * fontSizePx,
		Glyphs:  glyphs,
	}
}

// WidthModel 在固定字体配置下对字符分类并测量渲染宽度。
// 纯函数式：同一输入永远得到同一结果，不做字距调整与连字处理。
type WidthModel struct {
	metrics Metrics
}

// NewWidthModel 用给定宽度表构造测量模型。
func NewWidthModel(m Metrics) *WidthModel {
	return &WidthModel{metrics: m}
}

// Classify 对单个字符分类。优先级：空白 → 尾随标点 → 全角 → 拉丁。
// 全角判定基于 UAX#11 东亚宽度（Wide/Fullwidth）并兜底汉字区。
func (w *WidthModel) Classify(r rune) CharClass {
	if unicode.IsSpace(r) {
		return ClassSpace
	}
	if trailingPunct[r] {
		return ClassPunct
	}
	if isFullWidth(r) {
		return ClassCJK
	}
	return ClassLatin
}

func isFullWidth(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return unicode.Is(unicode.Han, r)
}

// RuneWidth 返回单个字符的渲染宽度。
func (w *WidthModel) RuneWidth(r rune) float64 {
	switch w.Classify(r) {
	case ClassSpace:
		return w.metrics.Space
	case ClassCJK:
		return w.metrics.CJK
	}
	// 拉丁字符与半角标点查逐字表；全角标点按全角宽度计。
	if isFullWidth(r) {
		return w.metrics.CJK
	}
	if v, ok := w.metrics.Glyphs[r]; ok {
		return v
	}
	return w.metrics.Default
}

// TextWidth 返回字符串的渲染宽度：逐字宽度之和，不含字距与连字。
func (w *WidthModel) TextWidth(s string) float64 {
	total := 0.0
	for _, r := range s {
		total += w.RuneWidth(r)
	}
	return total
}

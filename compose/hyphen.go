package compose

import (
	"sort"
	"strings"
)

// hyphenMinRunes：不超过 6 个字符的单词不做断词。
const hyphenMinRunes = 6

// Hyphenator 为超宽英文单词选择连字符位置。查找顺序：
// 整词拆分表 → 最长已知前缀 → 最长已知后缀 → 取中点（两侧至少 2 字符）。
// 受保护词（专有名词、术语）永不拆分。表内容全部是注入数据，
// 算法本身对表保持通用。
type Hyphenator struct {
	splits    map[string]int
	prefixes  []string // 按长度降序
	suffixes  []string // 按长度降序
	protected map[string]struct{}
}

// NewHyphenator 用给定的数据表构造断词器，词条匹配不区分大小写。
func NewHyphenator(splits map[string]int, prefixes, suffixes, protected []string) *Hyphenator {
	h := &Hyphenator{
		splits:    make(map[string]int, len(splits)),
		prefixes:  append([]string(nil), prefixes...),
		suffixes:  append([]string(nil), suffixes...),
		protected: make(map[string]struct{}, len(protected)),
	}
	for w, pos := range splits {
		h.splits[strings.ToLower(w)] = pos
	}
	for _, w := range protected {
		h.protected[strings.ToLower(w)] = struct{}{}
	}
	byLenDesc := func(ss []string) {
		sort.Slice(ss, func(i, j int) bool { return len(ss[i]) > len(ss[j]) })
	}
	byLenDesc(h.prefixes)
	byLenDesc(h.suffixes)
	return h
}

// DefaultHyphenator 返回面向中英混排技术文稿整理的默认数据表。
func DefaultHyphenator() *Hyphenator {
	splits := map[string]int{
		"chatgpt":        4, // chat-gpt
		"artificial":     4, // arti-ficial
		"intelligence":   5, // intel-ligence
		"transformer":    5, // trans-former
		"deepmind":       4, // deep-mind
		"tensorflow":     6, // tensor-flow
		"pytorch":        2, // py-torch
		"machine":        2, // ma-chine
		"learning":       4, // lear-ning
		"neural":         3, // neu-ral
		"network":        3, // net-work
		"algorithm":      4, // algo-rithm
		"computer":       3, // com-puter
		"technology":     4, // tech-nology
		"development":    6, // develo-pment
		"processing":     4, // proc-essing
		"microsoft":      5, // micro-soft
		"general":        3, // gen-eral
		"system":         3, // sys-tem
		"language":       4, // lang-uage
		"natural":        3, // nat-ural
		"generation":     4, // gene-ration
		"foundation":     4, // foun-dation
		"architecture":   5, // archi-tecture
		"understanding":  5, // under-standing
		"information":    2, // in-formation
		"application":    3, // app-lication
		"optimization":   4, // opti-mization
		"integration":    4, // inte-gration
		"implementation": 2, // im-plementation
		"classification": 5, // class-ification
		"interpretation": 6, // interp-retation
		"representation": 3, // rep-resentation
		"communication":  3, // com-munication
		"recommendation": 3, // rec-ommendation
	}
	prefixes := []string{
		"pre", "pro", "anti", "auto", "co", "de", "dis", "en", "em", "fore",
		"in", "im", "il", "ir", "inter", "mid", "mis", "non", "over", "out",
		"post", "re", "semi", "sub", "super", "trans", "un", "under",
	}
	suffixes := []string{
		"able", "ible", "al", "ial", "ed", "en", "er", "est", "ful", "ic",
		"ing", "ion", "tion", "ation", "ition", "ity", "ty", "ive", "ative",
		"itive", "less", "ly", "ment", "ness", "ous", "eous", "ious",
		"s", "es", "y",
	}
	protected := []string{
		"openai", "google", "deepmind", "chatgpt", "claude", "bert",
		"transformer", "attention", "multihead", "alphafold", "waymo",
		"tesla", "apollo", "pytorch", "tensorflow", "nvidia", "microsoft",
		"artificial", "intelligence", "lamda", "palm",
	}
	return NewHyphenator(splits, prefixes, suffixes, protected)
}

// Protected 报告该词是否禁止拆分。
func (h *Hyphenator) Protected(word string) bool {
	_, ok := h.protected[strings.ToLower(word)]
	return ok
}

// BreakIndex 返回单词的连字符位置（按字符下标，连字符插在其前）。
// 返回值保证两侧至少各留 2 个字符。
func (h *Hyphenator) BreakIndex(word string) int {
	lower := strings.ToLower(word)
	n := len([]rune(lower))

	if pos, ok := h.splits[lower]; ok && pos >= 2 && pos <= n-2 {
		return pos
	}
	for _, p := range h.prefixes {
		if len(p) >= 2 && n-len(p) >= 2 && strings.HasPrefix(lower, p) {
			return len(p)
		}
	}
	for _, s := range h.suffixes {
		if len(s) >= 2 && n-len(s) >= 2 && strings.HasSuffix(lower, s) {
			return n - len(s)
		}
	}

	pos := n / 2
	if pos < 2 {
		pos = 2
	}
	if pos > n-2 {
		pos = n - 2
	}
	return pos
}

// Split 尝试把超宽单词拆为 "首段-" 与余段。仅当单词超过 6 个字符、
// 不受保护且首段加连字符能放进剩余宽度时成功；否则整词顺延到下一行。
func (h *Hyphenator) Split(word string, availableWidth float64, widths *WidthModel) (fitted, rest string, fittedWidth float64, ok bool) {
	runes := []rune(word)
	if len(runes) <= hyphenMinRunes {
		return "", "", 0, false
	}
	if h.Protected(word) {
		return "", "", 0, false
	}

	pos := h.BreakIndex(word)
	fitted = string(runes[:pos]) + "-"
	fittedWidth = widths.TextWidth(fitted)
	if fittedWidth <= availableWidth {
		return fitted, string(runes[pos:]), fittedWidth, true
	}
	return "", "", 0, false
}

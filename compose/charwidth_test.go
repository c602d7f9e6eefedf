package compose

import (
	"math"
	"testing"
)

// testMetrics 是测试专用的整数宽度表：全角 10、空格 3、其余一律 5。
// 断行结果只取决于宽度比例，用整数表可以让期望值一眼算得出来。
func testMetrics() *Metrics {
	return &Metrics{CJK: 10, Space: 3, Default: 5}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClassify(t *testing.T) {
	w := NewWidthModel(*testMetrics())

	tests := []struct {
		r    rune
		want CharClass
	}{
		{'中', ClassCJK},
		{'Ａ', ClassCJK}, // 全角拉丁字母按全角处理
		{'《', ClassCJK}, // 起始引号允许落在行首
		{'a', ClassLatin},
		{'Z', ClassLatin},
		{'7', ClassLatin},
		{'-', ClassLatin},
		{'，', ClassPunct},
		{'。', ClassPunct},
		{'》', ClassPunct},
		{'、', ClassPunct},
		{'.', ClassPunct},
		{'?', ClassPunct},
		{')', ClassPunct},
		{']', ClassPunct},
		{' ', ClassSpace},
		{'\t', ClassSpace},
		{'　', ClassSpace}, // 全角空格优先归类为空白
	}
	for _, tt := range tests {
		if got := w.Classify(tt.r); got != tt.want {
			t.Errorf("Classify(%q)：期望 %v，实际 %v", tt.r, tt.want, got)
		}
	}
}

func TestRuneWidth(t *testing.T) {
	w := NewWidthModel(*testMetrics())

	tests := []struct {
		r    rune
		want float64
	}{
		{'中', 10},
		{'，', 10}, // 全角标点按全角宽度计
		{'。', 10},
		{'a', 5}, // 未收录字形走兜底宽度
		{'.', 5},
		{' ', 3},
	}
	for _, tt := range tests {
		if got := w.RuneWidth(tt.r); !almostEqual(got, tt.want) {
			t.Errorf("RuneWidth(%q)：期望 %g，实际 %g", tt.r, tt.want, got)
		}
	}
}

func TestTextWidth(t *testing.T) {
	w := NewWidthModel(*testMetrics())

	tests := []struct {
		text string
		want float64
	}{
		{"", 0},
		{"中文", 20},
		{"ai", 10},
		{"中a ，", 28}, // 10 + 5 + 3 + 10
	}
	for _, tt := range tests {
		if got := w.TextWidth(tt.text); !almostEqual(got, tt.want) {
			t.Errorf("TextWidth(%q)：期望 %g，实际 %g", tt.text, tt.want, got)
		}
	}
}

func TestMetricsForFont(t *testing.T) {
	m := MetricsForFont(20)

	if !almostEqual(m.CJK, 20) {
		t.Errorf("全角宽度应等于字号：期望 20，实际 %g", m.CJK)
	}
	if !almostEqual(m.Glyphs['i'], 0.26*20) {
		t.Errorf("字形宽度应按字号缩放：期望 %g，实际 %g", 0.26*20, m.Glyphs['i'])
	}
	if m.Glyphs['m'] <= m.Glyphs['i'] {
		t.Errorf("比例宽度表失真：'m'(%g) 应宽于 'i'(%g)", m.Glyphs['m'], m.Glyphs['i'])
	}
	if m.Space <= 0 || m.Default <= 0 {
		t.Errorf("空格与兜底宽度必须为正：space=%g default=%g", m.Space, m.Default)
	}
}

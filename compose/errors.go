package compose

import "errors"

// 排版失败一律整体中止，不会返回残缺的页面序列。
var (
	// ErrInvalidConfig 表示布局配置含有非正尺寸或预算。
	ErrInvalidConfig = errors.New("布局配置无效")

	// ErrUnknownBlockKind 表示内容块类型不在封闭集合内，分页状态已不可定义。
	ErrUnknownBlockKind = errors.New("未知的内容块类型")

	// ErrCompositionOverrun 表示页数超过安全上限，说明排版循环失去前进性。
	ErrCompositionOverrun = errors.New("排版页数超过安全上限")
)

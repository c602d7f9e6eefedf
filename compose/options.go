package compose

// Options 配置铺排器的可注入依赖，零值即可用。
type Options struct {
	// Metrics 覆盖默认字符宽度表（为空时按 Config 字号生成默认表）。
	Metrics *Metrics
	// Hyphenator 覆盖默认断词数据表。
	Hyphenator *Hyphenator
	// Trace 在每页铺排完成后收到一次进度事件。铺排核心保持纯函数，
	// 进度走这条旁路通道，不混入返回值。
	Trace TraceFunc
}

// TraceFunc 接收铺排进度事件。回调在铺排线程内同步执行，应当轻量。
type TraceFunc func(PageEvent)

// PageEvent 描述一页铺排完成时的状态快照。
type PageEvent struct {
	Page              int // 页码
	LineCount         int // 本页占用的行槽数
	RemainingCapacity int // 本页剩余行槽数
	PendingBlocks     int // 队列中尚未排完的内容块数
}

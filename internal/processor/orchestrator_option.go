package processor

import "resume-sense-go/internal/analyzer"

// Option 编排器选项函数类型
type Option func(*Orchestrator)

// WithStore 注入持久化协作方
func WithStore(store AnalysisStore) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithReportCache 注入报告缓存
func WithReportCache(cache ReportCache) Option {
	return func(o *Orchestrator) {
		o.cache = cache
	}
}

// WithEventPublisher 注入事件发布方
func WithEventPublisher(publisher EventPublisher) Option {
	return func(o *Orchestrator) {
		o.publisher = publisher
	}
}

// WithMatcherConfig 覆盖JD匹配器的重要关键词上限与普通重叠权重
func WithMatcherConfig(importantLimit int, generalWeight float64) Option {
	return func(o *Orchestrator) {
		o.matcher = analyzer.NewJDMatcher(importantLimit, generalWeight)
	}
}

// WithFindingLimit 覆盖弱动词建议条目上限
func WithFindingLimit(limit int) Option {
	return func(o *Orchestrator) {
		o.verbs = analyzer.NewPowerVerbAnalyzer(limit)
	}
}

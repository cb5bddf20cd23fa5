package constants

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// AnalysisModulePrefix 分析模块
	AnalysisModulePrefix = "analysis"
	// FileModulePrefix 文件模块
	FileModulePrefix = "file"

	// EntityReport 分析报告实体
	EntityReport = "report"
	// EntityDedupSet 去重集合实体
	EntityDedupSet = "dedup_set"

	// KeyAnalysisReport 组合分析报告缓存 (STRING, JSON值)
	// 格式: app:analysis:report:{resumeMD5}:{jdMD5}，无JD时第二段为"-"
	KeyAnalysisReport = AppPrefix + ":" + AnalysisModulePrefix + ":" + EntityReport + ":%s:%s"

	// KeyFileMD5Set 原始文件MD5集合，用于上传去重 (SET)
	// 格式: app:file:dedup_set
	KeyFileMD5Set = AppPrefix + ":" + FileModulePrefix + ":" + EntityDedupSet
)

package analyzer

// weakVerbs 弱动词到强动词替换建议的静态映射
// 键为基本形(规则变形通过去掉-ed/-s后缀归一)或不规则过去式
// 进程启动时构建一次，之后只读
var weakVerbs = map[string][]string{
	// 不规则过去式直接列出
	"did":     {"executed", "implemented", "accomplished", "achieved"},
	"made":    {"created", "developed", "built", "produced", "established"},
	"got":     {"obtained", "acquired", "secured", "attained"},
	"went":    {"traveled", "attended", "participated"},
	"saw":     {"observed", "monitored", "tracked", "analyzed"},
	"came":    {"arrived", "joined", "entered"},
	"said":    {"stated", "expressed", "articulated", "communicated"},
	"thought": {"analyzed", "evaluated", "considered", "assessed"},
	"knew":    {"understood", "comprehended", "grasped", "mastered"},
	"took":    {"assumed", "undertook", "handled", "managed"},
	"gave":    {"provided", "delivered", "supplied", "furnished"},
	"told":    {"informed", "notified", "advised", "communicated"},
	"met":     {"collaborated", "coordinated", "convened", "engaged"},
	"left":    {"departed", "transitioned", "moved"},
	"kept":    {"maintained", "preserved", "sustained", "retained"},
	"ran":     {"executed", "operated", "administered", "managed"},
	"wrote":   {"authored", "composed", "drafted", "penned"},
	"found":   {"identified", "discovered", "uncovered", "located"},
	"led":     {"spearheaded", "headed", "guided", "championed"},
	"held":    {"maintained", "preserved", "sustained", "retained"},
	"sold":    {"marketed", "promoted", "distributed", "commercialized"},
	"bought":  {"procured", "purchased", "acquired", "sourced"},
	"sent":    {"delivered", "transmitted", "dispatched", "forwarded"},
	"built":   {"constructed", "developed", "engineered", "architected"},
	"taught":  {"trained", "instructed", "educated", "mentored"},
	"heard":   {"listened", "attended", "participated"},
	"felt":    {"perceived", "recognized", "identified", "detected"},
	"became":  {"transformed into", "evolved into", "developed into"},
	"began":   {"initiated", "commenced", "launched", "started"},

	// 规则动词用基本形，helps/helped 这类变形在查找前剥后缀归一
	"help":    {"assisted", "supported", "facilitated", "enabled", "contributed"},
	"work":    {"collaborated", "operated", "functioned", "performed"},
	"use":     {"utilized", "leveraged", "employed", "applied"},
	"fix":     {"resolved", "repaired", "corrected", "remediated"},
	"change":  {"transformed", "modified", "improved", "enhanced"},
	"start":   {"initiated", "launched", "established", "founded"},
	"manage":  {"oversaw", "directed", "orchestrated", "coordinated"},
	"try":     {"attempted", "endeavored", "pursued", "sought"},
	"put":     {"placed", "positioned", "installed", "deployed"},
	"set":     {"established", "configured", "arranged", "organized"},
	"look":    {"examined", "reviewed", "analyzed", "inspected"},
	"ask":     {"inquired", "requested", "solicited", "consulted"},
	"talk":    {"communicated", "presented", "addressed", "conveyed"},
	"show":    {"demonstrated", "exhibited", "illustrated", "presented"},
	"open":    {"launched", "initiated", "established", "introduced"},
	"close":   {"finalized", "completed", "concluded", "wrapped up"},
	"move":    {"relocated", "transferred", "transitioned", "shifted"},
	"stay":    {"maintained", "preserved", "sustained", "retained"},
	"turn":    {"transformed", "converted", "changed", "modified"},
	"pull":    {"extracted", "retrieved", "obtained", "acquired"},
	"push":    {"promoted", "advanced", "propelled", "drove"},
	"bring":   {"delivered", "introduced", "provided", "supplied"},
	"call":    {"contacted", "reached out", "communicated", "connected"},
	"play":    {"performed", "executed", "operated", "functioned"},
	"happen":  {"occurred", "transpired", "took place"},
	"matter":  {"impacted", "influenced", "affected", "contributed"},
	"want":    {"sought", "desired", "aimed for", "pursued"},
	"need":    {"required", "demanded", "necessitated"},
	"learn":   {"mastered", "acquired", "gained expertise in"},
	"receive": {"obtained", "acquired", "attained", "secured"},
	"seem":    {"appeared", "demonstrated", "exhibited"},
	"end":     {"concluded", "finalized", "completed", "wrapped up"},
}

// strongVerbs 强力动词表，出现即计入强动词统计
// 与弱动词命中互斥: 同一词元先查本表，再查弱动词映射
var strongVerbs = map[string]struct{}{
	"achieved": {}, "accomplished": {}, "executed": {}, "implemented": {}, "developed": {},
	"created": {}, "designed": {}, "established": {}, "launched": {},
	"managed": {}, "directed": {}, "oversaw": {}, "coordinated": {},
	"improved": {}, "enhanced": {}, "optimized": {}, "increased": {}, "boosted": {},
	"reduced": {}, "minimized": {}, "resolved": {}, "solved": {}, "delivered": {},
	"produced": {}, "generated": {}, "secured": {}, "obtained": {}, "acquired": {},
	"engineered": {}, "spearheaded": {}, "orchestrated": {}, "streamlined": {}, "automated": {},
}

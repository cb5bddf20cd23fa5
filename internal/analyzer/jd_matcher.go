package analyzer

import (
	"sort"
	"strings"

	"resume-sense-go/internal/types"
	"resume-sense-go/pkg/utils"
)

const (
	// defaultImportantLimit JD重要关键词数量上限
	defaultImportantLimit = 30
	// defaultGeneralWeight 普通关键词重叠权重，重要关键词权重为其补数
	// 重要关键词必须占大头，这是匹配分设计的核心
	defaultGeneralWeight = 0.3

	// 展示用列表的截断上限
	maxDisplayKeywords  = 20
	maxMatchedImportant = 10
)

// JDMatcher 计算简历与JD之间的关键词重叠与加权匹配分
type JDMatcher struct {
	importantLimit int
	generalWeight  float64
}

// NewJDMatcher 创建JD匹配器，零值参数回落到默认配置
func NewJDMatcher(importantLimit int, generalWeight float64) *JDMatcher {
	m := &JDMatcher{
		importantLimit: importantLimit,
		generalWeight:  generalWeight,
	}
	if m.importantLimit <= 0 {
		m.importantLimit = defaultImportantLimit
	}
	if m.generalWeight <= 0 || m.generalWeight >= 1 {
		m.generalWeight = defaultGeneralWeight
	}
	return m
}

// keywordInfo 关键词在单篇文本中的统计信息
type keywordInfo struct {
	firstPos int  // 首次出现的字节偏移，用于稳定排序
	freq     int  // 出现次数
	domain   bool // 是否命中技术/领域词表
}

// Match 计算简历与JD的匹配结果
// JD关键词集为空时返回nil，表示匹配分无定义，由编排器整体省略该结果；
// 简历关键词集为空时返回0分(JD存在，属于有效输入)
func (m *JDMatcher) Match(resume, jd *NormalizedText) *types.MatchResult {
	resumeKeywords := extractKeywords(resume)
	jdKeywords := extractKeywords(jd)

	if len(jdKeywords) == 0 {
		return nil
	}

	// 重要关键词: 领域词优先，其余按词频降序，并列时按首次出现顺序
	important := rankImportant(jdKeywords, m.importantLimit)

	// 集合运算
	var common, missing []string
	for kw := range jdKeywords {
		if _, ok := resumeKeywords[kw]; ok {
			common = append(common, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	commonSet := make(map[string]struct{}, len(common))
	for _, kw := range common {
		commonSet[kw] = struct{}{}
	}

	var matchedImportant []string
	for _, kw := range important {
		if _, ok := commonSet[kw]; ok {
			matchedImportant = append(matchedImportant, kw)
		}
	}

	// 加权匹配分
	generalScore := float64(len(common)) / float64(len(jdKeywords)) * 100
	importantScore := 0.0
	if len(important) > 0 {
		importantScore = float64(len(matchedImportant)) / float64(len(important)) * 100
	}
	matchScore := m.generalWeight*generalScore + (1-m.generalWeight)*importantScore
	matchScore = utils.Clamp(matchScore, 0, 100)

	// 展示顺序: 命中的重要关键词在前，其余按领域词/JD首现位置排序
	sortForDisplay(common, jdKeywords, matchedImportant)
	sortForDisplay(missing, jdKeywords, nil)

	return &types.MatchResult{
		MatchScore:               utils.Round2(matchScore),
		CommonKeywords:           capList(common, maxDisplayKeywords),
		MissingKeywords:          capList(missing, maxDisplayKeywords),
		ImportantKeywordsTotal:   len(important),
		ImportantKeywordsMatched: len(matchedImportant),
		MatchedImportantKeywords: capList(matchedImportant, maxMatchedImportant),
	}
}

// extractKeywords 从归一化文本中提取关键词统计
// 单词关键词走停用词过滤，另补充领域复合短语、缩写词和带技术后缀的名称
func extractKeywords(n *NormalizedText) map[string]*keywordInfo {
	keywords := make(map[string]*keywordInfo)
	if n == nil {
		return keywords
	}

	record := func(kw string, pos int, domain bool) {
		if info, ok := keywords[kw]; ok {
			info.freq++
			if domain {
				info.domain = true
			}
			return
		}
		keywords[kw] = &keywordInfo{firstPos: pos, freq: 1, domain: domain}
	}

	for _, t := range n.KeywordTokens() {
		_, domain := domainTerms[t.Lower]
		record(t.Lower, t.Start, domain)
	}

	lower := strings.ToLower(n.Original)

	// 多词技术短语
	for _, term := range compoundTerms {
		idx := strings.Index(lower, term)
		for idx >= 0 {
			record(term, idx, true)
			next := strings.Index(lower[idx+len(term):], term)
			if next < 0 {
				break
			}
			idx = idx + len(term) + next
		}
	}

	// 大写缩写词(基于原文大小写判断)
	for _, m := range acronymPattern.FindAllStringIndex(n.Original, -1) {
		record(strings.ToLower(n.Original[m[0]:m[1]]), m[0], true)
	}

	// react.js 这类带后缀的技术名称，取基础名
	for _, m := range techSuffixPattern.FindAllStringSubmatchIndex(lower, -1) {
		base := lower[m[2]:m[3]]
		if len(base) > 2 {
			record(base, m[0], true)
		}
	}

	return keywords
}

// rankImportant 从JD关键词中选出至多limit个重要关键词
func rankImportant(jdKeywords map[string]*keywordInfo, limit int) []string {
	candidates := make([]string, 0, len(jdKeywords))
	for kw := range jdKeywords {
		candidates = append(candidates, kw)
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := jdKeywords[candidates[i]], jdKeywords[candidates[j]]
		if a.domain != b.domain {
			return a.domain
		}
		if a.freq != b.freq {
			return a.freq > b.freq
		}
		if a.firstPos != b.firstPos {
			return a.firstPos < b.firstPos
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// sortForDisplay 排序展示列表: priority中的词保持其原有顺序排最前，
// 其余按(领域词优先, JD首现位置, 字典序)排列
func sortForDisplay(list []string, jdKeywords map[string]*keywordInfo, priority []string) {
	prioIdx := make(map[string]int, len(priority))
	for i, kw := range priority {
		prioIdx[kw] = i
	}
	sort.Slice(list, func(i, j int) bool {
		pi, iOK := prioIdx[list[i]]
		pj, jOK := prioIdx[list[j]]
		if iOK != jOK {
			return iOK
		}
		if iOK && jOK {
			return pi < pj
		}
		a, b := jdKeywords[list[i]], jdKeywords[list[j]]
		if a.domain != b.domain {
			return a.domain
		}
		if a.firstPos != b.firstPos {
			return a.firstPos < b.firstPos
		}
		return list[i] < list[j]
	})
}

func capList(list []string, max int) []string {
	if list == nil {
		return []string{}
	}
	if len(list) > max {
		return list[:max]
	}
	return list
}

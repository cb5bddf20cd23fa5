package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"resume-sense-go/internal/types"
	"resume-sense-go/pkg/utils"
)

// 亮点提取的条目上限
const (
	maxInsightEntries = 5
	maxTechStackTerms = 8
	maxImpactKeywords = 5
	maxTitleWords     = 10
	minEntryWords     = 6
)

// projectKeywords 句级兜底扫描时的项目指示词
var projectKeywords = []string{
	"project", "projects", "capstone", "portfolio", "application", "app",
	"tool", "platform", "system", "product", "prototype", "solution",
	"hackathon", "case study", "research project", "module", "feature",
}

// achievementKeywords 获奖/成果指示词
var achievementKeywords = []string{
	"award", "awarded", "honor", "honours", "recognition", "recognized",
	"certification", "certified", "achievement", "achievements",
	"winner", "won", "finalist", "runner-up", "placed", "scholarship",
	"publication", "published", "speaker", "presented", "selected",
}

// coCurricularKeywords 课外活动指示词
var coCurricularKeywords = []string{
	"club", "society", "association", "organization", "organised",
	"organized", "volunteer", "volunteered", "leadership", "captain",
	"coach", "mentor", "event", "festival", "competition", "contest",
	"sports", "athletics", "cultural", "music", "dance", "drama",
	"community", "campus", "co-curricular", "extracurricular",
}

// insightTechTerms 技术栈识别词表，固定排序保证输出确定性
var insightTechTerms = []string{
	"airflow", "angular", "ansible", "aws", "azure", "bigquery", "bitbucket",
	"c#", "c++", "ci/cd", "cpp", "csharp", "css", "dbt", "django", "docker",
	"dynamodb", "elastic", "elasticsearch", "express", "fastapi", "flask",
	"gcp", "github", "gitlab", "go", "golang", "hadoop", "helm", "html",
	"java", "javascript", "jenkins", "keras", "kotlin", "kubernetes",
	"laravel", "matlab", "matplotlib", "mongodb", "mysql", "nextjs", "node",
	"nodejs", "nosql", "numpy", "nuxt", "pandas", "php", "postgres",
	"postgresql", "python", "pytorch", "r", "rails", "react", "redis",
	"redshift", "ruby", "rust", "scala", "scikit-learn", "seaborn", "sklearn",
	"snowflake", "spark", "spring", "sql", "swift", "tensorflow", "terraform",
	"typescript", "vue",
}

// projectSectionHeaders 项目章节标题关键词
var projectSectionHeaders = []string{
	"project", "projects", "project experience", "technical projects",
	"academic projects", "capstone", "portfolio",
}

// achievementSectionHeaders 获奖/课外章节标题关键词
var achievementSectionHeaders = []string{
	"achievement", "achievements", "awards", "honors", "honours",
	"recognition", "leadership", "activities", "co-curricular",
	"extracurricular", "volunteer", "volunteering",
}

// noisePrefixes 需要过滤的噪声行/噪声前缀
var noisePrefixes = map[string]struct{}{
	"confidence": {}, "achievement": {}, "achievements": {}, "projects": {},
	"project": {}, "github": {}, "git hub": {},
}

// impactTerms 成果描述中的影响力动词
var impactTerms = []string{
	"led", "organized", "increased", "reduced", "boosted",
	"improved", "mentored", "trained", "volunteered",
	"collaborated", "presented", "coordinated", "hosted",
}

var (
	bulletCharPattern    = regexp.MustCompile(`[•▪●◦‣⁃]`)
	multiSpacePattern    = regexp.MustCompile(`\s+`)
	sentenceSplitPattern = regexp.MustCompile(`(?:[.!?])\s+`)
	metricsPattern       = regexp.MustCompile(`\b\d+(\.\d+)?%|\$\d+|\d+\+\b`)
	yearPattern          = regexp.MustCompile(`\b20\d{2}\b`)
	projectTitlePattern  = regexp.MustCompile(`(?i)(?:project|application|platform|system)\s*[:\-]\s*([A-Za-z0-9 ,&()/\-]+)`)
	achieveTitlePattern  = regexp.MustCompile(`(?i)(?:awarded|won|received|recognized for)\s+([A-Za-z0-9 ,&()/\-]+)`)
	titleCharPattern     = regexp.MustCompile(`[^A-Za-z0-9 ,&()/\-]`)
	nonAlnumPattern      = regexp.MustCompile(`[^a-z0-9 ]`)
	headingLinePattern   = regexp.MustCompile(`^[A-Za-z0-9 &/+-]+$`)
	leadingBulletPattern = regexp.MustCompile(`^[-*]\s+`)
)

// InsightExtractor 从简历中提取项目与获奖/课外亮点
type InsightExtractor struct{}

// NewInsightExtractor 创建亮点提取器
func NewInsightExtractor() *InsightExtractor {
	return &InsightExtractor{}
}

// Extract 提取项目与成果亮点，各取前5条
func (e *InsightExtractor) Extract(n *NormalizedText) *types.InsightsReport {
	sentences := splitInsightSentences(n.Original)
	projects := extractProjects(n.Original, sentences)
	achievements := extractAchievements(n.Original, sentences)

	if len(projects) > maxInsightEntries {
		projects = projects[:maxInsightEntries]
	}
	if len(achievements) > maxInsightEntries {
		achievements = achievements[:maxInsightEntries]
	}
	return &types.InsightsReport{
		Projects:     projects,
		Achievements: achievements,
	}
}

// splitInsightSentences 把简历拆成句子/条目，保留足够长的片段
func splitInsightSentences(text string) []string {
	normalized := bulletCharPattern.ReplaceAllString(text, ". ")
	normalized = multiSpacePattern.ReplaceAllString(normalized, " ")
	parts := sentenceSplitPattern.Split(normalized, -1)

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > 25 {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// extractProjects 优先解析显式项目章节，找不到时退化为句级扫描
func extractProjects(text string, sentences []string) []types.ProjectInsight {
	projects := make([]types.ProjectInsight, 0)
	seenTitles := make(map[string]struct{})

	for _, block := range extractSectionBlocks(text, projectSectionHeaders) {
		for _, p := range parseProjectBlock(block) {
			key := strings.ToLower(p.Title)
			if _, dup := seenTitles[key]; dup {
				continue
			}
			projects = append(projects, p)
			seenTitles[key] = struct{}{}
		}
	}

	if len(projects) == 0 {
		for _, sentence := range sentences {
			lower := strings.ToLower(sentence)
			hits := 0
			for _, kw := range projectKeywords {
				if strings.Contains(lower, kw) {
					hits++
				}
			}
			hasDelimiters := strings.Contains(sentence, "|") ||
				strings.Contains(sentence, " - ") || strings.Contains(sentence, ":")
			if hits == 0 || !hasDelimiters {
				continue
			}

			techStack := extractTechStack(lower)
			if len(techStack) == 0 {
				continue
			}

			title := inferProjectTitle(sentence)
			key := strings.ToLower(title)
			if _, dup := seenTitles[key]; dup {
				continue
			}

			cleaned := cleanEntryText(sentence)
			if len(strings.Fields(cleaned)) < minEntryWords {
				continue
			}
			confidence := 0.4 + minFloat(float64(len(cleaned))/300, 0.3)
			projects = append(projects, types.ProjectInsight{
				Title:      title,
				Summary:    cleaned,
				TechStack:  techStack,
				Confidence: utils.Round2(minFloat(confidence, 1.0)),
			})
			seenTitles[key] = struct{}{}
		}
	}

	// 置信度降序，稳定排序保持同分条目的提取顺序
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Confidence > projects[j].Confidence
	})
	return projects
}

// extractAchievements 解析获奖/课外章节，找不到时退化为句级扫描
func extractAchievements(text string, sentences []string) []types.AchievementInsight {
	achievements := make([]types.AchievementInsight, 0)
	seen := make(map[string]struct{})

	for _, block := range extractSectionBlocks(text, achievementSectionHeaders) {
		for _, item := range parseAchievementBlock(block) {
			key := strings.ToLower(item.Title)
			if _, dup := seen[key]; dup {
				continue
			}
			achievements = append(achievements, item)
			seen[key] = struct{}{}
		}
	}

	if len(achievements) == 0 {
		for _, sentence := range sentences {
			lower := strings.ToLower(sentence)
			achievementHit := false
			for _, kw := range achievementKeywords {
				if strings.Contains(lower, kw) {
					achievementHit = true
					break
				}
			}
			coCurricularHit := containsAny(lower, coCurricularKeywords)
			if !achievementHit && !coCurricularHit {
				continue
			}

			title := inferAchievementTitle(sentence)
			key := strings.ToLower(title)
			if _, dup := seen[key]; dup {
				continue
			}

			category := "Achievement"
			if coCurricularHit {
				category = "Co-curricular"
			}
			achievements = append(achievements, types.AchievementInsight{
				Title:          title,
				Details:        cleanEntryText(sentence),
				Category:       category,
				ImpactKeywords: extractImpactKeywords(lower),
			})
			seen[key] = struct{}{}
		}
	}

	// 课外活动排在前面
	sort.SliceStable(achievements, func(i, j int) bool {
		return achievements[i].Category == "Co-curricular" && achievements[j].Category != "Co-curricular"
	})
	return achievements
}

// extractSectionBlocks 按标题行切分文本，返回标题命中关键词的章节内容
func extractSectionBlocks(text string, headerKeywords []string) []string {
	type section struct {
		heading string
		content string
	}
	var sections []section
	var currentHeading string
	var currentLines []string

	flush := func() {
		if currentHeading != "" && len(currentLines) > 0 {
			sections = append(sections, section{
				heading: strings.ToLower(currentHeading),
				content: strings.TrimSpace(strings.Join(currentLines, "\n")),
			})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			if len(currentLines) > 0 && currentLines[len(currentLines)-1] != "" {
				currentLines = append(currentLines, "")
			}
			continue
		}

		if looksLikeHeading(stripped) {
			flush()
			currentHeading = stripped
			currentLines = nil
			continue
		}

		if currentHeading != "" {
			currentLines = append(currentLines, stripped)
		}
	}
	flush()

	var matched []string
	for _, s := range sections {
		for _, kw := range headerKeywords {
			if strings.Contains(s.heading, kw) {
				matched = append(matched, s.content)
				break
			}
		}
	}
	return matched
}

// looksLikeHeading 判断一行是否像章节标题
func looksLikeHeading(line string) bool {
	if len(line) < 3 || len(strings.Fields(line)) > 8 {
		return false
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	if line == strings.ToUpper(line) && line != strings.ToLower(line) {
		return true
	}
	return headingLinePattern.MatchString(line) && isTitleCase(line)
}

// isTitleCase 每个词都以大写字母开头
func isTitleCase(line string) bool {
	for _, word := range strings.Fields(line) {
		r := rune(word[0])
		if r >= 'a' && r <= 'z' {
			return false
		}
	}
	return true
}

// parseProjectBlock 把项目章节内容解析为条目
func parseProjectBlock(block string) []types.ProjectInsight {
	entries := splitBlockEntries(block)
	projects := make([]types.ProjectInsight, 0, len(entries))

	for _, entry := range entries {
		lower := strings.ToLower(entry)
		techStack := extractTechStack(lower)
		metricsPresent := metricsPattern.MatchString(entry)
		lengthFactor := minFloat(float64(len(entry))/300, 1)

		confidence := 0.4
		if len(techStack) > 0 {
			confidence += 0.2
		}
		if metricsPresent {
			confidence += 0.2
		}
		confidence += 0.2 * lengthFactor

		projects = append(projects, types.ProjectInsight{
			Title:      inferProjectTitle(entry),
			Summary:    cleanEntryText(entry),
			TechStack:  techStack,
			Confidence: utils.Round2(minFloat(confidence, 0.99)),
		})
	}
	return projects
}

// parseAchievementBlock 把获奖/课外章节内容解析为条目
func parseAchievementBlock(block string) []types.AchievementInsight {
	entries := splitBlockEntries(block)
	achievements := make([]types.AchievementInsight, 0, len(entries))

	for _, entry := range entries {
		lower := strings.ToLower(entry)
		category := "Achievement"
		if containsAny(lower, coCurricularKeywords) {
			category = "Co-curricular"
		}
		achievements = append(achievements, types.AchievementInsight{
			Title:          inferAchievementTitle(entry),
			Details:        cleanEntryText(entry),
			Category:       category,
			ImpactKeywords: extractImpactKeywords(lower),
		})
	}
	return achievements
}

// splitBlockEntries 把章节内容按条目切分，合并换行的描述行并过滤噪声
func splitBlockEntries(block string) []string {
	cleaned := strings.ReplaceAll(block, "\r", "\n")
	cleaned = bulletCharPattern.ReplaceAllString(cleaned, "-")

	var entries []string
	var current []string

	commit := func() {
		if len(current) == 0 {
			return
		}
		parts := make([]string, 0, len(current))
		for _, p := range current {
			if s := strings.TrimSpace(p); s != "" {
				parts = append(parts, s)
			}
		}
		merged := strings.Join(parts, " ")
		current = nil
		if isNoiseEntry(strings.ToLower(merged)) {
			return
		}
		entry := cleanEntryText(merged)
		if len(strings.Fields(entry)) >= minEntryWords {
			entries = append(entries, entry)
		}
	}

	for _, line := range strings.Split(cleaned, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			commit()
			continue
		}
		if isNoiseLine(stripped) {
			continue
		}

		cleanedLine := strings.TrimSpace(strings.TrimLeft(stripped, "-* "))
		if cleanedLine == "" {
			continue
		}

		shortDescriptor := len(strings.Fields(cleanedLine)) <= 4 &&
			!strings.ContainsAny(cleanedLine, ":|")
		if shortDescriptor && len(current) > 0 {
			current = append(current, cleanedLine)
			continue
		}

		if len(current) > 0 && startsNewEntry(cleanedLine) {
			commit()
			current = []string{cleanedLine}
		} else if len(current) == 0 {
			current = []string{cleanedLine}
		} else {
			current = append(current, cleanedLine)
		}
	}
	commit()
	return entries
}

// startsNewEntry 判断一行是否开启新条目
func startsNewEntry(line string) bool {
	if line == "" || leadingBulletPattern.MatchString(line) {
		return false
	}
	if strings.Contains(line, "|") {
		return true
	}
	if line == strings.ToUpper(line) && line != strings.ToLower(line) {
		return true
	}
	lower := strings.ToLower(line)
	for _, kw := range []string{
		"project", "capstone", "hackathon", "award", "achievement",
		"leadership", "club", "society", "competition",
	} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return yearPattern.MatchString(line)
}

func isNoiseLine(line string) bool {
	normalized := strings.TrimSpace(nonAlnumPattern.ReplaceAllString(strings.ToLower(line), " "))
	normalized = multiSpacePattern.ReplaceAllString(normalized, " ")
	if normalized == "" {
		return true
	}
	_, noise := noisePrefixes[normalized]
	return noise
}

func isNoiseEntry(entryLower string) bool {
	if len(entryLower) < 10 {
		return true
	}
	for prefix := range noisePrefixes {
		if strings.HasPrefix(entryLower, prefix) {
			return true
		}
	}
	return false
}

// cleanEntryText 压缩空白并剥掉条目开头的噪声词/技术词前缀
func cleanEntryText(text string) string {
	cleaned := strings.TrimSpace(multiSpacePattern.ReplaceAllString(text, " "))
	techSet := make(map[string]struct{}, len(insightTechTerms))
	for _, t := range insightTechTerms {
		techSet[t] = struct{}{}
	}
	for cleaned != "" {
		lowered := strings.ToLower(cleaned)
		firstToken := lowered
		if idx := strings.IndexByte(lowered, ' '); idx >= 0 {
			firstToken = lowered[:idx]
		}
		_, noise := noisePrefixes[firstToken]
		_, tech := techSet[firstToken]
		if noise || tech {
			if idx := strings.IndexByte(cleaned, ' '); idx >= 0 {
				cleaned = strings.TrimSpace(cleaned[idx+1:])
				continue
			}
			cleaned = ""
			continue
		}
		break
	}
	return cleaned
}

// extractTechStack 识别条目中的技术栈名称，短缩写大写、其余首字母大写
func extractTechStack(textLower string) []string {
	var stack []string
	for _, term := range insightTechTerms {
		if !wholeTermPresent(textLower, term) {
			continue
		}
		display := term
		if len(term) <= 4 && isAlphaOnly(term) {
			display = strings.ToUpper(term)
		} else {
			display = titleCaseTerm(term)
		}
		stack = append(stack, display)
		if len(stack) >= maxTechStackTerms {
			break
		}
	}
	return stack
}

// wholeTermPresent 整词匹配技术名；含特殊字符的词(c++/ci/cd)用子串匹配
func wholeTermPresent(textLower, term string) bool {
	if nonAlnumPattern.MatchString(term) {
		return strings.Contains(textLower, term)
	}
	idx := 0
	for {
		pos := strings.Index(textLower[idx:], term)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(term)
		beforeOK := start == 0 || !isWordByte(textLower[start-1])
		afterOK := end == len(textLower) || !isWordByte(textLower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isAlphaOnly(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func titleCaseTerm(term string) string {
	words := strings.Fields(term)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// inferProjectTitle 从条目中推断项目标题
func inferProjectTitle(entry string) string {
	if m := projectTitlePattern.FindStringSubmatch(entry); m != nil {
		return trimTitle(cleanEntryText(m[1]))
	}
	clause := strings.SplitN(entry, ",", 2)[0]
	clause = strings.SplitN(clause, " - ", 2)[0]
	clause = strings.SplitN(clause, ". ", 2)[0]
	return trimTitle(cleanEntryText(clause))
}

// inferAchievementTitle 从条目中推断成果标题
func inferAchievementTitle(entry string) string {
	if m := achieveTitlePattern.FindStringSubmatch(entry); m != nil {
		return trimTitle(cleanEntryText(m[1]))
	}
	clause := strings.SplitN(entry, ". ", 2)[0]
	return trimTitle(cleanEntryText(clause))
}

// trimTitle 清洗标题字符并截断到10个词以内
func trimTitle(text string) string {
	cleaned := strings.TrimSpace(titleCharPattern.ReplaceAllString(text, ""))
	if cleaned == "" {
		return "Highlighted Project"
	}
	words := strings.Fields(cleaned)
	if len(words) > maxTitleWords {
		words = words[:maxTitleWords]
	}
	return strings.Join(words, " ")
}

// extractImpactKeywords 提取影响力动词，至多5个
func extractImpactKeywords(textLower string) []string {
	var hits []string
	for _, term := range impactTerms {
		if strings.Contains(textLower, term) {
			hits = append(hits, term)
			if len(hits) >= maxImpactKeywords {
				break
			}
		}
	}
	return hits
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

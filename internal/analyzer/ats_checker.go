package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"resume-sense-go/internal/types"
	"resume-sense-go/pkg/utils"
)

// 各类检查的总权重，合计100
const (
	sectionWeight    = 30.0
	contactWeight    = 25.0
	formattingWeight = 25.0
	lengthWeight     = 20.0

	// 篇幅合理性的词数区间
	minResumeWords = 100
	maxResumeWords = 1500
)

// sectionSynonyms 章节同义词表，按固定顺序评估以保证issues输出可复现
var sectionSynonyms = []struct {
	name     string
	keywords []string
}{
	{"education", []string{"education", "academic", "degree", "university", "college", "school"}},
	{"experience", []string{"experience", "employment", "work history", "professional", "career"}},
	{"skills", []string{"skills", "technical skills", "competencies", "proficiencies"}},
	{"summary", []string{"summary", "objective", "profile", "about"}},
	{"contact", []string{"contact", "email", "phone", "address"}},
}

// sectionRecommendations 缺失章节对应的建议文案
var sectionRecommendations = map[string]string{
	"education":  "Add an Education section with your academic background",
	"experience": "Add an Experience section detailing your work history",
	"skills":     "Add a Skills section listing your technical and soft skills",
	"summary":    "Add a short Summary or Objective at the top of your resume",
	"contact":    "Add a Contact section with your email and phone number",
}

// genericRecommendations 无论检查结果如何都附在末尾的通用建议
var genericRecommendations = []string{
	"Use standard fonts (Arial, Times New Roman, Calibri)",
	"Save as PDF to preserve formatting",
	"Use keywords from the job description naturally throughout your resume",
}

var (
	// RFC-lite 邮箱模式，覆盖常见写法即可
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// 电话模式: 美式、带括号区号、国际格式，容忍常见分隔符
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.]?\d{4}`),
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}`),
	}

	// 地址的宽松启发式: 常见邮政词汇
	addressKeywords = []string{"street", "avenue", "road", "drive", "lane", "city", "state", "zip"}

	// 连续空白形成的列状结构，疑似表格
	tablePattern = regexp.MustCompile(` {3,}|\t`)

	// 要点符号(对ATS是加分项)
	bulletPattern = regexp.MustCompile(`[•\-\*]\s`)

	// 非字母数字且非空白的字符，用于计算特殊字符密度
	specialCharPattern = regexp.MustCompile(`[^\w\s]`)
)

// ATSChecker 评估简历自身的ATS合规性，与JD无关
type ATSChecker struct{}

// NewATSChecker 创建ATS检查器
func NewATSChecker() *ATSChecker {
	return &ATSChecker{}
}

// Check 对归一化后的简历执行全部合规检查
// 检查顺序固定: 章节 → 联系方式 → 排版 → 篇幅
func (c *ATSChecker) Check(n *NormalizedText) *types.ATSReport {
	text := n.Original
	textLower := strings.ToLower(text)

	report := &types.ATSReport{
		SectionChecks: make(map[string]bool, len(sectionSynonyms)),
	}
	score := 0.0

	// 1. 章节检查，每个章节均分章节权重
	perSection := sectionWeight / float64(len(sectionSynonyms))
	for _, section := range sectionSynonyms {
		present := false
		for _, kw := range section.keywords {
			if strings.Contains(textLower, kw) {
				present = true
				break
			}
		}
		report.SectionChecks[section.name] = present
		if present {
			score += perSection
			continue
		}
		report.Issues = append(report.Issues,
			fmt.Sprintf("Missing %s section", capitalize(section.name)))
		report.Recommendations = append(report.Recommendations, sectionRecommendations[section.name])
	}

	// 2. 联系方式检查: 邮箱10分、电话10分、地址5分
	report.ContactCheck = checkContactInfo(text, textLower)
	if report.ContactCheck.HasEmail {
		score += 10
	} else {
		report.Issues = append(report.Issues, "Missing email address")
		report.Recommendations = append(report.Recommendations, "Include a professional email address")
	}
	if report.ContactCheck.HasPhone {
		score += 10
	} else {
		report.Issues = append(report.Issues, "Missing phone number")
		report.Recommendations = append(report.Recommendations, "Include a phone number")
	}
	if report.ContactCheck.HasAddress {
		score += 5
	} else {
		report.Issues = append(report.Issues, "Missing location information")
		report.Recommendations = append(report.Recommendations, "Include your city and state (or region)")
	}

	// 3. 排版检查: 无表格6 + 密度正常6 + 无页眉页脚6 + 有要点符号7
	report.FormattingChecks = checkFormatting(text)
	if !report.FormattingChecks.HasTables {
		score += 6
	} else {
		report.Issues = append(report.Issues, "Contains table-like formatting (may not parse well in ATS)")
		report.Recommendations = append(report.Recommendations, "Avoid using tables; use simple text formatting instead")
	}
	if !report.FormattingChecks.ExcessiveFormatting {
		score += 6
	} else {
		report.Issues = append(report.Issues, "Excessive special characters (may indicate complex formatting)")
		report.Recommendations = append(report.Recommendations, "Simplify formatting and remove decorative characters")
	}
	if !report.FormattingChecks.HasHeadersFooters {
		score += 6
	} else {
		report.Issues = append(report.Issues, "Contains headers/footers (may confuse ATS parsing)")
		report.Recommendations = append(report.Recommendations, "Move header/footer content into the document body")
	}
	if report.FormattingChecks.HasBullets {
		score += 7
	} else {
		report.Issues = append(report.Issues, "No bullet points found (bullets improve ATS readability)")
		report.Recommendations = append(report.Recommendations, "Use bullet points to improve readability and ATS parsing")
	}

	// 4. 篇幅检查
	wordCount := len(n.Tokens)
	switch {
	case wordCount < minResumeWords:
		report.Issues = append(report.Issues,
			fmt.Sprintf("Resume is too short (%d words)", wordCount))
		report.Recommendations = append(report.Recommendations,
			"Expand your resume with more detail about your experience and skills")
	case wordCount > maxResumeWords:
		report.Issues = append(report.Issues,
			fmt.Sprintf("Resume is too long (%d words)", wordCount))
		report.Recommendations = append(report.Recommendations,
			"Trim your resume down to the most relevant experience")
	default:
		score += lengthWeight
	}

	report.Recommendations = append(report.Recommendations, genericRecommendations...)

	if report.Issues == nil {
		report.Issues = []string{}
	}
	report.ATSScore = utils.Round2(utils.Clamp(score, 0, 100))
	return report
}

// capitalize 首字母大写，用于issue文案
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// checkContactInfo 检查联系方式是否齐全
func checkContactInfo(text, textLower string) types.ContactCheck {
	hasEmail := emailPattern.MatchString(text)

	hasPhone := false
	for _, p := range phonePatterns {
		if p.MatchString(text) {
			hasPhone = true
			break
		}
	}

	hasAddress := false
	for _, kw := range addressKeywords {
		if strings.Contains(textLower, kw) {
			hasAddress = true
			break
		}
	}

	return types.ContactCheck{
		HasEmail:   hasEmail,
		HasPhone:   hasPhone,
		HasAddress: hasAddress,
		Complete:   hasEmail && hasPhone,
	}
}

// checkFormatting 检查ATS不友好的排版特征
func checkFormatting(text string) types.FormattingChecks {
	hasTables := tablePattern.MatchString(text)

	// 特殊字符密度过高通常意味着复杂排版或乱码
	specialCount := len(specialCharPattern.FindAllString(text, -1))
	textLen := len(text)
	if textLen == 0 {
		textLen = 1
	}
	excessive := float64(specialCount)/float64(textLen) > 0.3

	// 页眉页脚: 开头几行与结尾几行出现相同的短行
	hasHeadersFooters := false
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		headLines := lines[:3]
		tailSet := make(map[string]struct{}, 3)
		for _, line := range lines[len(lines)-3:] {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" && len(trimmed) < 80 {
				tailSet[trimmed] = struct{}{}
			}
		}
		for _, line := range headLines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if _, ok := tailSet[trimmed]; ok {
				hasHeadersFooters = true
				break
			}
		}
	}

	return types.FormattingChecks{
		HasTables:           hasTables,
		ExcessiveFormatting: excessive,
		HasHeadersFooters:   hasHeadersFooters,
		HasBullets:          bulletPattern.MatchString(text),
	}
}

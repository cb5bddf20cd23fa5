package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalResume = "John Doe\nEducation: BS CS\nExperience: I did some work on backend systems. I made improvements."

func TestCheckMinimalResume(t *testing.T) {
	n := mustNormalize(t, minimalResume)
	report := NewATSChecker().Check(n)

	assert.True(t, report.SectionChecks["education"])
	assert.True(t, report.SectionChecks["experience"])
	assert.False(t, report.SectionChecks["skills"])
	assert.False(t, report.SectionChecks["summary"])

	assert.False(t, report.ContactCheck.HasEmail)
	assert.False(t, report.ContactCheck.HasPhone)
	assert.False(t, report.ContactCheck.Complete)

	assert.Contains(t, report.Issues, "Missing Skills section")
	assert.Contains(t, report.Issues, "Missing email address")

	tooShort := false
	for _, issue := range report.Issues {
		if strings.HasPrefix(issue, "Resume is too short") {
			tooShort = true
		}
	}
	assert.True(t, tooShort, "词数不足100时应报告篇幅过短")

	assert.GreaterOrEqual(t, report.ATSScore, 0.0)
	assert.LessOrEqual(t, report.ATSScore, 100.0)
	// 章节2项(12) + 排版3项通过(18)，联系方式与篇幅均为0
	assert.Equal(t, 30.0, report.ATSScore)
}

func TestCheckWellFormedResume(t *testing.T) {
	var b strings.Builder
	b.WriteString("Jane Smith\nEmail: jane.smith@example.com | Phone: 555-123-4567 | Austin, City of Texas\n\n")
	b.WriteString("Summary\nBackend engineer focused on reliable data platforms.\n\n")
	b.WriteString("Experience\n")
	for i := 0; i < 12; i++ {
		b.WriteString("- Developed and optimized distributed ingestion services in Python and Go, improved throughput significantly\n")
	}
	b.WriteString("\nEducation\nBS Computer Science, State University\n\n")
	b.WriteString("Skills\nPython, Go, Docker, Kubernetes, PostgreSQL, Redis, Kafka\n")

	n := mustNormalize(t, b.String())
	report := NewATSChecker().Check(n)

	for _, section := range []string{"education", "experience", "skills", "summary", "contact"} {
		assert.True(t, report.SectionChecks[section], "章节 %s 应被识别", section)
	}
	assert.True(t, report.ContactCheck.HasEmail)
	assert.True(t, report.ContactCheck.HasPhone)
	assert.True(t, report.ContactCheck.Complete)
	assert.True(t, report.FormattingChecks.HasBullets)

	assert.GreaterOrEqual(t, report.ATSScore, 90.0, "结构完整的简历应得高分")
	assert.NotContains(t, report.Issues, "Missing email address")

	// 通用建议始终附在末尾
	require.NotEmpty(t, report.Recommendations)
	assert.Equal(t, "Use keywords from the job description naturally throughout your resume",
		report.Recommendations[len(report.Recommendations)-1])
}

func TestCheckContactInfoVariants(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		hasPhone bool
	}{
		{"美式横线", "Call 555-123-4567 today", true},
		{"括号区号", "(555) 123-4567", true},
		{"国际格式", "+86 138 0000 0000", true},
		{"无电话", "reach me by email only", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			check := checkContactInfo(tc.text, strings.ToLower(tc.text))
			assert.Equal(t, tc.hasPhone, check.HasPhone)
		})
	}

	check := checkContactInfo("contact: dev.user+tag@mail.example.co", "contact: dev.user+tag@mail.example.co")
	assert.True(t, check.HasEmail, "带+号和多级域名的邮箱应被识别")
}

func TestCheckFormattingSignals(t *testing.T) {
	tabular := checkFormatting("Name\tRole\tYears\nAlice\tEngineer\t5")
	assert.True(t, tabular.HasTables, "制表符应被识别为表格样式")

	bulleted := checkFormatting("• Led migrations\n• Cut costs")
	assert.True(t, bulleted.HasBullets)
	assert.False(t, bulleted.HasTables)

	clean := checkFormatting("Simple resume text without any special layout")
	assert.False(t, clean.ExcessiveFormatting)
	assert.False(t, clean.HasHeadersFooters)
}

func TestCheckHeaderFooterDetection(t *testing.T) {
	lines := make([]string, 0, 14)
	lines = append(lines, "Jane Smith - Page")
	for i := 0; i < 12; i++ {
		lines = append(lines, "Experience line describing meaningful engineering work")
	}
	lines = append(lines, "Jane Smith - Page")

	fc := checkFormatting(strings.Join(lines, "\n"))
	assert.True(t, fc.HasHeadersFooters, "首尾重复的短行应被识别为页眉页脚")
}

func TestCheckIdempotent(t *testing.T) {
	n := mustNormalize(t, minimalResume)
	checker := NewATSChecker()
	first := checker.Check(n)
	second := checker.Check(n)
	assert.Equal(t, first, second, "相同输入应产生相同报告")
}

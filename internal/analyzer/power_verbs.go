package analyzer

import (
	"sort"

	"resume-sense-go/internal/types"
	"resume-sense-go/pkg/utils"
)

const (
	// defaultFindingLimit 弱动词建议条目上限
	defaultFindingLimit = 20
	// maxSuggestions 每条建议至多给出的强动词数量
	maxSuggestions = 3
	// contextMargin 上下文片段向命中两侧扩展的字节数
	contextMargin = 20
	// dedupePrefixLen 去重时比较的上下文前缀长度
	dedupePrefixLen = 30
	// maxWeakVerbsFound 统计中列出的弱动词种类上限
	maxWeakVerbsFound = 10
)

// PowerVerbAnalyzer 扫描弱动词并给出强动词替换建议
type PowerVerbAnalyzer struct {
	findingLimit int
}

// NewPowerVerbAnalyzer 创建弱动词分析器，limit≤0时使用默认上限
func NewPowerVerbAnalyzer(findingLimit int) *PowerVerbAnalyzer {
	a := &PowerVerbAnalyzer{findingLimit: findingLimit}
	if a.findingLimit <= 0 {
		a.findingLimit = defaultFindingLimit
	}
	return a
}

// lookupWeakVerb 查找词元对应的弱动词基本形
// 依次尝试原词、去-s、去-ed、去-d，覆盖 helps/helped/used 这类规则变形
func lookupWeakVerb(lower string) (string, bool) {
	candidates := []string{lower}
	if n := len(lower); n > 3 {
		if lower[n-1] == 's' {
			candidates = append(candidates, lower[:n-1])
		}
		if n > 4 && lower[n-2:] == "ed" {
			candidates = append(candidates, lower[:n-2])
		}
		if lower[n-1] == 'd' {
			candidates = append(candidates, lower[:n-1])
		}
	}
	for _, c := range candidates {
		if _, ok := weakVerbs[c]; ok {
			return c, true
		}
	}
	return "", false
}

// Analyze 扫描整份简历(保留停用词的词元序列)并产出弱动词报告
//
// 统计口径: 每个词元先查强动词表(精确匹配)，命中则不再算弱动词，
// 保证 weak_verb_count + strong_verb_count 与逐词直扫的结果一致
func (a *PowerVerbAnalyzer) Analyze(n *NormalizedText) *types.PowerVerbReport {
	findings := make([]types.VerbFinding, 0)
	weakCounts := make(map[string]int)
	weakTotal := 0
	strongTotal := 0

	seen := make(map[string]struct{})

	for _, t := range n.Tokens {
		if _, strong := strongVerbs[t.Lower]; strong {
			strongTotal++
			continue
		}

		base, ok := lookupWeakVerb(t.Lower)
		if !ok {
			continue
		}
		weakTotal++
		weakCounts[base]++

		context := n.ContextWindow(t.Start, t.End, contextMargin)

		// 同一动词在相近上下文中只报告一次
		prefix := context
		if len(prefix) > dedupePrefixLen {
			prefix = prefix[:dedupePrefixLen]
		}
		dedupeKey := base + "\x00" + prefix
		if _, dup := seen[dedupeKey]; dup {
			continue
		}
		seen[dedupeKey] = struct{}{}

		suggestions := weakVerbs[base]
		if len(suggestions) > maxSuggestions {
			suggestions = suggestions[:maxSuggestions]
		}

		findings = append(findings, types.VerbFinding{
			WeakVerb:    base,
			Suggestions: suggestions,
			Context:     context,
			Position:    t.Start,
		})
	}

	if len(findings) > a.findingLimit {
		findings = findings[:a.findingLimit]
	}

	// 弱动词频次统计: 按次数降序，并列按字典序，保证输出可复现
	found := make([]types.VerbCount, 0, len(weakCounts))
	for verb, count := range weakCounts {
		found = append(found, types.VerbCount{Verb: verb, Count: count})
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].Count != found[j].Count {
			return found[i].Count > found[j].Count
		}
		return found[i].Verb < found[j].Verb
	})
	if len(found) > maxWeakVerbsFound {
		found = found[:maxWeakVerbsFound]
	}

	// 无任何动词命中时不视为失败，满分处理
	score := 100.0
	if weakTotal+strongTotal > 0 {
		score = float64(strongTotal) / float64(weakTotal+strongTotal) * 100
	}

	return &types.PowerVerbReport{
		Findings: findings,
		Stats: types.VerbStats{
			WeakVerbCount:   weakTotal,
			StrongVerbCount: strongTotal,
			WeakVerbsFound:  found,
			PowerVerbScore:  utils.Round2(score),
		},
	}
}

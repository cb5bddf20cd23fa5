package analyzer

import "regexp"

// stopWords 关键词提取时过滤的常见停用词
// 末尾几个是招聘文本里无区分度的高频词
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "from": {}, "as": {},
	"is": {}, "was": {}, "are": {}, "were": {}, "been": {}, "be": {}, "have": {}, "has": {},
	"had": {}, "do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "should": {},
	"could": {}, "may": {}, "might": {}, "must": {}, "can": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {},
	"they": {}, "what": {}, "which": {}, "who": {}, "when": {}, "where": {}, "why": {},
	"how": {}, "all": {}, "each": {}, "every": {}, "both": {}, "few": {}, "more": {},
	"most": {}, "other": {}, "some": {}, "such": {}, "only": {}, "own": {}, "same": {},
	"so": {}, "than": {}, "too": {}, "very": {}, "just": {}, "now": {},
	"work": {}, "job": {}, "position": {}, "role": {}, "team": {}, "company": {},
	"years": {}, "experience": {},
}

// domainTerms 技术/科研领域指示词，命中即视为重要关键词候选
var domainTerms = map[string]struct{}{
	// 编程语言
	"python": {}, "java": {}, "javascript": {}, "typescript": {}, "c++": {}, "cpp": {},
	"c#": {}, "csharp": {}, "go": {}, "golang": {}, "rust": {}, "swift": {}, "kotlin": {},
	"scala": {}, "matlab": {}, "perl": {}, "ruby": {}, "php": {}, "sql": {}, "html": {},
	"css": {}, "xml": {}, "json": {}, "yaml": {},
	// 框架与库
	"react": {}, "angular": {}, "vue": {}, "django": {}, "flask": {}, "spring": {},
	"express": {}, "node": {}, "tensorflow": {}, "pytorch": {}, "keras": {}, "scikit": {},
	"pandas": {}, "numpy": {}, "matplotlib": {},
	// 技术与工具
	"aws": {}, "azure": {}, "gcp": {}, "docker": {}, "kubernetes": {}, "jenkins": {},
	"git": {}, "github": {}, "gitlab": {}, "ci/cd": {}, "microservices": {}, "api": {},
	"rest": {}, "graphql": {}, "mongodb": {}, "postgresql": {}, "mysql": {}, "redis": {},
	"elasticsearch": {}, "kafka": {}, "rabbitmq": {},
	// 科研术语
	"nlp": {}, "statistics": {}, "algorithm": {}, "optimization": {}, "regression": {},
	"classification": {}, "clustering": {}, "ai": {},
	// 通用技术能力
	"linux": {}, "unix": {}, "bash": {}, "shell": {}, "agile": {}, "scrum": {},
	"devops": {}, "cloud": {}, "security": {}, "encryption": {}, "blockchain": {},
	"cryptography": {}, "networking": {},
	// 学术/科研
	"research": {}, "publication": {}, "thesis": {}, "dissertation": {}, "journal": {},
	"conference": {}, "patent": {}, "methodology": {}, "hypothesis": {}, "experiment": {},
}

// compoundTerms 多词技术短语，按在文本中的字面出现提取
// 顺序固定，保证输出确定性
var compoundTerms = []string{
	"machine learning", "deep learning", "neural network", "natural language",
	"computer vision", "data science", "artificial intelligence", "reinforcement learning",
	"supervised learning", "unsupervised learning", "transfer learning",
	"feature engineering", "rest api", "object oriented", "functional programming",
	"test driven", "agile methodology", "scrum master", "peer review",
}

// acronymPattern 技术缩写词(2-5个大写字母)
var acronymPattern = regexp.MustCompile(`\b[A-Z]{2,5}\b`)

// techSuffixPattern 带技术后缀的名称，如 react.js、main.py
var techSuffixPattern = regexp.MustCompile(`\b([a-z0-9]+)\.(js|py|java|cpp|html|css|sql|json|xml|ts|tsx|jsx)\b`)

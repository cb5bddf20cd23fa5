package scorer

import (
	"encoding/json"
	"fmt"
	"os"

	"resume-sense-go/internal/analyzer"
	"resume-sense-go/pkg/utils"
)

// Model 线性回归模型工件
// 训练端导出为JSON: {"version":..., "feature_names":[22], "weights":[22], "intercept":...}
type Model struct {
	Version      string    `json:"version"`
	FeatureNames []string  `json:"feature_names"`
	Weights      []float64 `json:"weights"`
	Intercept    float64   `json:"intercept"`
}

// LoadModel 从磁盘加载并校验模型工件
// 任何失败都返回模型加载错误，由调用方降级到规则评分，绝不中断流水线
func LoadModel(path string) (*Model, error) {
	if path == "" {
		return nil, analyzer.NewModelLoadError("model path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, analyzer.NewModelLoadError(fmt.Sprintf("读取模型文件失败: %v", err))
	}

	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, analyzer.NewModelLoadError(fmt.Sprintf("模型文件反序列化失败: %v", err))
	}

	if err := model.validate(); err != nil {
		return nil, err
	}
	return &model, nil
}

// validate 校验特征名顺序与提取器契约完全一致
// 顺序错位的模型会静默产出错误分数，必须在加载期拒绝
func (m *Model) validate() error {
	if len(m.FeatureNames) != FeatureCount || len(m.Weights) != FeatureCount {
		return analyzer.NewModelLoadError(fmt.Sprintf(
			"模型维度不匹配: feature_names=%d weights=%d 期望=%d",
			len(m.FeatureNames), len(m.Weights), FeatureCount))
	}
	for i, name := range featureNames {
		if m.FeatureNames[i] != name {
			return analyzer.NewModelLoadError(fmt.Sprintf(
				"特征顺序不匹配: 第%d位期望%s实际%s", i, name, m.FeatureNames[i]))
		}
	}
	return nil
}

// Predict 线性组合预测，输出截断到[0,100]
func (m *Model) Predict(vector []float64) float64 {
	score := m.Intercept
	for i, w := range m.Weights {
		score += w * vector[i]
	}
	return utils.Clamp(score, 0, 100)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfigFromFile 验证YAML配置能否被成功加载并覆盖默认值
func TestLoadConfigFromFile(t *testing.T) {
	yamlContent := `
server:
  address: ":9090"
mysql:
  host: "db.internal"
  port: 3307
  database: "resumesense_test"
analyzer:
  important_keyword_limit: 15
  general_overlap_weight: 0.4
scorer:
  model_path: "/opt/models/quality.json"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(yamlContent), 0644)
	require.NoError(t, err, "无法写入临时配置文件")

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err, "加载合法配置不应返回错误")
	require.NotNil(t, cfg, "配置对象不应为 nil")

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "db.internal", cfg.MySQL.Host)
	assert.Equal(t, 3307, cfg.MySQL.Port)
	assert.Equal(t, "resumesense_test", cfg.MySQL.Database)
	assert.Equal(t, 15, cfg.Analyzer.ImportantKeywordLimit)
	assert.InDelta(t, 0.4, cfg.Analyzer.GeneralOverlapWeight, 1e-9)
	assert.Equal(t, "/opt/models/quality.json", cfg.Scorer.ModelPath)

	// 未出现在文件中的字段应保留默认值
	assert.Equal(t, 20, cfg.Analyzer.FindingLimit, "FindingLimit 应保留默认值")
	assert.Equal(t, "localhost:6379", cfg.Redis.Address, "Redis地址应保留默认值")
}

// TestLoadConfigInvalidYAML 验证YAML语法错误时返回错误
func TestLoadConfigInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte("server: [не yaml"), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	assert.Error(t, err, "非法YAML应返回错误")
	assert.Nil(t, cfg)
}

// TestEnvOverrides 验证敏感配置可以被环境变量覆盖
func TestEnvOverrides(t *testing.T) {
	t.Setenv("MYSQL_PASSWORD", "env-secret")
	t.Setenv("MODEL_PATH", "/tmp/model.json")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte("mysql:\n  password: \"file-secret\"\n"), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.MySQL.Password, "环境变量应覆盖配置文件中的密码")
	assert.Equal(t, "/tmp/model.json", cfg.Scorer.ModelPath)
}

// TestGetDuration 验证时长解析的默认值兜底
func TestGetDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, GetDuration("5s", time.Second))
	assert.Equal(t, time.Second, GetDuration("", time.Second))
	assert.Equal(t, time.Second, GetDuration("not-a-duration", time.Second))
}

package utils

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"math"

	"gorm.io/datatypes"
)

// Round2 四舍五入保留两位小数，报告中所有分数统一用该精度
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Clamp 把值限制在 [min, max] 区间内
func Clamp(f, min, max float64) float64 {
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}

// StringPtr 返回字符串的指针
func StringPtr(s string) *string {
	return &s
}

// Float64Ptr 返回float64的指针
func Float64Ptr(f float64) *float64 {
	return &f
}

// CalculateMD5 computes the MD5 hash of a byte slice.
func CalculateMD5(data []byte) string {
	hasher := md5.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// TruncateText 截断文本用于预览展示，超长时追加省略号
func TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}

// MarshalToJSON 辅助函数: 将任意结构序列化为数据库JSON列
// 序列化失败时返回空JSON对象，避免把半成品写入数据库
func MarshalToJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("{}")
	}
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(jsonBytes)
}

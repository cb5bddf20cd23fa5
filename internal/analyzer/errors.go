package analyzer

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	// ErrEmptyInput 简历文本为空，属于调用方可修正的输入错误
	ErrEmptyInput = errors.New("resume text is empty")
	// ErrExtractionFailed 二进制文件解析失败，同样属于输入错误
	ErrExtractionFailed = errors.New("failed to extract text from document")
	// ErrModelLoadFailed 模型工件加载失败，仅触发规则兜底，不对外暴露
	ErrModelLoadFailed = errors.New("failed to load quality model artifact")
	// ErrStorageFailed 存储协作方失败
	ErrStorageFailed = errors.New("storage operation failed")
)

// AnalysisError 包含详细错误信息的自定义错误
type AnalysisError struct {
	Op      string // 出错的操作，如 "normalize"、"extract"、"save_analysis"
	BaseErr error
	Detail  string
}

func (e *AnalysisError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s): %s", e.BaseErr, e.Op, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s)", e.BaseErr, e.Op)
}

func (e *AnalysisError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *AnalysisError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数

func NewEmptyInputError(op string) error {
	return &AnalysisError{Op: op, BaseErr: ErrEmptyInput}
}

func NewExtractionError(detail string) error {
	return &AnalysisError{Op: "extract", BaseErr: ErrExtractionFailed, Detail: detail}
}

func NewModelLoadError(detail string) error {
	return &AnalysisError{Op: "load_model", BaseErr: ErrModelLoadFailed, Detail: detail}
}

func NewStorageError(op string, detail string) error {
	return &AnalysisError{Op: op, BaseErr: ErrStorageFailed, Detail: detail}
}

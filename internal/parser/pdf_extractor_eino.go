// Package parser 封装文档文本提取，核心分析流水线只接收纯文本
package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"

	"resume-sense-go/internal/analyzer"
	"resume-sense-go/internal/logger"
)

// extractTimeout 单个文档的解析超时
const extractTimeout = 30 * time.Second

// EinoPDFTextExtractor 使用 Eino PDF Parser 提取简历文本
// 实现 processor.TextExtractor 接口
type EinoPDFTextExtractor struct {
	parser *pdf.PDFParser
}

// NewEinoPDFTextExtractor 初始化PDF文本提取器
// 配置为不按页分割，整份文档作为单个连续文本返回
func NewEinoPDFTextExtractor(ctx context.Context) (*EinoPDFTextExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false,
	})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}
	return &EinoPDFTextExtractor{parser: p}, nil
}

// ExtractTextFromReader 从PDF字节流中提取纯文本
// 解析失败或提取结果为空文本都归类为提取错误(调用方可修正的输入问题)
func (e *EinoPDFTextExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string) (string, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	docs, err := e.parser.Parse(ctx, reader, einoParser.WithURI(uri))
	duration := time.Since(startTime)
	if err != nil {
		logger.Ctx(ctx).Warn().
			Err(err).
			Str("uri", uri).
			Dur("duration", duration).
			Msg("PDF解析失败")
		return "", analyzer.NewExtractionError(fmt.Sprintf("PDF解析失败 (uri=%s): %v", uri, err))
	}
	if len(docs) == 0 {
		return "", analyzer.NewExtractionError(fmt.Sprintf("PDF解析无结果 (uri=%s)", uri))
	}

	// 合并所有文档内容(配置为整文档模式时通常只有一个)
	var sb strings.Builder
	for i, doc := range docs {
		sb.WriteString(doc.Content)
		if i < len(docs)-1 {
			sb.WriteString("\n\n")
		}
	}
	text := sb.String()

	if strings.TrimSpace(text) == "" {
		// 扫描件或纯图片PDF: 解析成功但没有可用文本
		return "", analyzer.NewExtractionError(fmt.Sprintf("PDF中没有可提取的文本 (uri=%s)", uri))
	}

	logger.Ctx(ctx).Debug().
		Str("uri", uri).
		Int("text_length", len(text)).
		Int("document_count", len(docs)).
		Dur("duration", duration).
		Msg("PDF文本提取完成")
	return text, nil
}

// ExtractTextFromBytes 从字节数组提取文本
func (e *EinoPDFTextExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error) {
	return e.ExtractTextFromReader(ctx, bytes.NewReader(data), uri)
}

// ExtractFromFile 从PDF文件路径提取文本
func (e *EinoPDFTextExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", analyzer.NewExtractionError(fmt.Sprintf("打开PDF文件失败 (%s): %v", filePath, err))
	}
	defer file.Close()
	return e.ExtractTextFromReader(ctx, file, filePath)
}

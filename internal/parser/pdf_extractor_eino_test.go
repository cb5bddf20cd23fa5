package parser

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-sense-go/internal/analyzer"
)

func TestNewEinoPDFTextExtractor(t *testing.T) {
	extractor, err := NewEinoPDFTextExtractor(context.Background())
	require.NoError(t, err)
	require.NotNil(t, extractor)
}

func TestExtractTextFromReaderInvalidPDF(t *testing.T) {
	extractor, err := NewEinoPDFTextExtractor(context.Background())
	require.NoError(t, err)

	_, err = extractor.ExtractTextFromReader(context.Background(),
		bytes.NewReader([]byte("这不是一个PDF文件")), "garbage.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, analyzer.ErrExtractionFailed), "非PDF内容应归类为提取错误")
}

func TestExtractFromFileMissing(t *testing.T) {
	extractor, err := NewEinoPDFTextExtractor(context.Background())
	require.NoError(t, err)

	_, err = extractor.ExtractFromFile(context.Background(), "/nonexistent/path/resume.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, analyzer.ErrExtractionFailed))
}

// Package router 注册HTTP路由
package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"resume-sense-go/internal/api/handler"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, analysisHandler *handler.AnalysisHandler) {
	api := h.Group("/api/v1")

	api.POST("/analyze", analysisHandler.HandleAnalyze)
	api.POST("/insights", analysisHandler.HandleInsights)
	api.GET("/history", analysisHandler.HandleHistory)
	api.GET("/resume/:id", analysisHandler.HandleGetResume)
	api.GET("/analysis/:id", analysisHandler.HandleGetAnalysis)
	api.GET("/health", analysisHandler.HandleHealth)
}

// Package handler はinsightsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameshelf_backend/internal/api"
	gamesusecase "gameshelf_backend/internal/feature/games/usecase"
	"gameshelf_backend/internal/feature/insights/domain/entity"
)

// InsightsUsecase は紹介文生成のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type InsightsUsecase interface {
	GameInsight(ctx context.Context, gameID uint) (*entity.GameInsight, error)
}

// InsightHandler は紹介文生成のHTTPリクエストを処理します。
type InsightHandler struct {
	uc InsightsUsecase
}

// NewInsightHandler はInsightHandlerの新しいインスタンスを生成します。
func NewInsightHandler(uc InsightsUsecase) *InsightHandler {
	return &InsightHandler{uc: uc}
}

// GameInsight はゲーム紹介文を生成します。
//
// エンドポイント: GET /api/games/:gameId/insight（認証必須）
func (h *InsightHandler) GameInsight(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("gameId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid game id"})
		return
	}

	insight, err := h.uc.GameInsight(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gamesusecase.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "game not found"})
			return
		}
		slog.Error("紹介文の生成に失敗", "error", err, "game_id", id)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "could not generate insight"})
		return
	}

	c.JSON(http.StatusOK, api.InsightResponse{
		GameID:  insight.GameID,
		Title:   insight.Title,
		Summary: insight.Summary,
	})
}

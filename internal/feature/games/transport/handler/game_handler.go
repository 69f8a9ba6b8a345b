// Package handler はgamesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameshelf_backend/internal/api"
	"gameshelf_backend/internal/feature/games/domain/entity"
	"gameshelf_backend/internal/feature/games/transport/http/dto"
	"gameshelf_backend/internal/feature/games/usecase"
)

// GameUsecase はカタログ操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type GameUsecase interface {
	AddGame(ctx context.Context, in usecase.GameInput) (*entity.Game, error)
	ListGames(ctx context.Context, f usecase.Filter) ([]entity.Game, error)
	GetGame(ctx context.Context, id uint) (*entity.Game, error)
	UpdateGame(ctx context.Context, id uint, in usecase.GameInput) (*entity.Game, error)
	DeleteGame(ctx context.Context, id uint) error
	DeleteGameByTitle(ctx context.Context, title string) error
}

// GameHandler はカタログ操作のHTTPリクエストを処理します。
type GameHandler struct {
	games GameUsecase
}

// NewGameHandler はGameHandlerの新しいインスタンスを生成します。
func NewGameHandler(games GameUsecase) *GameHandler {
	return &GameHandler{games: games}
}

// parseGameID は:gameIdパスパラメータをuintに変換します。
func parseGameID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("gameId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid game id"})
		return 0, false
	}
	return uint(id), true
}

// writeGameError はusecaseのエラーをHTTPステータスに対応付けます。
func writeGameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrGameNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "game not found"})
	case errors.Is(err, usecase.ErrInvalidGame):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("game operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "could not process game"})
	}
}

// Create はゲーム登録APIエンドポイントを処理します。
//
// エンドポイント: POST /api/games（認証必須）
// - バリデーションエラー時は400を返却
// - 成功時は201でゲーム本体を返却
func (h *GameHandler) Create(c *gin.Context) {
	var req dto.AddGameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("add game validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	game, err := h.games.AddGame(c.Request.Context(), usecase.GameInput{
		Title:       &req.Title,
		Genre:       &req.Genre,
		Platform:    req.Platform,
		ReleaseYear: req.ReleaseYear,
		Developer:   req.Developer,
		Rating:      req.Rating,
		Description: req.Description,
	})
	if err != nil {
		writeGameError(c, err)
		return
	}

	slog.Info("game created", "game_id", game.ID, "title", game.Title)
	c.JSON(http.StatusCreated, game)
}

// List はカタログ一覧APIエンドポイントを処理します。
//
// エンドポイント: GET /api/games（認証不要）
// クエリパラメータ: genre, platform, developer, year, search
func (h *GameHandler) List(c *gin.Context) {
	f := usecase.Filter{
		Genre:     c.Query("genre"),
		Platform:  c.Query("platform"),
		Developer: c.Query("developer"),
		Search:    c.Query("search"),
	}
	if year := c.Query("year"); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid year"})
			return
		}
		f.ReleaseYear = y
	}

	games, err := h.games.ListGames(c.Request.Context(), f)
	if err != nil {
		writeGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// Read は単一ゲーム取得APIエンドポイントを処理します。
//
// エンドポイント: GET /api/games/:gameId（認証不要）
func (h *GameHandler) Read(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		return
	}

	game, err := h.games.GetGame(c.Request.Context(), id)
	if err != nil {
		writeGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// Update はゲーム更新APIエンドポイントを処理します。
//
// エンドポイント: PUT /api/games/:gameId（認証必須）
// ゲームには所有者の概念がないため、ログイン済みであれば誰でも更新できます。
func (h *GameHandler) Update(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		return
	}

	var req dto.UpdateGameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	game, err := h.games.UpdateGame(c.Request.Context(), id, usecase.GameInput{
		Title:       req.Title,
		Genre:       req.Genre,
		Platform:    req.Platform,
		ReleaseYear: req.ReleaseYear,
		Developer:   req.Developer,
		Rating:      req.Rating,
		Description: req.Description,
	})
	if err != nil {
		writeGameError(c, err)
		return
	}

	slog.Info("game updated", "game_id", game.ID)
	c.JSON(http.StatusOK, game)
}

// Delete はゲーム削除APIエンドポイントを処理します。
//
// エンドポイント: DELETE /api/games/:gameId（認証必須）
func (h *GameHandler) Delete(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		return
	}

	if err := h.games.DeleteGame(c.Request.Context(), id); err != nil {
		writeGameError(c, err)
		return
	}

	slog.Info("game deleted", "game_id", id)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "game deleted"})
}

// DeleteByTitle はタイトル指定のゲーム削除APIエンドポイントを処理します。
//
// エンドポイント: DELETE /api/games（認証必須・ボディでタイトルを指定）
func (h *GameHandler) DeleteByTitle(c *gin.Context) {
	var req dto.DeleteGameByTitleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.games.DeleteGameByTitle(c.Request.Context(), req.Title); err != nil {
		writeGameError(c, err)
		return
	}

	slog.Info("game deleted", "title", req.Title)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "game deleted"})
}

// Package handler はplayersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameshelf_backend/internal/api"
	gamesentity "gameshelf_backend/internal/feature/games/domain/entity"
	gamesusecase "gameshelf_backend/internal/feature/games/usecase"
	"gameshelf_backend/internal/feature/players/domain/entity"
	"gameshelf_backend/internal/feature/players/transport/http/dto"
	"gameshelf_backend/internal/feature/players/usecase"
	jwtmw "gameshelf_backend/internal/platform/jwt"
)

// PlayerUsecase はプレイヤーとお気に入り操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type PlayerUsecase interface {
	Register(ctx context.Context, username, email, password string) (*entity.Player, error)
	ListPlayers(ctx context.Context) ([]entity.Player, error)
	GetPlayer(ctx context.Context, id uint) (*entity.Player, error)
	UpdatePlayer(ctx context.Context, id uint, upd usecase.PlayerUpdate) (*entity.Player, error)
	DeletePlayer(ctx context.Context, id uint) error
	DeletePlayerByEmail(ctx context.Context, email string) error
	AddFavorite(ctx context.Context, playerID, gameID uint) (*entity.Player, error)
	RemoveFavorite(ctx context.Context, playerID, gameID uint) (*entity.Player, error)
	ListFavorites(ctx context.Context, playerID uint) ([]gamesentity.Game, error)
}

// PlayerHandler はプレイヤー操作のHTTPリクエストを処理します。
type PlayerHandler struct {
	players PlayerUsecase
}

// NewPlayerHandler はPlayerHandlerの新しいインスタンスを生成します。
func NewPlayerHandler(players PlayerUsecase) *PlayerHandler {
	return &PlayerHandler{players: players}
}

// parsePlayerID は:userIdパスパラメータをuintに変換します。
func parsePlayerID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid user id"})
		return 0, false
	}
	return uint(id), true
}

// requireOwner は認証済みIDとリソース所有者IDの完全一致を検証します。
// 一致しない場合は403を書き込み、falseを返します。役割や管理者の上書きは存在しません。
func requireOwner(c *gin.Context, ownerID uint) bool {
	if c.GetUint(jwtmw.ContextUserID) != ownerID {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "user is not authorized"})
		return false
	}
	return true
}

// writePlayerError はusecaseのエラーをHTTPステータスに対応付けます。
func writePlayerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "player not found"})
	case errors.Is(err, gamesusecase.ErrGameNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "game not found"})
	case errors.Is(err, usecase.ErrPlayerAlreadyExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "username or email already taken"})
	case errors.Is(err, usecase.ErrInvalidPlayer):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("player operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "could not process player"})
	}
}

// Create はプレイヤー登録APIエンドポイントを処理します。
//
// エンドポイント: POST /api/users（認証不要）
// - バリデーションエラー時は400を返却
// - ユーザー名・メール重複時は409を返却
// - 成功時は201を返却
func (h *PlayerHandler) Create(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	player, err := h.players.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writePlayerError(c, err)
		return
	}

	slog.Info("player registered", "player_id", player.ID, "username", player.Username)
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "successfully registered"})
}

// List はプレイヤー一覧APIエンドポイントを処理します。
//
// エンドポイント: GET /api/users（認証不要）
// パスワードハッシュはエンティティ側のjsonタグで常に除外されます。
func (h *PlayerHandler) List(c *gin.Context) {
	players, err := h.players.ListPlayers(c.Request.Context())
	if err != nil {
		writePlayerError(c, err)
		return
	}
	c.JSON(http.StatusOK, players)
}

// Read は単一プレイヤー取得APIエンドポイントを処理します。
//
// エンドポイント: GET /api/users/:userId（認証必須）
func (h *PlayerHandler) Read(c *gin.Context) {
	id, ok := parsePlayerID(c)
	if !ok {
		return
	}

	player, err := h.players.GetPlayer(c.Request.Context(), id)
	if err != nil {
		writePlayerError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

// Update はプロフィール更新APIエンドポイントを処理します。
//
// エンドポイント: PUT /api/users/:userId（認証必須・本人のみ）
func (h *PlayerHandler) Update(c *gin.Context) {
	id, ok := parsePlayerID(c)
	if !ok {
		return
	}
	if !requireOwner(c, id) {
		return
	}

	var req dto.UpdatePlayerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	player, err := h.players.UpdatePlayer(c.Request.Context(), id, usecase.PlayerUpdate{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		writePlayerError(c, err)
		return
	}

	slog.Info("player updated", "player_id", player.ID)
	c.JSON(http.StatusOK, player)
}

// Delete はプレイヤー削除APIエンドポイントを処理します。
//
// エンドポイント: DELETE /api/users/:userId（認証必須・本人のみ）
func (h *PlayerHandler) Delete(c *gin.Context) {
	id, ok := parsePlayerID(c)
	if !ok {
		return
	}
	if !requireOwner(c, id) {
		return
	}

	if err := h.players.DeletePlayer(c.Request.Context(), id); err != nil {
		writePlayerError(c, err)
		return
	}

	slog.Info("player deleted", "player_id", id)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "player deleted"})
}

// DeleteByEmail はメールアドレス指定のプレイヤー削除APIエンドポイントを処理します。
//
// エンドポイント: DELETE /api/users（認証必須・ボディでメールアドレスを指定）
// 元のシステム同様、所有者チェックは行いません（ログイン済みであれば実行可能）。
func (h *PlayerHandler) DeleteByEmail(c *gin.Context) {
	var req dto.DeletePlayerByEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.players.DeletePlayerByEmail(c.Request.Context(), req.Email); err != nil {
		writePlayerError(c, err)
		return
	}

	slog.Info("player deleted", "email", req.Email)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "player deleted"})
}

// Games はプレイヤーのお気に入り一覧APIエンドポイントを処理します。
//
// エンドポイント: GET /api/users/:userId/games（認証必須）
func (h *PlayerHandler) Games(c *gin.Context) {
	id, ok := parsePlayerID(c)
	if !ok {
		return
	}

	games, err := h.players.ListFavorites(c.Request.Context(), id)
	if err != nil {
		writePlayerError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// AddToCollection はお気に入り追加APIエンドポイントを処理します。
//
// エンドポイント: PUT /api/users/:userId/collection/add（認証必須・本人のみ）
// 追加済みのゲームを重ねて追加しても成功として扱います。
func (h *PlayerHandler) AddToCollection(c *gin.Context) {
	id, ok := parsePlayerID(c)
	if !ok {
		return
	}
	if !requireOwner(c, id) {
		return
	}

	var req dto.CollectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	player, err := h.players.AddFavorite(c.Request.Context(), id, req.GameID)
	if err != nil {
		writePlayerError(c, err)
		return
	}

	slog.Info("favorite added", "player_id", id, "game_id", req.GameID)
	c.JSON(http.StatusOK, player)
}

// RemoveFromCollection はお気に入り削除APIエンドポイントを処理します。
//
// エンドポイント: PUT /api/users/:userId/collection/remove（認証必須・本人のみ）
// 登録されていないゲームを外しても成功として扱います。
func (h *PlayerHandler) RemoveFromCollection(c *gin.Context) {
	id, ok := parsePlayerID(c)
	if !ok {
		return
	}
	if !requireOwner(c, id) {
		return
	}

	var req dto.CollectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	player, err := h.players.RemoveFavorite(c.Request.Context(), id, req.GameID)
	if err != nil {
		writePlayerError(c, err)
		return
	}

	slog.Info("favorite removed", "player_id", id, "game_id", req.GameID)
	c.JSON(http.StatusOK, player)
}

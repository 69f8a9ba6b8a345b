// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gameshelf_backend/internal/api"
	"gameshelf_backend/internal/feature/auth/transport/http/dto"
	"gameshelf_backend/internal/feature/players/domain/entity"
)

// sessionCookieName はログイン時に発行されるトークンクッキー名です。
// ログアウトはクライアント側のトークン破棄とこのクッキーの削除のみで、
// サーバー側の失効リストは存在しません。
const sessionCookieName = "t"

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はプレイヤーを認証し、成功時にJWTトークンとプレイヤーを返します。
	Login(ctx context.Context, username, password string) (string, *entity.Player, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login はログインAPIエンドポイントを処理します。
//
// エンドポイント: POST /auth/login
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（ユーザー不在とパスワード不一致を区別しない）
// - 認証成功時はトークンとプレイヤー概要を返却し、クッキーも設定
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	token, player, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "username and password don't match"})
		return
	}

	c.SetCookie(sessionCookieName, token, 0, "/", "", false, true)

	slog.Info("login successful", "player_id", player.ID, "username", player.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.LoginResponse{
		Token: token,
		User: api.LoginUser{
			ID:       player.ID,
			Username: player.Username,
		},
	})
}

// Logout はログアウトAPIエンドポイントを処理します。
//
// エンドポイント: GET /auth/logout
// トークン自体は失効しません。クッキーを削除するだけのベストエフォートです。
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
}

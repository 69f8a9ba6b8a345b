package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "gameshelf_backend/internal/feature/auth/transport/handler"
	avatarhandler "gameshelf_backend/internal/feature/avatars/transport/handler"
	gamehandler "gameshelf_backend/internal/feature/games/transport/handler"
	insighthandler "gameshelf_backend/internal/feature/insights/transport/handler"
	playerhandler "gameshelf_backend/internal/feature/players/transport/handler"
	"gameshelf_backend/internal/platform/http/handler"
	jwtmw "gameshelf_backend/internal/platform/jwt"
)

// Config groups the handlers and settings the router needs.
// InsightHandler is optional: the insight route is only mounted when the
// Gemini client initialized at startup.
type Config struct {
	Auth      *authhandler.AuthHandler
	Players   *playerhandler.PlayerHandler
	Games     *gamehandler.GameHandler
	Avatars   *avatarhandler.AvatarHandler
	Insights  *insighthandler.InsightHandler
	AvatarDir string
}

// NewRouter builds the gin engine with all application routes.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// ログイン（JWT 発行）とログアウト
	r.POST("/auth/login", cfg.Auth.Login)
	r.GET("/auth/logout", cfg.Auth.Logout)
	// 新規プレイヤー登録と一覧
	r.POST("/api/users", cfg.Players.Create)
	r.GET("/api/users", cfg.Players.List)
	// カタログの閲覧・検索
	r.GET("/api/games", cfg.Games.List)
	r.GET("/api/games/:gameId", cfg.Games.Read)
	// アップロード済みアバターの静的配信
	r.Static("/avatars", cfg.AvatarDir)

	// 認証必須のルート
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		// プレイヤー（PUT/DELETEと所蔵操作は本人のみ。所有者チェックはハンドラー側）
		auth.GET("/api/users/:userId", cfg.Players.Read)
		auth.PUT("/api/users/:userId", cfg.Players.Update)
		auth.DELETE("/api/users/:userId", cfg.Players.Delete)
		// メールアドレス指定の削除（ginのワイルドカードと衝突するため、コレクション直下のDELETEで受ける）
		auth.DELETE("/api/users", cfg.Players.DeleteByEmail)
		auth.GET("/api/users/:userId/games", cfg.Players.Games)
		auth.PUT("/api/users/:userId/collection/add", cfg.Players.AddToCollection)
		auth.PUT("/api/users/:userId/collection/remove", cfg.Players.RemoveFromCollection)

		// カタログの変更（ゲームに所有者は存在しないため、ログイン済みなら誰でも可）
		auth.POST("/api/games", cfg.Games.Create)
		auth.PUT("/api/games/:gameId", cfg.Games.Update)
		auth.DELETE("/api/games/:gameId", cfg.Games.Delete)
		// タイトル指定の削除（同上の理由でコレクション直下のDELETEで受ける）
		auth.DELETE("/api/games", cfg.Games.DeleteByTitle)

		// アバターアップロード
		auth.POST("/upload/avatar", cfg.Avatars.Upload)

		// 紹介文生成（Geminiクライアントが初期化された場合のみ）
		if cfg.Insights != nil {
			auth.GET("/api/games/:gameId/insight", cfg.Insights.GameInsight)
		}
	}

	return r
}

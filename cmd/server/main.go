package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"gameshelf_backend/internal/app/di"
	"gameshelf_backend/internal/app/router"
	authhandler "gameshelf_backend/internal/feature/auth/transport/handler"
	authusecase "gameshelf_backend/internal/feature/auth/usecase"
	"gameshelf_backend/internal/feature/avatars/adapters/disk"
	avatarhandler "gameshelf_backend/internal/feature/avatars/transport/handler"
	avatarusecase "gameshelf_backend/internal/feature/avatars/usecase"
	gamehandler "gameshelf_backend/internal/feature/games/transport/handler"
	gamesusecase "gameshelf_backend/internal/feature/games/usecase"
	"gameshelf_backend/internal/feature/insights/adapters/gemini"
	insighthandler "gameshelf_backend/internal/feature/insights/transport/handler"
	insightsusecase "gameshelf_backend/internal/feature/insights/usecase"
	playeradapters "gameshelf_backend/internal/feature/players/adapters"
	playerhandler "gameshelf_backend/internal/feature/players/transport/handler"
	playerusecase "gameshelf_backend/internal/feature/players/usecase"
	"gameshelf_backend/internal/platform/db"
	jwtmw "gameshelf_backend/internal/platform/jwt"
	platformredis "gameshelf_backend/internal/platform/redis"
	"gameshelf_backend/internal/shared/ratelimiter"
)

const defaultAvatarDir = "./public/avatars"

func main() {
	ctx := context.Background()

	// db
	gormDB := db.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	playerRepo := playeradapters.NewPlayerRepository(gormDB)
	// Redisキャッシュでラップ（Redis未接続時は素のリポジトリ）
	gameRepo := di.NewGameRepository(rdb, gormDB)

	// アバター保存先
	avatarDir := os.Getenv("AVATAR_DIR")
	if avatarDir == "" {
		avatarDir = defaultAvatarDir
	}
	avatarStore, err := disk.NewDiskStorage(avatarDir, "/avatars")
	if err != nil {
		log.Fatal("failed to prepare avatar directory: ", err)
	}

	// Vision APIが使えない環境ではモデレーションなしで動作する
	moderator := di.NewImageModerator(ctx)

	// Usecase
	tokenGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret))
	authUC := authusecase.NewAuthUsecase(playerRepo, tokenGen)
	gameUC := gamesusecase.NewGameUsecase(gameRepo)
	playerUC := playerusecase.NewPlayerUsecase(playerRepo, gameRepo)
	avatarUC := avatarusecase.NewAvatarUsecase(avatarStore, moderator)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	gameH := gamehandler.NewGameHandler(gameUC)
	playerH := playerhandler.NewPlayerHandler(playerUC)
	avatarH := avatarhandler.NewAvatarHandler(avatarUC)

	// 紹介文生成はGeminiクライアントが初期化できた場合のみ有効
	var insightH *insighthandler.InsightHandler
	if analyzer, err := gemini.NewGeminiAnalyzer(ctx); err != nil {
		log.Println("[WARN] Gemini unavailable. Game insights disabled.")
	} else {
		limiter := ratelimiter.NewRateLimiter(10, time.Minute)
		insightUC := insightsusecase.NewInsightsUsecase(gameRepo, analyzer, limiter)
		insightH = insighthandler.NewInsightHandler(insightUC)
	}

	// ルータ生成
	router := router.NewRouter(router.Config{
		Auth:      authH,
		Players:   playerH,
		Games:     gameH,
		Avatars:   avatarH,
		Insights:  insightH,
		AvatarDir: avatarDir,
	})

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := router.Run(addr); err != nil {
		log.Fatal(err)
	}
}

// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"gameshelf_backend/internal/feature/avatars/adapters/vision"
	avatarsusecase "gameshelf_backend/internal/feature/avatars/usecase"
	gamesadapters "gameshelf_backend/internal/feature/games/adapters"
	gamesusecase "gameshelf_backend/internal/feature/games/usecase"
	"gameshelf_backend/internal/platform/cache"
)

// catalogCacheTTL is how long catalog reads stay cached between invalidations.
const catalogCacheTTL = 5 * time.Minute

// NewGameRepository creates a GameRepository implementation.
// If Redis is available, the Postgres repository is wrapped with a
// read-through cache. Otherwise the bare repository is returned.
func NewGameRepository(rdb *redisv9.Client, db *gorm.DB) gamesusecase.GameRepository {
	repo := gamesadapters.NewGameRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingGameRepository(rdb, catalogCacheTTL, repo, "games")
}

// NewImageModerator creates the SafeSearch moderator when Google credentials
// are available. A nil moderator disables content checks on uploads.
func NewImageModerator(ctx context.Context) avatarsusecase.ImageModerator {
	moderator, err := vision.NewSafeSearchModerator(ctx)
	if err != nil {
		slog.Warn("vision API unavailable, avatar moderation disabled", "error", err)
		return nil
	}
	return moderator
}

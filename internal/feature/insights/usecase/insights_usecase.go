// Package usecase はinsightsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	gamesentity "gameshelf_backend/internal/feature/games/domain/entity"
	"gameshelf_backend/internal/feature/insights/domain/entity"
)

// blurbPromptTemplate は紹介文生成のプロンプトテンプレートです。
const blurbPromptTemplate = "Write a short, spoiler-free blurb (3 sentences max) for the video game %q%s. Do not invent release dates or sales figures."

// GameFinder は紹介文生成対象のゲーム参照を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type GameFinder interface {
	// FindByID は指定されたIDに一致するゲームを取得します。
	FindByID(ctx context.Context, id uint) (*gamesentity.Game, error)
}

// Analyzer は生成AIによるテキスト生成を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Analyzer interface {
	// Analyze はプロンプトから生成テキストを返します。
	Analyze(ctx context.Context, prompt string) (string, error)
}

// RateLimiter は外部APIの呼び出し頻度を制限します。
type RateLimiter interface {
	WaitIfNeeded()
}

// insightsUsecase はゲーム紹介文生成のビジネスロジックを提供します。
type insightsUsecase struct {
	games    GameFinder
	analyzer Analyzer
	limiter  RateLimiter
}

// NewInsightsUsecase はinsightsUsecaseの新しいインスタンスを生成します。
// limiterはnil可。その場合、外部API呼び出しは制限されません。
func NewInsightsUsecase(games GameFinder, analyzer Analyzer, limiter RateLimiter) *insightsUsecase {
	return &insightsUsecase{games: games, analyzer: analyzer, limiter: limiter}
}

// buildPrompt はゲームのメタデータからプロンプトを組み立てます。
func buildPrompt(game *gamesentity.Game) string {
	var details []string
	if game.Genre != "" {
		details = append(details, "a "+game.Genre+" game")
	}
	if game.Platform != "" {
		details = append(details, "on "+game.Platform)
	}
	if game.Developer != "" {
		details = append(details, "by "+game.Developer)
	}
	suffix := ""
	if len(details) > 0 {
		suffix = ", " + strings.Join(details, " ")
	}
	return fmt.Sprintf(blurbPromptTemplate, game.Title, suffix)
}

// GameInsight はカタログのゲームに対する紹介文を生成します。
func (u *insightsUsecase) GameInsight(ctx context.Context, gameID uint) (*entity.GameInsight, error) {
	game, err := u.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if u.limiter != nil {
		u.limiter.WaitIfNeeded()
	}

	summary, err := u.analyzer.Analyze(ctx, buildPrompt(game))
	if err != nil {
		return nil, fmt.Errorf("analyzer failed for game %d: %w", gameID, err)
	}

	return &entity.GameInsight{
		GameID:  game.ID,
		Title:   game.Title,
		Summary: summary,
	}, nil
}

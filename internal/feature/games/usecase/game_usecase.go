package usecase

import (
	"context"
	"fmt"
	"strings"

	"gameshelf_backend/internal/feature/games/domain/entity"
)

const (
	// MinRating はレーティングの下限値です。
	MinRating = 0
	// MaxRating はレーティングの上限値です。
	MaxRating = 10
)

// Filter はカタログ一覧の絞り込み条件を表します。ゼロ値のフィールドは無視されます。
type Filter struct {
	Genre       string
	Platform    string
	Developer   string
	ReleaseYear int
	// Search は title/genre/platform を対象とした部分一致検索語です。
	// 指定された場合、他の絞り込み条件より優先されます。
	Search string
}

// GameRepository はゲームエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type GameRepository interface {
	// Create は新しいゲームをストレージに永続化します。
	Create(ctx context.Context, game *entity.Game) error

	// List は全ゲームを返します。順序は保証されません。
	List(ctx context.Context) ([]entity.Game, error)

	// FindByID は指定されたIDに一致するゲームを取得します。
	// ゲームが存在しない場合、ErrGameNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Game, error)

	// Filter は指定された条件に一致するゲームを返します。
	Filter(ctx context.Context, f Filter) ([]entity.Game, error)

	// Search は title/genre/platform の大文字小文字を区別しない部分一致検索を行います。
	Search(ctx context.Context, term string) ([]entity.Game, error)

	// Update は既存のゲームを上書き保存します。
	Update(ctx context.Context, game *entity.Game) error

	// Delete はIDでゲームを削除します。お気に入りの参照も併せて解消されます。
	// ゲームが存在しない場合、ErrGameNotFoundを返します。
	Delete(ctx context.Context, id uint) error

	// DeleteByTitle はタイトルでゲームを削除します。
	// ゲームが存在しない場合、ErrGameNotFoundを返します。
	DeleteByTitle(ctx context.Context, title string) error
}

// GameInput はゲームの作成・更新に使う入力値です。
// ポインタフィールドはnilのとき「指定なし」を意味します。
type GameInput struct {
	Title       *string
	Genre       *string
	Platform    *string
	ReleaseYear *int
	Developer   *string
	Rating      *float64
	Description *string
}

// gameUsecase はカタログのビジネスロジックを実装します。
type gameUsecase struct {
	games GameRepository
}

// NewGameUsecase はgameUsecaseの新しいインスタンスを生成します。
func NewGameUsecase(games GameRepository) *gameUsecase {
	return &gameUsecase{games: games}
}

// validateRating はレーティングが[0, 10]の閉区間に収まることを確認します。
func validateRating(rating float64) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidGame, MinRating, MaxRating)
	}
	return nil
}

// AddGame は必須フィールドとレーティング範囲を検証し、新しいゲームを登録します。
func (u *gameUsecase) AddGame(ctx context.Context, in GameInput) (*entity.Game, error) {
	game := &entity.Game{}
	if in.Title != nil {
		game.Title = strings.TrimSpace(*in.Title)
	}
	if in.Genre != nil {
		game.Genre = strings.TrimSpace(*in.Genre)
	}
	if game.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidGame)
	}
	if game.Genre == "" {
		return nil, fmt.Errorf("%w: genre is required", ErrInvalidGame)
	}
	if in.Platform != nil {
		game.Platform = strings.TrimSpace(*in.Platform)
	}
	if in.ReleaseYear != nil {
		game.ReleaseYear = *in.ReleaseYear
	}
	if in.Developer != nil {
		game.Developer = strings.TrimSpace(*in.Developer)
	}
	if in.Rating != nil {
		if err := validateRating(*in.Rating); err != nil {
			return nil, err
		}
		game.Rating = *in.Rating
	}
	if in.Description != nil {
		game.Description = strings.TrimSpace(*in.Description)
	}

	if err := u.games.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return game, nil
}

// ListGames は絞り込み条件付きでカタログを取得します。
// Searchが指定された場合は検索が優先され、条件が空の場合は全件を返します。
func (u *gameUsecase) ListGames(ctx context.Context, f Filter) ([]entity.Game, error) {
	if f.Search != "" {
		return u.games.Search(ctx, f.Search)
	}
	if f.Genre != "" || f.Platform != "" || f.Developer != "" || f.ReleaseYear != 0 {
		return u.games.Filter(ctx, f)
	}
	return u.games.List(ctx)
}

// GetGame はIDでゲームを取得します。
func (u *gameUsecase) GetGame(ctx context.Context, id uint) (*entity.Game, error) {
	return u.games.FindByID(ctx, id)
}

// UpdateGame は指定されたフィールドのみを更新します。nilのフィールドは保持されます。
func (u *gameUsecase) UpdateGame(ctx context.Context, id uint, in GameInput) (*entity.Game, error) {
	game, err := u.games.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidGame)
		}
		game.Title = title
	}
	if in.Genre != nil {
		genre := strings.TrimSpace(*in.Genre)
		if genre == "" {
			return nil, fmt.Errorf("%w: genre is required", ErrInvalidGame)
		}
		game.Genre = genre
	}
	if in.Platform != nil {
		game.Platform = strings.TrimSpace(*in.Platform)
	}
	if in.ReleaseYear != nil {
		game.ReleaseYear = *in.ReleaseYear
	}
	if in.Developer != nil {
		game.Developer = strings.TrimSpace(*in.Developer)
	}
	if in.Rating != nil {
		if err := validateRating(*in.Rating); err != nil {
			return nil, err
		}
		game.Rating = *in.Rating
	}
	if in.Description != nil {
		game.Description = strings.TrimSpace(*in.Description)
	}

	if err := u.games.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}
	return game, nil
}

// DeleteGame はIDでゲームを削除します。
func (u *gameUsecase) DeleteGame(ctx context.Context, id uint) error {
	return u.games.Delete(ctx, id)
}

// DeleteGameByTitle はタイトルでゲームを削除します。
func (u *gameUsecase) DeleteGameByTitle(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidGame)
	}
	return u.games.DeleteByTitle(ctx, title)
}

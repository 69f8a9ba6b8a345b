// Package adapters はgamesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"gameshelf_backend/internal/feature/games/domain/entity"
	"gameshelf_backend/internal/feature/games/usecase"
)

// favoritesJoinTable はプレイヤーのお気に入りを保持する中間テーブル名です。
// players側のmany2manyタグと一致させる必要があります。
const favoritesJoinTable = "player_favorite_games"

// gamePostgres はGameRepositoryインターフェースのPostgres実装です。
// GORMを使用してデータベース操作を行います。
type gamePostgres struct {
	db *gorm.DB
}

// gamePostgresがGameRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.GameRepository = (*gamePostgres)(nil)

// NewGameRepository は指定されたgorm.DB接続でgamePostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewGameRepository(db *gorm.DB) *gamePostgres {
	return &gamePostgres{db: db}
}

// Create はゲームをデータベースに追加します。
func (r *gamePostgres) Create(ctx context.Context, game *entity.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

// List は全ゲームを返します。
func (r *gamePostgres) List(ctx context.Context) ([]entity.Game, error) {
	var games []entity.Game
	if err := r.db.WithContext(ctx).Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// FindByID はIDでゲームを取得します。
// ゲームが存在しない場合、usecase.ErrGameNotFoundを返します。
func (r *gamePostgres) FindByID(ctx context.Context, id uint) (*entity.Game, error) {
	var game entity.Game
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

// Filter は指定された条件に一致するゲームを返します。ゼロ値の条件は無視されます。
func (r *gamePostgres) Filter(ctx context.Context, f usecase.Filter) ([]entity.Game, error) {
	q := r.db.WithContext(ctx).Model(&entity.Game{})
	if f.Genre != "" {
		q = q.Where("genre = ?", f.Genre)
	}
	if f.Platform != "" {
		q = q.Where("platform = ?", f.Platform)
	}
	if f.Developer != "" {
		q = q.Where("developer = ?", f.Developer)
	}
	if f.ReleaseYear != 0 {
		q = q.Where("release_year = ?", f.ReleaseYear)
	}

	var games []entity.Game
	if err := q.Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// Search は title/genre/platform の大文字小文字を区別しない部分一致検索を行います。
// LOWER + LIKE はPostgresとテスト用SQLiteの双方で同じ挙動になります。
func (r *gamePostgres) Search(ctx context.Context, term string) ([]entity.Game, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	var games []entity.Game
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(genre) LIKE ? OR LOWER(platform) LIKE ?",
			pattern, pattern, pattern).
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

// Update はゲームの全フィールドを上書き保存します。
func (r *gamePostgres) Update(ctx context.Context, game *entity.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

// Delete はIDでゲームを削除し、お気に入りの参照も併せて解消します。
// ドキュメントDB由来の「参照の取り残し」をリレーショナル側では許容しないため、
// 中間テーブルの行を同一トランザクションで削除します。
func (r *gamePostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+favoritesJoinTable+" WHERE game_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Game{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrGameNotFound
		}
		return nil
	})
}

// DeleteByTitle はタイトルでゲームを削除します。
// ゲームが存在しない場合、usecase.ErrGameNotFoundを返します。
func (r *gamePostgres) DeleteByTitle(ctx context.Context, title string) error {
	var game entity.Game
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.ErrGameNotFound
		}
		return err
	}
	return r.Delete(ctx, game.ID)
}

// Package adapters はplayersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	gamesentity "gameshelf_backend/internal/feature/games/domain/entity"
	"gameshelf_backend/internal/feature/players/domain/entity"
	"gameshelf_backend/internal/feature/players/usecase"
)

// favoritesJoinTable はお気に入りを保持する中間テーブル名です。
const favoritesJoinTable = "player_favorite_games"

// uniqueViolation はPostgresのユニーク制約違反のSQLSTATEです。
const uniqueViolation = "23505"

// playerPostgres はPlayerRepositoryインターフェースのPostgres実装です。
// GORMを使用してデータベース操作を行います。
type playerPostgres struct {
	db *gorm.DB
}

// playerPostgresがPlayerRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PlayerRepository = (*playerPostgres)(nil)

// NewPlayerRepository は指定されたgorm.DB接続でplayerPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewPlayerRepository(db *gorm.DB) *playerPostgres {
	return &playerPostgres{db: db}
}

// isDuplicateKey はユニーク制約違反かどうかを判定します。
// GORMのエラー変換とpgxのSQLSTATEの両方をチェックします。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Create はプレイヤーをデータベースに追加します。
// ユーザー名またはメールアドレスが重複する場合、usecase.ErrPlayerAlreadyExistsを返します。
func (r *playerPostgres) Create(ctx context.Context, p *entity.Player) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrPlayerAlreadyExists
		}
		return err
	}
	return nil
}

// List は全プレイヤーをお気に入り込みで返します。
func (r *playerPostgres) List(ctx context.Context) ([]entity.Player, error) {
	var players []entity.Player
	if err := r.db.WithContext(ctx).Preload("FavoriteGames").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// FindByID はIDでプレイヤーをお気に入り込みで取得します。
// プレイヤーが存在しない場合、usecase.ErrPlayerNotFoundを返します。
func (r *playerPostgres) FindByID(ctx context.Context, id uint) (*entity.Player, error) {
	var p entity.Player
	if err := r.db.WithContext(ctx).Preload("FavoriteGames").Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByUsername はユーザー名でプレイヤーを取得します。
// 認証経路で使うため、お気に入りのプリロードは行いません。
func (r *playerPostgres) FindByUsername(ctx context.Context, username string) (*entity.Player, error) {
	var p entity.Player
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update はプレイヤーの全フィールドを上書き保存します。
// ユーザー名またはメールアドレスが他のプレイヤーと重複する場合、usecase.ErrPlayerAlreadyExistsを返します。
func (r *playerPostgres) Update(ctx context.Context, p *entity.Player) error {
	if err := r.db.WithContext(ctx).Omit("FavoriteGames").Save(p).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrPlayerAlreadyExists
		}
		return err
	}
	return nil
}

// Delete はIDでプレイヤーを削除し、お気に入りの中間行も同一トランザクションで削除します。
func (r *playerPostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+favoritesJoinTable+" WHERE player_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Player{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrPlayerNotFound
		}
		return nil
	})
}

// DeleteByEmail はメールアドレスでプレイヤーを削除します。
// プレイヤーが存在しない場合、usecase.ErrPlayerNotFoundを返します。
func (r *playerPostgres) DeleteByEmail(ctx context.Context, email string) error {
	var p entity.Player
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.ErrPlayerNotFound
		}
		return err
	}
	return r.Delete(ctx, p.ID)
}

// AddFavorite は中間テーブルに(player, game)の組を追加します。
// GORMのアソシエーションAppendは中間行をON CONFLICT DO NOTHINGで挿入するため、
// 同じ組を重ねて追加しても行は増えません（集合のセマンティクス）。
func (r *playerPostgres) AddFavorite(ctx context.Context, playerID, gameID uint) error {
	player := entity.Player{ID: playerID}
	game := gamesentity.Game{ID: gameID}
	return r.db.WithContext(ctx).Model(&player).Association("FavoriteGames").Append(&game)
}

// RemoveFavorite は中間テーブルから(player, game)の組を削除します。
// 存在しない組の削除は何も起こらず成功します。
func (r *playerPostgres) RemoveFavorite(ctx context.Context, playerID, gameID uint) error {
	player := entity.Player{ID: playerID}
	game := gamesentity.Game{ID: gameID}
	return r.db.WithContext(ctx).Model(&player).Association("FavoriteGames").Delete(&game)
}

// ListFavorites はプレイヤーのお気に入りゲームを解決して返します。
func (r *playerPostgres) ListFavorites(ctx context.Context, playerID uint) ([]gamesentity.Game, error) {
	player := entity.Player{ID: playerID}
	var games []gamesentity.Game
	if err := r.db.WithContext(ctx).Model(&player).Association("FavoriteGames").Find(&games); err != nil {
		return nil, err
	}
	return games, nil
}

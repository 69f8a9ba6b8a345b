package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	gamesentity "gameshelf_backend/internal/feature/games/domain/entity"
	"gameshelf_backend/internal/feature/players/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 6
)

// PlayerRepository はプレイヤーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type PlayerRepository interface {
	// Create は新しいプレイヤーをストレージに永続化します。
	// ユーザー名またはメールアドレスが重複する場合、ErrPlayerAlreadyExistsを返します。
	Create(ctx context.Context, player *entity.Player) error

	// List は全プレイヤーをお気に入り込みで返します。
	List(ctx context.Context) ([]entity.Player, error)

	// FindByID は指定されたIDに一致するプレイヤーをお気に入り込みで取得します。
	// プレイヤーが存在しない場合、ErrPlayerNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Player, error)

	// FindByUsername はユーザー名でプレイヤーを取得します。
	// プレイヤーが存在しない場合、ErrPlayerNotFoundを返します。
	FindByUsername(ctx context.Context, username string) (*entity.Player, error)

	// Update は既存のプレイヤーを上書き保存します。
	Update(ctx context.Context, player *entity.Player) error

	// Delete はIDでプレイヤーを削除します。お気に入りの中間行も併せて削除されます。
	Delete(ctx context.Context, id uint) error

	// DeleteByEmail はメールアドレスでプレイヤーを削除します。
	DeleteByEmail(ctx context.Context, email string) error

	// AddFavorite は中間テーブルに(player, game)の組を追加します。
	// 既に存在する場合は何もしません（集合のセマンティクス）。
	AddFavorite(ctx context.Context, playerID, gameID uint) error

	// RemoveFavorite は中間テーブルから(player, game)の組を削除します。
	// 存在しない場合は何もしません。
	RemoveFavorite(ctx context.Context, playerID, gameID uint) error

	// ListFavorites はプレイヤーのお気に入りゲームを解決して返します。順序は保証されません。
	ListFavorites(ctx context.Context, playerID uint) ([]gamesentity.Game, error)
}

// GameFinder はお気に入り追加時の存在チェックに使うゲーム参照を抽象化します。
type GameFinder interface {
	// FindByID は指定されたIDに一致するゲームを取得します。
	FindByID(ctx context.Context, id uint) (*gamesentity.Game, error)
}

// PlayerUpdate はプロフィール更新の入力値です。nilのフィールドは保持されます。
type PlayerUpdate struct {
	Username  *string
	Email     *string
	Password  *string
	AvatarURL *string
}

// playerUsecase はプレイヤーとお気に入り管理のビジネスロジックを実装します。
type playerUsecase struct {
	players PlayerRepository
	games   GameFinder
}

// NewPlayerUsecase はplayerUsecaseの新しいインスタンスを生成します。
func NewPlayerUsecase(players PlayerRepository, games GameFinder) *playerUsecase {
	return &playerUsecase{players: players, games: games}
}

// hashPassword はパスワードの長さを検証し、bcryptでハッシュ化します。
// 平文がそのまま永続化される経路を作らないため、ハッシュ化は必ずここを通します。
func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidPlayer, minPasswordLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Register はハッシュ化されたパスワードで新規プレイヤーを登録します。
func (u *playerUsecase) Register(ctx context.Context, username, email, password string) (*entity.Player, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidPlayer)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidPlayer)
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	player := &entity.Player{
		Username:  username,
		Email:     email,
		Password:  hashed,
		AvatarURL: entity.DefaultAvatarURL,
	}
	if err := u.players.Create(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// ListPlayers は全プレイヤーを返します。
func (u *playerUsecase) ListPlayers(ctx context.Context) ([]entity.Player, error) {
	return u.players.List(ctx)
}

// GetPlayer はIDでプレイヤーを取得します。
func (u *playerUsecase) GetPlayer(ctx context.Context, id uint) (*entity.Player, error) {
	return u.players.FindByID(ctx, id)
}

// UpdatePlayer は指定されたフィールドのみを更新します。
// パスワードが指定された場合は永続化前に再ハッシュされます。
func (u *playerUsecase) UpdatePlayer(ctx context.Context, id uint, upd PlayerUpdate) (*entity.Player, error) {
	player, err := u.players.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username is required", ErrInvalidPlayer)
		}
		player.Username = username
	}
	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email is required", ErrInvalidPlayer)
		}
		player.Email = email
	}
	if upd.AvatarURL != nil {
		player.AvatarURL = *upd.AvatarURL
	}
	if upd.Password != nil {
		hashed, err := hashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		player.Password = hashed
	}

	if err := u.players.Update(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// DeletePlayer はIDでプレイヤーを削除します。
func (u *playerUsecase) DeletePlayer(ctx context.Context, id uint) error {
	return u.players.Delete(ctx, id)
}

// DeletePlayerByEmail はメールアドレスでプレイヤーを削除します。
func (u *playerUsecase) DeletePlayerByEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidPlayer)
	}
	return u.players.DeleteByEmail(ctx, email)
}

// AddFavorite はプレイヤーのお気に入りにゲームを追加します。
// 存在しないゲームの追加はエラーになり、既に追加済みの場合は何もせず成功します。
func (u *playerUsecase) AddFavorite(ctx context.Context, playerID, gameID uint) (*entity.Player, error) {
	if _, err := u.players.FindByID(ctx, playerID); err != nil {
		return nil, err
	}
	// 参照先の存在チェック。未検証の参照書き込みは取り残しの原因になる。
	if _, err := u.games.FindByID(ctx, gameID); err != nil {
		return nil, err
	}
	if err := u.players.AddFavorite(ctx, playerID, gameID); err != nil {
		return nil, err
	}
	return u.players.FindByID(ctx, playerID)
}

// RemoveFavorite はプレイヤーのお気に入りからゲームを外します。
// 登録されていないゲームを外しても成功として扱います。
func (u *playerUsecase) RemoveFavorite(ctx context.Context, playerID, gameID uint) (*entity.Player, error) {
	if _, err := u.players.FindByID(ctx, playerID); err != nil {
		return nil, err
	}
	if err := u.players.RemoveFavorite(ctx, playerID, gameID); err != nil {
		return nil, err
	}
	return u.players.FindByID(ctx, playerID)
}

// ListFavorites はプレイヤーのお気に入りゲームを返します。
func (u *playerUsecase) ListFavorites(ctx context.Context, playerID uint) ([]gamesentity.Game, error) {
	if _, err := u.players.FindByID(ctx, playerID); err != nil {
		return nil, err
	}
	return u.players.ListFavorites(ctx, playerID)
}

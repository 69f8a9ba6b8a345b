package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"gameshelf_backend/internal/feature/players/domain/entity"
)

// PlayerFinder はログイン時の資格情報照合に使うプレイヤー参照を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type PlayerFinder interface {
	// FindByUsername はユーザー名でプレイヤーを取得します。
	// プレイヤーが存在しない場合、エラーを返します。
	FindByUsername(ctx context.Context, username string) (*entity.Player, error)
}

// TokenGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	// GenerateToken は指定されたプレイヤーの署名済みJWTトークンを生成します。
	GenerateToken(playerID uint) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	players        PlayerFinder
	tokenGenerator TokenGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(players PlayerFinder, tokenGenerator TokenGenerator) *authUsecase {
	return &authUsecase{
		players:        players,
		tokenGenerator: tokenGenerator,
	}
}

// Login はプレイヤーを認証し、成功時にJWTトークンとプレイヤーを返します。
// タイミング攻撃を防止するため、プレイヤーが存在しない場合でもbcrypt比較を実行します。
// ハッシュ照合のエラーはすべて資格情報エラーに縮退し、認証チェックを迂回する例外は発生しません。
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, *entity.Player, error) {
	// ユーザー名でプレイヤーを検索
	player, err := u.players.FindByUsername(ctx, username)

	// プレイヤーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = player.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// プレイヤー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return "", nil, ErrInvalidCredentials
	}

	// 注入されたジェネレーターを使用してJWTトークンを生成
	token, tokenErr := u.tokenGenerator.GenerateToken(player.ID)
	if tokenErr != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return token, player, nil
}

// Package usecase はavatarsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	// MaxAvatarSize はアバター画像アップロードの最大サイズ（5MB）です。
	MaxAvatarSize = 5 * 1024 * 1024
)

var (
	// ErrInvalidAvatar はサイズ超過や画像以外のファイルなど、受理できないアップロードを表します。
	ErrInvalidAvatar = errors.New("invalid avatar")

	// ErrAvatarRejected はモデレーションで拒否された画像を表します。
	ErrAvatarRejected = errors.New("avatar rejected by moderation")
)

// Storage はアバター画像の保存先を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type Storage interface {
	// Save は画像を永続化し、保存名と公開URLを返します。
	Save(ctx context.Context, originalName string, data []byte) (filename, url string, err error)
}

// ImageModerator は画像の内容チェックを抽象化します。
// 拒否すべき画像に対してはErrAvatarRejectedにラップ可能なエラーを返します。
type ImageModerator interface {
	// CheckImage は画像が許容範囲内であることを検証します。
	CheckImage(ctx context.Context, imageData []byte) error
}

// avatarUsecase はアバターアップロードのビジネスロジックを提供します。
type avatarUsecase struct {
	storage   Storage
	moderator ImageModerator
}

// NewAvatarUsecase はavatarUsecaseの新しいインスタンスを生成します。
// moderatorはnil可。その場合、内容チェックはスキップされます。
func NewAvatarUsecase(storage Storage, moderator ImageModerator) *avatarUsecase {
	return &avatarUsecase{storage: storage, moderator: moderator}
}

// Upload はアップロードされた画像を検証し、保存して公開URLを返します。
// MIMEタイプはリクエストヘッダーを信用せず、先頭バイト列から判定します。
func (u *avatarUsecase) Upload(ctx context.Context, originalName string, data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", "", fmt.Errorf("%w: no file uploaded", ErrInvalidAvatar)
	}
	if len(data) > MaxAvatarSize {
		return "", "", fmt.Errorf("%w: file exceeds maximum of %d bytes", ErrInvalidAvatar, MaxAvatarSize)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", fmt.Errorf("%w: only image files allowed, got %s", ErrInvalidAvatar, contentType)
	}

	if u.moderator != nil {
		if err := u.moderator.CheckImage(ctx, data); err != nil {
			return "", "", err
		}
	}

	filename, url, err := u.storage.Save(ctx, originalName, data)
	if err != nil {
		return "", "", fmt.Errorf("failed to store avatar: %w", err)
	}
	return filename, url, nil
}

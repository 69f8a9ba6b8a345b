// Package disk はavatarsフィーチャーのローカルディスク保存を提供します。
package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gameshelf_backend/internal/feature/avatars/usecase"
)

// diskStorage はStorageインターフェースのローカルディスク実装です。
// 保存されたファイルは/avatarsの静的マウントから配信されます。
type diskStorage struct {
	dir     string
	baseURL string
}

// diskStorageがStorageを実装していることをコンパイル時に検証します。
var _ usecase.Storage = (*diskStorage)(nil)

// NewDiskStorage は保存先ディレクトリを作成し、diskStorageの新しいインスタンスを生成します。
// baseURLは保存されたファイルの公開URLのプレフィックスです（例: "/avatars"）。
func NewDiskStorage(dir, baseURL string) (*diskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create avatar directory: %w", err)
	}
	return &diskStorage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// sanitizeName はパス区切りなど、ファイル名として危険な文字を取り除きます。
func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == ".." || name == "" {
		name = "avatar"
	}
	return name
}

// Save はタイムスタンプ付きの一意なファイル名で画像を書き込み、保存名と公開URLを返します。
func (s *diskStorage) Save(_ context.Context, originalName string, data []byte) (string, string, error) {
	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeName(originalName))
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write avatar file: %w", err)
	}
	return filename, s.baseURL + "/" + filename, nil
}

// Package handler はavatarsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gameshelf_backend/internal/api"
	"gameshelf_backend/internal/feature/avatars/usecase"
)

// AvatarUsecase はアバターアップロードのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AvatarUsecase interface {
	Upload(ctx context.Context, originalName string, data []byte) (filename, url string, err error)
}

// AvatarHandler はアバターアップロードのHTTPリクエストを処理します。
type AvatarHandler struct {
	uc AvatarUsecase
}

// NewAvatarHandler はAvatarHandlerの新しいインスタンスを生成します。
func NewAvatarHandler(uc AvatarUsecase) *AvatarHandler {
	return &AvatarHandler{uc: uc}
}

// Upload はアバター画像をアップロードします。
//
// エンドポイント: POST /upload/avatar（認証必須）
// Content-Type: multipart/form-data
// フィールド: avatar（画像ファイル、最大5MB）
func (h *AvatarHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		slog.Warn("アバターファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "no file uploaded"})
		return
	}

	// multipart読み込みの前にヘッダー申告サイズで足切りする
	if file.Size > usecase.MaxAvatarSize {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "file exceeds 5MB limit"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("アバターファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "could not read upload"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("アバターファイルのクローズに失敗", "error", err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("アバターデータの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "could not read upload"})
		return
	}

	filename, url, err := h.uc.Upload(c.Request.Context(), file.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidAvatar), errors.Is(err, usecase.ErrAvatarRejected):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("アバターの保存に失敗", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "could not store avatar"})
		}
		return
	}

	slog.Info("アバターをアップロード", "filename", filename, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.UploadResponse{
		AvatarURL: url,
		Filename:  filename,
	})
}

// Package vision はGoogle Cloud Vision APIを使用したアバター画像モデレーションを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"gameshelf_backend/internal/feature/avatars/usecase"
)

// SafeSearchModerator はGoogle Cloud Vision APIのSafeSearchでアバター画像を検査します。
type SafeSearchModerator struct {
	client *gvision.ImageAnnotatorClient
}

// SafeSearchModeratorがImageModeratorを実装していることをコンパイル時に検証します。
var _ usecase.ImageModerator = (*SafeSearchModerator)(nil)

// NewSafeSearchModerator はADCを使用してSafeSearchModeratorの新しいインスタンスを生成します。
func NewSafeSearchModerator(ctx context.Context) (*SafeSearchModerator, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &SafeSearchModerator{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (m *SafeSearchModerator) Close() error {
	return m.client.Close()
}

// likely は尤度がLIKELY以上かどうかを判定します。
func likely(l visionpb.Likelihood) bool {
	return l >= visionpb.Likelihood_LIKELY
}

// CheckImage は画像にSafeSearch検出を実行し、成人向け・暴力的なコンテンツを拒否します。
func (m *SafeSearchModerator) CheckImage(ctx context.Context, imageData []byte) error {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_SAFE_SEARCH_DETECTION},
				},
			},
		},
	}

	resp, err := m.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return nil
	}

	if resp.Responses[0].Error != nil {
		return fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	annotation := resp.Responses[0].SafeSearchAnnotation
	if annotation == nil {
		return nil
	}

	if likely(annotation.Adult) || likely(annotation.Violence) || likely(annotation.Racy) {
		return fmt.Errorf("%w: image content not allowed", usecase.ErrAvatarRejected)
	}
	return nil
}

package repository

import (
	"VoiceNav-App/internal/domain/model"
	"context"
)

// AnchorsRepository デバイスごとの保存済みアンカー（"home"、"work"など）の取得
type AnchorsRepository interface {
	GetAnchors(ctx context.Context, deviceID string) ([]model.Anchor, error)
}

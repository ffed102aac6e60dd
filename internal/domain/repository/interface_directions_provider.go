package repository

import (
	"VoiceNav-App/internal/domain/model"
	"context"
)

// DirectionsProvider 運転ルート検索のインターフェース。
// ルートが存在しない場合は (nil, nil) を返し、クォータ超過や設定不備は
// 判別可能なエラー（model.NavError）として返す契約
type DirectionsProvider interface {
	GetDrivingRoute(ctx context.Context, origin, destination model.LatLng, waypoints []model.LatLng) (*model.DirectionsResult, error)
}

package repository

import (
	"VoiceNav-App/internal/domain/model"
	"context"
)

// RouteRepository 計画済みルートのTTL付き保存・取得
type RouteRepository interface {
	SaveRoute(ctx context.Context, route *model.Route, ttlHours int) error
	GetRoute(ctx context.Context, routeID string) (*model.Route, error)
}

package usecase

import (
	"VoiceNav-App/internal/domain/model"
	"VoiceNav-App/internal/domain/repository"
	"VoiceNav-App/internal/domain/service"
	"context"
	"fmt"
	"log"
)

type RouteRecalculateUseCase interface {
	// RecalculateRoute は保存済みルートの停車地を引き継いで現在地から再計画する
	RecalculateRoute(ctx context.Context, routeID string, currentLocation *model.LatLng) (*model.NavigationResult, error)
}

// routeRecalculateUseCaseImpl はRouteRecalculateUseCaseの実装
type routeRecalculateUseCaseImpl struct {
	navigationService service.NavigationService
	routeRepo         repository.RouteRepository
	routeTTLHours     int
}

// NewRouteRecalculateUseCase は新しいRouteRecalculateUseCaseインスタンスを作成
func NewRouteRecalculateUseCase(
	navigationService service.NavigationService,
	routeRepo repository.RouteRepository,
) RouteRecalculateUseCase {
	return &routeRecalculateUseCaseImpl{
		navigationService: navigationService,
		routeRepo:         routeRepo,
		routeTTLHours:     model.DefaultNavigationConfig().RouteTTLHours,
	}
}

// RecalculateRoute は元のルートを復元し、停車地を維持したまま再最適化・再ルーティングする
func (u *routeRecalculateUseCaseImpl) RecalculateRoute(ctx context.Context, routeID string, currentLocation *model.LatLng) (*model.NavigationResult, error) {
	log.Printf("🚀 ルート再計画開始 (RouteID: %s)", routeID)

	// Step 1: 元のルートコンテキストを復元する
	original, err := u.routeRepo.GetRoute(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("元のルートが見つからないか有効期限切れです: %w", err)
	}

	// Step 2: 出発地は現在地があればそれを優先する
	origin := original.Origin
	if currentLocation != nil {
		origin = *currentLocation
	}

	// Step 3: 保存済みの停車地を解決済み候補として引き継ぐ
	stops := make([]*model.PlaceCandidate, 0, len(original.Stops))
	for _, stop := range original.Stops {
		stops = append(stops, &model.PlaceCandidate{
			PlaceID:  stop.ID,
			Name:     stop.Name,
			Address:  stop.Address,
			Location: stop.Location,
		})
	}

	// Step 4: 順序最適化と実ルート取得をやり直す
	result, err := u.navigationService.Recalculate(ctx, &model.RecalculateRequest{
		Origin:      origin,
		Destination: original.Destination,
		Stops:       stops,
	})
	if err != nil {
		return nil, fmt.Errorf("ルート再計画に失敗: %w", err)
	}

	// Step 5: 新しいルートをTTL付きで保存（元のルートはTTLで自然消滅する）
	if result.Route != nil {
		if err := u.routeRepo.SaveRoute(ctx, result.Route, u.routeTTLHours); err != nil {
			return nil, fmt.Errorf("再計画ルートの保存に失敗: %w", err)
		}
	}

	log.Printf("✅ ルート再計画完了 (新RouteID: %s)", result.Route.ID)
	return result, nil
}

package usecase

import (
	"VoiceNav-App/internal/domain/model"
	"VoiceNav-App/internal/domain/repository"
	"VoiceNav-App/internal/domain/service"
	"context"
	"fmt"
	"log"
)

type NavigationUseCase interface {
	// PlanRoute はリクエストに基づいてルートを計画し、候補をFirestoreに保存してレスポンスを返す
	PlanRoute(ctx context.Context, req *model.NavigationRequest, deviceID string) (*model.NavigationResult, error)

	// GetRoute は指定されたroute_idの保存済みルートをFirestoreから取得する
	GetRoute(ctx context.Context, routeID string) (*model.Route, error)

	// SuggestStops はルート沿いの停車地候補を提案する（ルート確定はしない）
	SuggestStops(ctx context.Context, origin, destination model.LatLng, categories []string, maxSuggestions int) (*model.StopSuggestionsResult, error)

	// PreviewRoute は停車地なしの直行ルートだけを返す（保存しない）
	PreviewRoute(ctx context.Context, origin, destination model.LatLng) (*model.Route, error)
}

// navigationUseCaseImpl はNavigationUseCaseの実装
type navigationUseCaseImpl struct {
	navigationService service.NavigationService
	routeRepo         repository.RouteRepository
	anchorsRepo       repository.AnchorsRepository
	routeTTLHours     int
}

// NewNavigationUseCase は新しいNavigationUseCaseインスタンスを作成
func NewNavigationUseCase(
	navigationService service.NavigationService,
	routeRepo repository.RouteRepository,
	anchorsRepo repository.AnchorsRepository,
) NavigationUseCase {
	return &navigationUseCaseImpl{
		navigationService: navigationService,
		routeRepo:         routeRepo,
		anchorsRepo:       anchorsRepo,
		routeTTLHours:     model.DefaultNavigationConfig().RouteTTLHours,
	}
}

// PlanRoute はアンカー読み込み → ルート計画 → Firestore保存の順に実行する
func (u *navigationUseCaseImpl) PlanRoute(ctx context.Context, req *model.NavigationRequest, deviceID string) (*model.NavigationResult, error) {
	// Step 1: デバイスの保存済みアンカーを読み込む（失敗してもアンカーなしで続行）
	if deviceID != "" && u.anchorsRepo != nil {
		anchors, err := u.anchorsRepo.GetAnchors(ctx, deviceID)
		if err != nil {
			log.Printf("⚠️ アンカーの読み込みに失敗、アンカーなしで続行: %v", err)
		} else {
			req.Anchors = anchors
		}
	}

	// Step 2: ルート計画を実行
	result, err := u.navigationService.NavigateWithStops(ctx, req)
	if err != nil {
		return nil, err
	}

	// Step 3: 各候補ルートをTTL付きで保存
	log.Printf("💾 Firestore保存中... (%d件)", len(result.RouteOptions))
	for _, option := range result.RouteOptions {
		if option.Route == nil {
			continue
		}
		if err := u.routeRepo.SaveRoute(ctx, option.Route, u.routeTTLHours); err != nil {
			return nil, fmt.Errorf("ルートの保存に失敗: %w", err)
		}
	}

	return result, nil
}

// GetRoute は指定されたroute_idの保存済みルートを取得する
func (u *navigationUseCaseImpl) GetRoute(ctx context.Context, routeID string) (*model.Route, error) {
	log.Printf("📖 ルート取得開始 (ID: %s)", routeID)

	route, err := u.routeRepo.GetRoute(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("ルートの取得に失敗: %w", err)
	}

	log.Printf("✅ ルート取得完了 (ID: %s)", routeID)
	return route, nil
}

// SuggestStops はルート沿いの停車地候補を提案する
func (u *navigationUseCaseImpl) SuggestStops(ctx context.Context, origin, destination model.LatLng, categories []string, maxSuggestions int) (*model.StopSuggestionsResult, error) {
	return u.navigationService.SuggestStopsOnRoute(ctx, origin, destination, categories, maxSuggestions)
}

// PreviewRoute は停車地なしの直行ルートだけを返す
func (u *navigationUseCaseImpl) PreviewRoute(ctx context.Context, origin, destination model.LatLng) (*model.Route, error) {
	return u.navigationService.Preview(ctx, origin, destination)
}

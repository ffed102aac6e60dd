package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VoiceNav-App/internal/domain/model"
)

// stubNavigationService 呼び出し内容を記録するNavigationServiceスタブ
type stubNavigationService struct {
	lastRequest *model.NavigationRequest
	result      *model.NavigationResult
}

func (s *stubNavigationService) NavigateWithStops(ctx context.Context, req *model.NavigationRequest) (*model.NavigationResult, error) {
	s.lastRequest = req
	return s.result, nil
}

func (s *stubNavigationService) SuggestStopsOnRoute(ctx context.Context, origin, destination model.LatLng, categories []string, maxSuggestions int) (*model.StopSuggestionsResult, error) {
	return &model.StopSuggestionsResult{}, nil
}

func (s *stubNavigationService) Recalculate(ctx context.Context, req *model.RecalculateRequest) (*model.NavigationResult, error) {
	return s.result, nil
}

func (s *stubNavigationService) Preview(ctx context.Context, origin, destination model.LatLng) (*model.Route, error) {
	return &model.Route{}, nil
}

// memoryRouteRepository テスト用のインメモリRouteRepository
type memoryRouteRepository struct {
	saved   map[string]*model.Route
	lastTTL int
}

func newMemoryRouteRepository() *memoryRouteRepository {
	return &memoryRouteRepository{saved: make(map[string]*model.Route)}
}

func (r *memoryRouteRepository) SaveRoute(ctx context.Context, route *model.Route, ttlHours int) error {
	r.saved[route.ID] = route
	r.lastTTL = ttlHours
	return nil
}

func (r *memoryRouteRepository) GetRoute(ctx context.Context, routeID string) (*model.Route, error) {
	route, ok := r.saved[routeID]
	if !ok {
		return nil, errors.New("ルートが見つかりません（有効期限切れまたは無効なID）: " + routeID)
	}
	return route, nil
}

// stubAnchorsRepository 固定のアンカーを返すAnchorsRepository
type stubAnchorsRepository struct {
	anchors []model.Anchor
	err     error
}

func (r *stubAnchorsRepository) GetAnchors(ctx context.Context, deviceID string) ([]model.Anchor, error) {
	return r.anchors, r.err
}

func sampleResult() *model.NavigationResult {
	route := &model.Route{ID: "temp_route_test"}
	return &model.NavigationResult{
		Route: route,
		RouteOptions: []*model.RouteOption{
			{ID: route.ID, IsRecommended: true, Route: route},
		},
	}
}

func TestPlanRoute_LoadsAnchorsAndSaves(t *testing.T) {
	service := &stubNavigationService{result: sampleResult()}
	routeRepo := newMemoryRouteRepository()
	anchorsRepo := &stubAnchorsRepository{
		anchors: []model.Anchor{{Name: "Home", Location: model.LatLng{Lat: 35.0, Lng: 135.0}}},
	}

	uc := NewNavigationUseCase(service, routeRepo, anchorsRepo)
	req := &model.NavigationRequest{
		Origin:      model.LatLng{Lat: 35.0, Lng: 135.0},
		Destination: model.DestinationSpec{Name: "home"},
	}

	result, err := uc.PlanRoute(context.Background(), req, "device-1")
	require.NoError(t, err)

	// アンカーがリクエストに注入される
	require.Len(t, service.lastRequest.Anchors, 1)
	assert.Equal(t, "Home", service.lastRequest.Anchors[0].Name)

	// 候補ルートが保存される。一時ルートなのでTTLは2時間
	assert.Contains(t, routeRepo.saved, "temp_route_test")
	assert.Same(t, result.Route, routeRepo.saved["temp_route_test"])
	assert.Equal(t, 2, routeRepo.lastTTL)
}

func TestPlanRoute_AnchorFailureDegrades(t *testing.T) {
	service := &stubNavigationService{result: sampleResult()}
	routeRepo := newMemoryRouteRepository()
	anchorsRepo := &stubAnchorsRepository{err: errors.New("db down")}

	uc := NewNavigationUseCase(service, routeRepo, anchorsRepo)
	req := &model.NavigationRequest{
		Origin:      model.LatLng{Lat: 35.0, Lng: 135.0},
		Destination: model.DestinationSpec{Name: "どこか"},
	}

	// アンカー読み込み失敗でも計画は続行する
	_, err := uc.PlanRoute(context.Background(), req, "device-1")
	require.NoError(t, err)
	assert.Empty(t, service.lastRequest.Anchors)
}

func TestGetRoute_NotFound(t *testing.T) {
	uc := NewNavigationUseCase(&stubNavigationService{}, newMemoryRouteRepository(), nil)

	_, err := uc.GetRoute(context.Background(), "temp_route_missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "見つかりません")
}

func TestRecalculateRoute_RestoresStops(t *testing.T) {
	service := &stubNavigationService{result: sampleResult()}
	routeRepo := newMemoryRouteRepository()
	routeRepo.saved["temp_route_old"] = &model.Route{
		ID:          "temp_route_old",
		Origin:      model.LatLng{Lat: 35.0, Lng: 135.0},
		Destination: model.LatLng{Lat: 35.18, Lng: 135.0},
		Stops: []model.RouteStop{
			{ID: "s1", Name: "コーヒー店", Location: model.LatLng{Lat: 35.1, Lng: 135.001}},
		},
	}

	uc := NewRouteRecalculateUseCase(service, routeRepo)
	current := model.LatLng{Lat: 35.02, Lng: 135.0}

	result, err := uc.RecalculateRoute(context.Background(), "temp_route_old", &current)
	require.NoError(t, err)

	// 新しいルートが保存される
	assert.Contains(t, routeRepo.saved, "temp_route_test")
	assert.NotNil(t, result.Route)
}

func TestRecalculateRoute_MissingRoute(t *testing.T) {
	uc := NewRouteRecalculateUseCase(&stubNavigationService{}, newMemoryRouteRepository())

	_, err := uc.RecalculateRoute(context.Background(), "temp_route_gone", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "見つからない")
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VoiceNav-App/internal/domain/model"
)

// stubNavigationUseCase テスト用のNavigationUseCaseスタブ
type stubNavigationUseCase struct {
	planErr   error
	getErr    error
	lastReq   *model.NavigationRequest
	lastDevID string
}

func (s *stubNavigationUseCase) PlanRoute(ctx context.Context, req *model.NavigationRequest, deviceID string) (*model.NavigationResult, error) {
	s.lastReq = req
	s.lastDevID = deviceID
	if s.planErr != nil {
		return nil, s.planErr
	}
	route := &model.Route{ID: "temp_route_test"}
	return &model.NavigationResult{
		Route:        route,
		RouteOptions: []*model.RouteOption{{ID: route.ID, IsRecommended: true, Route: route}},
	}, nil
}

func (s *stubNavigationUseCase) GetRoute(ctx context.Context, routeID string) (*model.Route, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &model.Route{ID: routeID}, nil
}

func (s *stubNavigationUseCase) SuggestStops(ctx context.Context, origin, destination model.LatLng, categories []string, maxSuggestions int) (*model.StopSuggestionsResult, error) {
	return &model.StopSuggestionsResult{}, nil
}

func (s *stubNavigationUseCase) PreviewRoute(ctx context.Context, origin, destination model.LatLng) (*model.Route, error) {
	return &model.Route{}, nil
}

func setupRouter(uc *stubNavigationUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNavigationHandler(uc)
	router := gin.New()
	router.POST("/navigation/routes", h.PostRoute)
	router.GET("/navigation/routes/:id", h.GetRoute)
	router.POST("/navigation/suggestions", h.PostSuggestions)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPostRoute_OK(t *testing.T) {
	uc := &stubNavigationUseCase{}
	router := setupRouter(uc)

	w := postJSON(router, "/navigation/routes", gin.H{
		"origin":      gin.H{"lat": 35.0, "lng": 135.0},
		"destination": gin.H{"name": "京都駅"},
		"stops":       []string{"coffee"},
		"device_id":   "device-1",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "device-1", uc.lastDevID)
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, "京都駅", uc.lastReq.Destination.Name)
	assert.Equal(t, []string{"coffee"}, uc.lastReq.StopQueries)
}

func TestPostRoute_ValidationErrors(t *testing.T) {
	router := setupRouter(&stubNavigationUseCase{})

	tests := []struct {
		name string
		body gin.H
	}{
		{"出発地なし", gin.H{"destination": gin.H{"name": "京都駅"}}},
		{"目的地なし", gin.H{"origin": gin.H{"lat": 35.0, "lng": 135.0}}},
		{"目的地の名前も座標もない", gin.H{
			"origin":      gin.H{"lat": 35.0, "lng": 135.0},
			"destination": gin.H{},
		}},
		{"緯度が範囲外", gin.H{
			"origin":      gin.H{"lat": 95.0, "lng": 135.0},
			"destination": gin.H{"name": "京都駅"},
		}},
		{"空の停車地クエリ", gin.H{
			"origin":      gin.H{"lat": 35.0, "lng": 135.0},
			"destination": gin.H{"name": "京都駅"},
			"stops":       []string{" "},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/navigation/routes", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, model.ErrCodeInvalidRequest, resp["code"])
		})
	}
}

func TestPostRoute_NavErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"場所が見つからない", model.NewLocationUnavailableError("どこか"), http.StatusNotFound},
		{"ルートが存在しない", model.NewRouteNotFoundError(nil), http.StatusNotFound},
		{"クォータ超過", model.NewQuotaExceededError(errors.New("limit")), http.StatusTooManyRequests},
		{"プロバイダ設定不備", model.NewProviderUnavailableError(errors.New("denied")), http.StatusServiceUnavailable},
		{"その他のエラー", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&stubNavigationUseCase{planErr: tt.err})
			w := postJSON(router, "/navigation/routes", gin.H{
				"origin":      gin.H{"lat": 35.0, "lng": 135.0},
				"destination": gin.H{"name": "京都駅"},
			})
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGetRoute_NotFound(t *testing.T) {
	router := setupRouter(&stubNavigationUseCase{
		getErr: errors.New("ルートが見つかりません（有効期限切れまたは無効なID）: temp_route_x"),
	})

	req := httptest.NewRequest(http.MethodGet, "/navigation/routes/temp_route_x", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostSuggestions_RequiresCategories(t *testing.T) {
	router := setupRouter(&stubNavigationUseCase{})

	w := postJSON(router, "/navigation/suggestions", gin.H{
		"origin":      gin.H{"lat": 35.0, "lng": 135.0},
		"destination": gin.H{"lat": 35.2, "lng": 135.1},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

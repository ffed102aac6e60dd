package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"VoiceNav-App/internal/domain/model"
)

// GoogleDirectionsProvider はGoogle Maps Directions APIを使用した運転経路検索の実装
type GoogleDirectionsProvider struct {
	apiKey     string
	httpClient *http.Client
}

// NewGoogleDirectionsProvider は新しいプロバイダを生成する
func NewGoogleDirectionsProvider(apiKey string) *GoogleDirectionsProvider {
	return &GoogleDirectionsProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetDrivingRoute はGoogle Maps Directions APIを呼び出して運転ルート情報を取得する。
// ルートが存在しない場合は (nil, nil) を返す
func (g *GoogleDirectionsProvider) GetDrivingRoute(ctx context.Context, origin, destination model.LatLng, waypoints []model.LatLng) (*model.DirectionsResult, error) {
	// 1. APIリクエストURLを構築
	reqURL := g.buildURL(origin, destination, waypoints)

	// 2. HTTPリクエストを作成・実行
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	// 3. JSONレスポンスをパース
	var apiResp googleDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	// 4. ステータスをドメインのエラーに対応付ける
	switch apiResp.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, nil
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return nil, model.NewQuotaExceededError(fmt.Errorf("directions API: %s", apiResp.Status))
	case "REQUEST_DENIED":
		return nil, model.NewProviderUnavailableError(fmt.Errorf("directions API: %s (%s)", apiResp.Status, apiResp.ErrorMessage))
	default:
		return nil, fmt.Errorf("directions APIが異常ステータスを返しました: %s (%s)", apiResp.Status, apiResp.ErrorMessage)
	}
	if len(apiResp.Routes) == 0 {
		return nil, nil
	}

	// 5. ドメインモデルに変換して返す
	firstRoute := apiResp.Routes[0]
	result := &model.DirectionsResult{
		Polyline: firstRoute.OverviewPolyline.Points,
		Legs:     make([]model.RouteLeg, 0, len(firstRoute.Legs)),
	}
	for _, leg := range firstRoute.Legs {
		result.TotalDistanceM += float64(leg.Distance.Value)
		result.TotalDurationMin += float64(leg.Duration.Value) / 60.0
		result.Legs = append(result.Legs, model.RouteLeg{
			DistanceM:     float64(leg.Distance.Value),
			DurationMin:   float64(leg.Duration.Value) / 60.0,
			StartLocation: model.LatLng{Lat: leg.StartLocation.Lat, Lng: leg.StartLocation.Lng},
			EndLocation:   model.LatLng{Lat: leg.EndLocation.Lat, Lng: leg.EndLocation.Lng},
		})
	}
	return result, nil
}

func (g *GoogleDirectionsProvider) buildURL(origin, destination model.LatLng, waypoints []model.LatLng) string {
	baseURL := "https://maps.googleapis.com/maps/api/directions/json"
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))

	if len(waypoints) > 0 {
		viaPoints := make([]string, 0, len(waypoints))
		for _, wp := range waypoints {
			viaPoints = append(viaPoints, fmt.Sprintf("%f,%f", wp.Lat, wp.Lng))
		}
		params.Set("waypoints", strings.Join(viaPoints, "|"))
	}

	params.Set("mode", "driving")
	params.Set("language", "ja")
	params.Set("key", g.apiKey)

	return fmt.Sprintf("%s?%s", baseURL, params.Encode())
}

// --- Google Maps APIのレスポンスをパースするための構造体 ---

type googleDirectionsResponse struct {
	Routes       []directionsRoute `json:"routes"`
	Status       string            `json:"status"`
	ErrorMessage string            `json:"error_message,omitempty"`
}
type directionsRoute struct {
	Legs             []directionsLeg  `json:"legs"`
	OverviewPolyline overviewPolyline `json:"overview_polyline"`
}
type directionsLeg struct {
	Distance      textValue     `json:"distance"`
	Duration      textValue     `json:"duration"`
	StartLocation mapsLatLngRaw `json:"start_location"`
	EndLocation   mapsLatLngRaw `json:"end_location"`
}
type textValue struct {
	Value int `json:"value"` // distance: meters / duration: seconds
}
type overviewPolyline struct {
	Points string `json:"points"`
}
type mapsLatLngRaw struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

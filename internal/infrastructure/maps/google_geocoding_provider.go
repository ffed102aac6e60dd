package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"VoiceNav-App/internal/domain/model"
)

// GoogleGeocodingProvider はGoogle Maps Geocoding APIを使用した住所解決の実装
type GoogleGeocodingProvider struct {
	apiKey     string
	httpClient *http.Client
}

// NewGoogleGeocodingProvider は新しいプロバイダを生成する
func NewGoogleGeocodingProvider(apiKey string) *GoogleGeocodingProvider {
	return &GoogleGeocodingProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Geocode は住所文字列を座標に解決する。該当なしの場合は (nil, nil) を返す
func (g *GoogleGeocodingProvider) Geocode(ctx context.Context, address string) (*model.GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", address)
	return g.call(ctx, params)
}

// ReverseGeocode は座標を住所に解決する。該当なしの場合は (nil, nil) を返す
func (g *GoogleGeocodingProvider) ReverseGeocode(ctx context.Context, location model.LatLng) (*model.GeocodeResult, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", location.Lat, location.Lng))
	return g.call(ctx, params)
}

func (g *GoogleGeocodingProvider) call(ctx context.Context, params url.Values) (*model.GeocodeResult, error) {
	params.Set("language", "ja")
	params.Set("key", g.apiKey)
	reqURL := fmt.Sprintf("https://maps.googleapis.com/maps/api/geocode/json?%s", params.Encode())

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

	var apiResp googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	switch apiResp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return nil, model.NewQuotaExceededError(fmt.Errorf("geocoding API: %s", apiResp.Status))
	case "REQUEST_DENIED":
		return nil, model.NewProviderUnavailableError(fmt.Errorf("geocoding API: %s (%s)", apiResp.Status, apiResp.ErrorMessage))
	default:
		return nil, fmt.Errorf("geocoding APIが異常ステータスを返しました: %s (%s)", apiResp.Status, apiResp.ErrorMessage)
	}
	if len(apiResp.Results) == 0 {
		return nil, nil
	}

	first := apiResp.Results[0]
	return &model.GeocodeResult{
		Address: first.FormattedAddress,
		Location: model.LatLng{
			Lat: first.Geometry.Location.Lat,
			Lng: first.Geometry.Location.Lng,
		},
	}, nil
}

// --- Geocoding APIのレスポンスをパースするための構造体 ---

type googleGeocodeResponse struct {
	Results      []geocodeResult `json:"results"`
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
}
type geocodeResult struct {
	FormattedAddress string          `json:"formatted_address"`
	Geometry         geocodeGeometry `json:"geometry"`
}
type geocodeGeometry struct {
	Location mapsLatLngRaw `json:"location"`
}

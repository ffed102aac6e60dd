package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"VoiceNav-App/internal/domain/model"
)

// GooglePlacesProvider はGoogle Places API (Text Search) を使用した場所検索の実装
type GooglePlacesProvider struct {
	apiKey     string
	httpClient *http.Client
}

// NewGooglePlacesProvider は新しいプロバイダを生成する
func NewGooglePlacesProvider(apiKey string) *GooglePlacesProvider {
	return &GooglePlacesProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchPlaces は中心座標と半径でテキスト検索する。該当なしの場合は空スライスを返す
func (g *GooglePlacesProvider) SearchPlaces(ctx context.Context, query string, center model.LatLng, radiusM float64, limit int) ([]*model.PlaceCandidate, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lng))
	params.Set("radius", strconv.Itoa(int(radiusM)))
	params.Set("language", "ja")
	params.Set("key", g.apiKey)
	reqURL := fmt.Sprintf("https://maps.googleapis.com/maps/api/place/textsearch/json?%s", params.Encode())

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

	var apiResp googlePlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	switch apiResp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return nil, model.NewQuotaExceededError(fmt.Errorf("places API: %s", apiResp.Status))
	case "REQUEST_DENIED":
		return nil, model.NewProviderUnavailableError(fmt.Errorf("places API: %s (%s)", apiResp.Status, apiResp.ErrorMessage))
	default:
		return nil, fmt.Errorf("places APIが異常ステータスを返しました: %s (%s)", apiResp.Status, apiResp.ErrorMessage)
	}

	candidates := make([]*model.PlaceCandidate, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		if limit > 0 && len(candidates) >= limit {
			break
		}
		candidate := &model.PlaceCandidate{
			PlaceID:     r.PlaceID,
			Name:        r.Name,
			Address:     r.FormattedAddress,
			Location:    model.LatLng{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			Rating:      r.Rating,
			ReviewCount: r.UserRatingsTotal,
			Types:       r.Types,
		}
		if r.OpeningHours != nil {
			candidate.IsOpen = r.OpeningHours.OpenNow
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// --- Places APIのレスポンスをパースするための構造体 ---

type googlePlacesResponse struct {
	Results      []placeResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}
type placeResult struct {
	PlaceID          string             `json:"place_id"`
	Name             string             `json:"name"`
	FormattedAddress string             `json:"formatted_address"`
	Geometry         geocodeGeometry    `json:"geometry"`
	Rating           float64            `json:"rating"`
	UserRatingsTotal int                `json:"user_ratings_total"`
	Types            []string           `json:"types"`
	OpeningHours     *placeOpeningHours `json:"opening_hours,omitempty"`
}
type placeOpeningHours struct {
	OpenNow *bool `json:"open_now,omitempty"`
}

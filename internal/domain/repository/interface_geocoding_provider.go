package repository

import (
	"VoiceNav-App/internal/domain/model"
	"context"
)

// GeocodingProvider 住所⇔座標変換のインターフェース。
// 該当なしの場合は (nil, nil) を返す契約
type GeocodingProvider interface {
	Geocode(ctx context.Context, address string) (*model.GeocodeResult, error)
	ReverseGeocode(ctx context.Context, location model.LatLng) (*model.GeocodeResult, error)
}

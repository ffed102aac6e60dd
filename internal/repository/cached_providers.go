package repository

import (
	"VoiceNav-App/internal/domain/model"
	"VoiceNav-App/internal/domain/repository"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// プロバイダ応答のキャッシュTTL。
// 経路は交通状況で変わるため短く、ジオコーディングと場所検索はほぼ不変なので長く持つ
const (
	directionsCacheTTL = 1 * time.Hour
	geocodeCacheTTL    = 7 * 24 * time.Hour
	placesCacheTTL     = 7 * 24 * time.Hour
)

// cacheKey はパラメータ列をSHA1でまとめてRedisキーにする
func cacheKey(prefix string, parts ...string) string {
	h := sha1.New()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

func formatLatLng(p model.LatLng) string {
	return fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lng)
}

// CachedDirectionsProvider DirectionsProviderのRedisキャッシュデコレータ。
// キャッシュ層の障害は無視して必ず実プロバイダにフォールバックする
type CachedDirectionsProvider struct {
	inner repository.DirectionsProvider
	redis *redis.Client
}

func NewCachedDirectionsProvider(inner repository.DirectionsProvider, redisClient *redis.Client) repository.DirectionsProvider {
	return &CachedDirectionsProvider{inner: inner, redis: redisClient}
}

func (p *CachedDirectionsProvider) GetDrivingRoute(ctx context.Context, origin, destination model.LatLng, waypoints []model.LatLng) (*model.DirectionsResult, error) {
	parts := []string{formatLatLng(origin), formatLatLng(destination)}
	for _, wp := range waypoints {
		parts = append(parts, formatLatLng(wp))
	}
	key := cacheKey("directions", parts...)

	if cached, err := p.redis.Get(ctx, key).Bytes(); err == nil {
		var result model.DirectionsResult
		if err := json.Unmarshal(cached, &result); err == nil {
			return &result, nil
		}
	}

	result, err := p.inner.GetDrivingRoute(ctx, origin, destination, waypoints)
	if err != nil || result == nil {
		return result, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := p.redis.Set(ctx, key, data, directionsCacheTTL).Err(); err != nil {
			log.Printf("⚠️ 経路キャッシュの保存に失敗: %v", err)
		}
	}
	return result, nil
}

// CachedGeocodingProvider GeocodingProviderのRedisキャッシュデコレータ
type CachedGeocodingProvider struct {
	inner repository.GeocodingProvider
	redis *redis.Client
}

func NewCachedGeocodingProvider(inner repository.GeocodingProvider, redisClient *redis.Client) repository.GeocodingProvider {
	return &CachedGeocodingProvider{inner: inner, redis: redisClient}
}

func (p *CachedGeocodingProvider) Geocode(ctx context.Context, address string) (*model.GeocodeResult, error) {
	return p.cached(ctx, cacheKey("geocode", address), func() (*model.GeocodeResult, error) {
		return p.inner.Geocode(ctx, address)
	})
}

func (p *CachedGeocodingProvider) ReverseGeocode(ctx context.Context, location model.LatLng) (*model.GeocodeResult, error) {
	return p.cached(ctx, cacheKey("revgeocode", formatLatLng(location)), func() (*model.GeocodeResult, error) {
		return p.inner.ReverseGeocode(ctx, location)
	})
}

func (p *CachedGeocodingProvider) cached(ctx context.Context, key string, fetch func() (*model.GeocodeResult, error)) (*model.GeocodeResult, error) {
	if cached, err := p.redis.Get(ctx, key).Bytes(); err == nil {
		var result model.GeocodeResult
		if err := json.Unmarshal(cached, &result); err == nil {
			return &result, nil
		}
	}

	result, err := fetch()
	if err != nil || result == nil {
		return result, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := p.redis.Set(ctx, key, data, geocodeCacheTTL).Err(); err != nil {
			log.Printf("⚠️ ジオコーディングキャッシュの保存に失敗: %v", err)
		}
	}
	return result, nil
}

// CachedPlaceSearchProvider PlaceSearchProviderのRedisキャッシュデコレータ
type CachedPlaceSearchProvider struct {
	inner repository.PlaceSearchProvider
	redis *redis.Client
}

func NewCachedPlaceSearchProvider(inner repository.PlaceSearchProvider, redisClient *redis.Client) repository.PlaceSearchProvider {
	return &CachedPlaceSearchProvider{inner: inner, redis: redisClient}
}

func (p *CachedPlaceSearchProvider) SearchPlaces(ctx context.Context, query string, center model.LatLng, radiusM float64, limit int) ([]*model.PlaceCandidate, error) {
	key := cacheKey("places", query, formatLatLng(center), fmt.Sprintf("%.0f", radiusM), fmt.Sprintf("%d", limit))

	if cached, err := p.redis.Get(ctx, key).Bytes(); err == nil {
		var results []*model.PlaceCandidate
		if err := json.Unmarshal(cached, &results); err == nil {
			return results, nil
		}
	}

	results, err := p.inner.SearchPlaces(ctx, query, center, radiusM, limit)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		if err := p.redis.Set(ctx, key, data, placesCacheTTL).Err(); err != nil {
			log.Printf("⚠️ 場所検索キャッシュの保存に失敗: %v", err)
		}
	}
	return results, nil
}

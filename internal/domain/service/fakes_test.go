package service

import (
	"context"

	"VoiceNav-App/internal/domain/helper"
	"VoiceNav-App/internal/domain/model"
)

// fakeDirectionsProvider テスト用のDirectionsProvider実装
type fakeDirectionsProvider struct {
	fn func(ctx context.Context, origin, destination model.LatLng, waypoints []model.LatLng) (*model.DirectionsResult, error)
}

func (f *fakeDirectionsProvider) GetDrivingRoute(ctx context.Context, origin, destination model.LatLng, waypoints []model.LatLng) (*model.DirectionsResult, error) {
	return f.fn(ctx, origin, destination, waypoints)
}

// fakeGeocodingProvider テスト用のGeocodingProvider実装
type fakeGeocodingProvider struct {
	geocodeFn func(ctx context.Context, address string) (*model.GeocodeResult, error)
}

func (f *fakeGeocodingProvider) Geocode(ctx context.Context, address string) (*model.GeocodeResult, error) {
	if f.geocodeFn == nil {
		return nil, nil
	}
	return f.geocodeFn(ctx, address)
}

func (f *fakeGeocodingProvider) ReverseGeocode(ctx context.Context, location model.LatLng) (*model.GeocodeResult, error) {
	return nil, nil
}

// fakePlaceSearchProvider テスト用のPlaceSearchProvider実装
type fakePlaceSearchProvider struct {
	fn func(ctx context.Context, query string, center model.LatLng, radiusM float64, limit int) ([]*model.PlaceCandidate, error)
}

func (f *fakePlaceSearchProvider) SearchPlaces(ctx context.Context, query string, center model.LatLng, radiusM float64, limit int) ([]*model.PlaceCandidate, error) {
	if f.fn == nil {
		return nil, nil
	}
	return f.fn(ctx, query, center, radiusM, limit)
}

// straightLineDirections は地点列を直線でつないだDirectionsResultを組み立てる。
// 所要時間は40km/h相当で換算する
func straightLineDirections(points ...model.LatLng) *model.DirectionsResult {
	result := &model.DirectionsResult{
		Polyline: helper.EncodePolyline(points),
	}
	for i := 1; i < len(points); i++ {
		d := helper.HaversineDistanceM(points[i-1], points[i])
		leg := model.RouteLeg{
			DistanceM:     d,
			DurationMin:   d / 1000.0 * 1.5,
			StartLocation: points[i-1],
			EndLocation:   points[i],
		}
		result.TotalDistanceM += leg.DistanceM
		result.TotalDurationMin += leg.DurationMin
		result.Legs = append(result.Legs, leg)
	}
	return result
}

func place(id string, lat, lng float64) *model.PlaceCandidate {
	return &model.PlaceCandidate{
		PlaceID:  id,
		Name:     id,
		Location: model.LatLng{Lat: lat, Lng: lng},
	}
}

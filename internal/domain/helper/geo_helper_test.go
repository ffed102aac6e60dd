package helper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VoiceNav-App/internal/domain/model"
)

func TestHaversineDistanceM(t *testing.T) {
	// 緯度1度 ≒ 111.2km
	d := HaversineDistanceM(
		model.LatLng{Lat: 35.0, Lng: 135.0},
		model.LatLng{Lat: 36.0, Lng: 135.0},
	)
	assert.InDelta(t, 111195, d, 1500)

	// 同一点は距離0
	p := model.LatLng{Lat: 35.0, Lng: 135.0}
	assert.Zero(t, HaversineDistanceM(p, p))
}

func TestDistanceToPathM(t *testing.T) {
	path := []model.LatLng{
		{Lat: 35.0, Lng: 135.0},
		{Lat: 35.0, Lng: 135.2},
	}

	// 経路上の点はほぼ距離0
	onPath := model.LatLng{Lat: 35.0, Lng: 135.1}
	assert.Less(t, DistanceToPathM(onPath, path), 100.0)

	// 経路から緯度0.01度（約1.1km）離れた点
	offPath := model.LatLng{Lat: 35.01, Lng: 135.1}
	assert.InDelta(t, 1112, DistanceToPathM(offPath, path), 100)

	// 空の経路は+Inf
	assert.True(t, math.IsInf(DistanceToPathM(onPath, nil), 1))
}

func TestCentroid(t *testing.T) {
	points := []model.LatLng{
		{Lat: 35.0, Lng: 135.0},
		{Lat: 35.2, Lng: 135.4},
	}
	c := Centroid(points)
	assert.InDelta(t, 35.1, c.Lat, 1e-9)
	assert.InDelta(t, 135.2, c.Lng, 1e-9)
}

func TestMaxPairwiseDistanceM(t *testing.T) {
	// 全点同一座標なら最大ペア間距離は0
	p := model.LatLng{Lat: 35.0, Lng: 135.0}
	assert.Zero(t, MaxPairwiseDistanceM([]model.LatLng{p, p, p}))

	points := []model.LatLng{
		{Lat: 35.0, Lng: 135.0},
		{Lat: 35.0, Lng: 135.01},
		{Lat: 36.0, Lng: 135.0},
	}
	assert.InDelta(t, 111195, MaxPairwiseDistanceM(points), 1500)
}

func TestInterpolateAlongPath(t *testing.T) {
	path := []model.LatLng{
		{Lat: 35.0, Lng: 135.0},
		{Lat: 36.0, Lng: 135.0},
	}
	total := PathDistanceM(path)

	mid := InterpolateAlongPath(path, total/2)
	assert.InDelta(t, 35.5, mid.Lat, 0.01)
	assert.InDelta(t, 135.0, mid.Lng, 0.01)

	// 総距離を超えたら終点にクランプ
	end := InterpolateAlongPath(path, total*2)
	assert.InDelta(t, 36.0, end.Lat, 1e-9)
}

func TestSortPlacesByDistance(t *testing.T) {
	origin := model.LatLng{Lat: 35.0, Lng: 135.0}
	far := &model.PlaceCandidate{PlaceID: "far", Location: model.LatLng{Lat: 35.5, Lng: 135.0}}
	near := &model.PlaceCandidate{PlaceID: "near", Location: model.LatLng{Lat: 35.01, Lng: 135.0}}

	places := []*model.PlaceCandidate{far, near}
	SortPlacesByDistance(origin, places)

	require.Len(t, places, 2)
	assert.Equal(t, "near", places[0].PlaceID)
	assert.Equal(t, "far", places[1].PlaceID)
}

func TestMetersToMiles(t *testing.T) {
	assert.InDelta(t, 1.0, MetersToMiles(1609.344), 1e-9)
	assert.Zero(t, MetersToMiles(0))
}

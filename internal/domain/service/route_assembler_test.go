package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VoiceNav-App/internal/domain/model"
)

func TestRouteAssembler_Build(t *testing.T) {
	assembler := NewRouteAssembler()

	origin := model.LatLng{Lat: 35.0, Lng: 135.0}
	destination := model.LatLng{Lat: 35.0, Lng: 135.04}
	s1 := place("s1", 35.0, 135.01)
	s2 := place("s2", 35.0, 135.03)

	directions := straightLineDirections(origin, s1.Location, s2.Location, destination)
	budget := model.NewDetourBudget(1000, 300)

	route := assembler.Build(origin, destination, []StopPlan{
		{Place: s1, DetourCostM: 120, Status: model.DetourStatusMinimal, Order: 1},
		{Place: s2, DetourCostM: 80, Status: model.DetourStatusMinimal, Order: 2},
	}, directions, budget)

	require.NotEmpty(t, route.ID)
	assert.Equal(t, origin, route.Origin)
	assert.Equal(t, destination, route.Destination)
	assert.Equal(t, directions.Polyline, route.Polyline)
	assert.Equal(t, budget, route.DetourBudget)
	assert.False(t, route.CreatedAt.IsZero())

	// マイル標は停車順で厳密に増加する
	require.Len(t, route.Stops, 2)
	assert.Greater(t, route.Stops[0].MileMarker, 0.0)
	assert.Greater(t, route.Stops[1].MileMarker, route.Stops[0].MileMarker)
	assert.Equal(t, 1, route.Stops[0].Order)
	assert.Equal(t, 2, route.Stops[1].Order)

	// 経由地リストは出発地で始まり目的地で終わる
	require.Len(t, route.Waypoints, 4)
	assert.Equal(t, model.WaypointTypeOrigin, route.Waypoints[0].Type)
	assert.Equal(t, model.WaypointTypeStop, route.Waypoints[1].Type)
	assert.Equal(t, "s1", route.Waypoints[1].Name)
	assert.Equal(t, model.WaypointTypeDestination, route.Waypoints[3].Type)
}

func TestRouteAssembler_BuildDirectRoute(t *testing.T) {
	assembler := NewRouteAssembler()

	origin := model.LatLng{Lat: 35.0, Lng: 135.0}
	destination := model.LatLng{Lat: 35.0, Lng: 135.04}
	directions := straightLineDirections(origin, destination)

	route := assembler.Build(origin, destination, nil, directions, model.NewDetourBudget(800, 0))

	assert.Empty(t, route.Stops)
	require.Len(t, route.Waypoints, 2)
	assert.InDelta(t, directions.TotalDurationMin, route.TotalTimeMin, 1e-6)
	assert.Greater(t, route.TotalDistanceMi, 0.0)
}

func TestRouteAssembler_MissingLegs(t *testing.T) {
	assembler := NewRouteAssembler()

	origin := model.LatLng{Lat: 35.0, Lng: 135.0}
	destination := model.LatLng{Lat: 35.0, Lng: 135.04}
	s1 := place("s1", 35.0, 135.01)

	// レグ情報なしでもpanicせず、マイル標は0になる
	route := assembler.Build(origin, destination, []StopPlan{
		{Place: s1, Order: 1},
	}, nil, model.NewDetourBudget(800, 0))

	require.Len(t, route.Stops, 1)
	assert.Zero(t, route.Stops[0].MileMarker)
	assert.Empty(t, route.Polyline)
}

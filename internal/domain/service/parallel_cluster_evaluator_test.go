package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VoiceNav-App/internal/domain/model"
)

func testCluster(id string, stops ...*model.PlaceCandidate) *model.StopCluster {
	return &model.StopCluster{
		ID:    id,
		Stops: stops,
	}
}

func TestEvaluateClusters_SortedByDuration(t *testing.T) {
	origin := model.LatLng{Lat: 35.0, Lng: 135.0}
	destination := model.LatLng{Lat: 35.0, Lng: 135.1}

	// 停車地が遠いほど所要時間が伸びる直線ルートを返す
	provider := &fakeDirectionsProvider{
		fn: func(ctx context.Context, o, d model.LatLng, waypoints []model.LatLng) (*model.DirectionsResult, error) {
			points := append([]model.LatLng{o}, waypoints...)
			points = append(points, d)
			return straightLineDirections(points...), nil
		},
	}

	evaluator := NewParallelClusterEvaluator(provider, 2)
	clusters := []*model.StopCluster{
		testCluster("far", place("f1", 35.3, 135.05)),
		testCluster("near", place("n1", 35.001, 135.05)),
	}

	directDurationMin := straightLineDirections(origin, destination).TotalDurationMin
	evaluated := evaluator.EvaluateClusters(context.Background(), origin, destination, clusters, directDurationMin)

	require.Len(t, evaluated, 2)
	assert.Equal(t, "near", evaluated[0].Cluster.ID)
	assert.Equal(t, "far", evaluated[1].Cluster.ID)
	assert.LessOrEqual(t, evaluated[0].Directions.TotalDurationMin, evaluated[1].Directions.TotalDurationMin)

	// 追加時間は直行所要時間との差で、負にはならない
	for _, ev := range evaluated {
		assert.GreaterOrEqual(t, ev.ExtraTimeMin, 0.0)
	}
}

func TestEvaluateClusters_FailedClusterExcluded(t *testing.T) {
	origin := model.LatLng{Lat: 35.0, Lng: 135.0}
	destination := model.LatLng{Lat: 35.0, Lng: 135.1}

	provider := &fakeDirectionsProvider{
		fn: func(ctx context.Context, o, d model.LatLng, waypoints []model.LatLng) (*model.DirectionsResult, error) {
			if len(waypoints) > 0 && waypoints[0].Lat > 35.2 {
				return nil, errors.New("upstream error")
			}
			points := append([]model.LatLng{o}, waypoints...)
			points = append(points, d)
			return straightLineDirections(points...), nil
		},
	}

	evaluator := NewParallelClusterEvaluator(provider, 5)
	clusters := []*model.StopCluster{
		testCluster("ok", place("n1", 35.001, 135.05)),
		testCluster("broken", place("f1", 35.3, 135.05)),
	}

	evaluated := evaluator.EvaluateClusters(context.Background(), origin, destination, clusters, 10)

	require.Len(t, evaluated, 1)
	assert.Equal(t, "ok", evaluated[0].Cluster.ID)
}

func TestEvaluateClusters_RespectsParallelLimit(t *testing.T) {
	origin := model.LatLng{Lat: 35.0, Lng: 135.0}
	destination := model.LatLng{Lat: 35.0, Lng: 135.1}

	var inFlight, maxInFlight int64
	provider := &fakeDirectionsProvider{
		fn: func(ctx context.Context, o, d model.LatLng, waypoints []model.LatLng) (*model.DirectionsResult, error) {
			current := atomic.AddInt64(&inFlight, 1)
			for {
				max := atomic.LoadInt64(&maxInFlight)
				if current <= max || atomic.CompareAndSwapInt64(&maxInFlight, max, current) {
					break
				}
			}
			defer atomic.AddInt64(&inFlight, -1)

			points := append([]model.LatLng{o}, waypoints...)
			points = append(points, d)
			return straightLineDirections(points...), nil
		},
	}

	evaluator := NewParallelClusterEvaluator(provider, 2)
	var clusters []*model.StopCluster
	for i := 0; i < 8; i++ {
		clusters = append(clusters, testCluster("c", place("p", 35.001, 135.05)))
	}

	evaluated := evaluator.EvaluateClusters(context.Background(), origin, destination, clusters, 10)
	require.Len(t, evaluated, 8)
	assert.LessOrEqual(t, maxInFlight, int64(2))
}

func TestEvaluateClusters_EmptyInput(t *testing.T) {
	evaluator := NewParallelClusterEvaluator(&fakeDirectionsProvider{}, 5)
	assert.Empty(t, evaluator.EvaluateClusters(context.Background(), model.LatLng{}, model.LatLng{}, nil, 0))
}

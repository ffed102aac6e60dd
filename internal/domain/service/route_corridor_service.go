package service

import (
	"VoiceNav-App/internal/domain/helper"
	"VoiceNav-App/internal/domain/model"
	"VoiceNav-App/internal/domain/repository"
	"context"
	"fmt"
)

// RouteCorridorService は直行ルートからコリドー（道路沿いの検索アンカー集合）を抽出する
type RouteCorridorService interface {
	ExtractCorridor(ctx context.Context, origin, destination model.LatLng, cfg model.CorridorConfig) (*model.RouteCorridor, error)
}

type routeCorridorService struct {
	directionsProvider repository.DirectionsProvider
}

func NewRouteCorridorService(dp repository.DirectionsProvider) RouteCorridorService {
	return &routeCorridorService{
		directionsProvider: dp,
	}
}

// ExtractCorridor は origin→destination の運転ルートを取得し、ポリラインをデコードして
// 等間隔サンプリングしたコリドーを生成する。ルートが存在しない場合は ROUTE_NOT_FOUND
func (s *routeCorridorService) ExtractCorridor(ctx context.Context, origin, destination model.LatLng, cfg model.CorridorConfig) (*model.RouteCorridor, error) {
	directions, err := s.directionsProvider.GetDrivingRoute(ctx, origin, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("直行ルートの取得に失敗: %w", err)
	}
	if directions == nil {
		return nil, model.NewRouteNotFoundError(nil)
	}

	path := helper.DecodePolyline(directions.Polyline)
	if len(path) == 0 {
		// ポリラインが空でも端点だけでコリドーを成立させる
		path = []model.LatLng{origin, destination}
	}

	return &model.RouteCorridor{
		Polyline:         directions.Polyline,
		DecodedPath:      path,
		CorridorPoints:   sampleCorridorPoints(path, directions.TotalDistanceM, cfg),
		TotalDistanceM:   directions.TotalDistanceM,
		TotalDurationMin: directions.TotalDurationMin,
		Origin:           origin,
		Destination:      destination,
		Directions:       directions,
	}, nil
}

// sampleCorridorPoints はデコード済み経路を先頭から歩きながら累積距離でサンプリングする。
// 先頭と末尾の点は必ず含める。点数が MinPoints を下回る場合は弧長で等間隔補間に切り替える
func sampleCorridorPoints(path []model.LatLng, totalDistanceM float64, cfg model.CorridorConfig) []model.CorridorPoint {
	if len(path) == 0 {
		return nil
	}

	points := []model.CorridorPoint{{Location: path[0], DistanceFromOriginM: 0}}
	if len(path) == 1 {
		return points
	}

	pathTotal := helper.PathDistanceM(path)
	finalDist := totalDistanceM
	if finalDist <= 0 {
		finalDist = pathTotal
	}

	cumulative := 0.0
	sinceLast := 0.0
	for i := 1; i < len(path)-1; i++ {
		d := helper.HaversineDistanceM(path[i-1], path[i])
		cumulative += d
		sinceLast += d

		if sinceLast < cfg.SamplingIntervalM {
			continue
		}
		// 目的地まで半区間未満しか残っていない場合は最終点を待つ
		if pathTotal-cumulative < cfg.SamplingIntervalM/2 {
			continue
		}
		// 最後の1枠は目的地用に予約する
		if len(points) >= cfg.MaxPoints-1 {
			break
		}

		points = append(points, model.CorridorPoint{
			Location:            path[i],
			DistanceFromOriginM: cumulative,
		})
		sinceLast = 0
	}

	points = append(points, model.CorridorPoint{
		Location:            path[len(path)-1],
		DistanceFromOriginM: finalDist,
	})

	if len(points) < cfg.MinPoints && len(path) >= cfg.MinPoints {
		return interpolateCorridorPoints(path, pathTotal, finalDist, cfg.MinPoints)
	}
	return points
}

// interpolateCorridorPoints は経路全体を弧長で n 等分した点列を線形補間で生成する
func interpolateCorridorPoints(path []model.LatLng, pathTotal, finalDist float64, n int) []model.CorridorPoint {
	points := make([]model.CorridorPoint, 0, n)
	for k := 0; k < n; k++ {
		ratio := float64(k) / float64(n-1)
		points = append(points, model.CorridorPoint{
			Location:            helper.InterpolateAlongPath(path, pathTotal*ratio),
			DistanceFromOriginM: finalDist * ratio,
		})
	}
	// 両端は経路の端点に揃える
	points[0].Location = path[0]
	points[n-1].Location = path[len(path)-1]
	return points
}

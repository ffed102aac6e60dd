package service

import (
	"VoiceNav-App/internal/domain/model"
	"VoiceNav-App/internal/domain/repository"
	"context"
	"log"
	"sort"
	"sync"
)

// ParallelClusterEvaluator は複数クラスタの実ルートを並列に取得して評価する
type ParallelClusterEvaluator interface {
	EvaluateClusters(ctx context.Context, origin, destination model.LatLng, clusters []*model.StopCluster, directDurationMin float64) []*model.EvaluatedCluster
}

type parallelClusterEvaluator struct {
	directionsProvider repository.DirectionsProvider
	maxParallel        int
}

func NewParallelClusterEvaluator(dp repository.DirectionsProvider, maxParallel int) ParallelClusterEvaluator {
	if maxParallel <= 0 {
		maxParallel = model.DefaultNavigationConfig().MaxParallelEvaluations
	}
	return &parallelClusterEvaluator{
		directionsProvider: dp,
		maxParallel:        maxParallel,
	}
}

// EvaluateClusters は各クラスタについて訪問順を決め、実際の運転ルートを取得して追加時間を算出する。
// 失敗したクラスタは結果から除外し、残りを総所要時間の昇順で返す
func (e *parallelClusterEvaluator) EvaluateClusters(ctx context.Context, origin, destination model.LatLng, clusters []*model.StopCluster, directDurationMin float64) []*model.EvaluatedCluster {
	if len(clusters) == 0 {
		return nil
	}

	log.Printf("🔄 %d件のクラスタを並列評価します (最大並列数: %d)", len(clusters), e.maxParallel)

	semaphore := make(chan struct{}, e.maxParallel)
	results := make(chan *model.EvaluatedCluster, len(clusters))
	var wg sync.WaitGroup

	for _, cluster := range clusters {
		wg.Add(1)
		go func(cluster *model.StopCluster) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			evaluated := e.evaluateOne(ctx, origin, destination, cluster, directDurationMin)
			if evaluated != nil {
				results <- evaluated
			}
		}(cluster)
	}

	wg.Wait()
	close(results)

	var evaluated []*model.EvaluatedCluster
	for result := range results {
		evaluated = append(evaluated, result)
	}

	sort.Slice(evaluated, func(i, j int) bool {
		return evaluated[i].Directions.TotalDurationMin < evaluated[j].Directions.TotalDurationMin
	})

	log.Printf("✅ クラスタ評価完了: %d/%d件が成功", len(evaluated), len(clusters))
	return evaluated
}

func (e *parallelClusterEvaluator) evaluateOne(ctx context.Context, origin, destination model.LatLng, cluster *model.StopCluster, directDurationMin float64) *model.EvaluatedCluster {
	order := OptimizeStopOrder(origin, destination, cluster.Stops)

	waypoints := make([]model.LatLng, len(order.OrderedStops))
	for i, stop := range order.OrderedStops {
		waypoints[i] = stop.Location
	}

	directions, err := e.directionsProvider.GetDrivingRoute(ctx, origin, destination, waypoints)
	if err != nil {
		log.Printf("⚠️ クラスタ %s のルート取得に失敗: %v", cluster.ID, err)
		return nil
	}
	if directions == nil {
		log.Printf("⚠️ クラスタ %s を経由するルートが見つかりませんでした", cluster.ID)
		return nil
	}

	extraTime := directions.TotalDurationMin - directDurationMin
	if extraTime < 0 {
		extraTime = 0
	}

	return &model.EvaluatedCluster{
		Cluster:      cluster,
		Order:        order,
		Directions:   directions,
		ExtraTimeMin: extraTime,
	}
}

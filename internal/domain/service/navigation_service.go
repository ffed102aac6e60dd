package service

import (
	"VoiceNav-App/internal/domain/helper"
	"VoiceNav-App/internal/domain/model"
	"VoiceNav-App/internal/domain/repository"
	"context"
	"fmt"
	"log"
	"sort"
)

// NavigationService は停車地付きルート計画のオーケストレーター
type NavigationService interface {
	// NavigateWithStops は目的地解決からクラスタ評価・ランキングまでの全段を実行する
	NavigateWithStops(ctx context.Context, req *model.NavigationRequest) (*model.NavigationResult, error)

	// SuggestStopsOnRoute はルート沿いのカテゴリ候補を提案する（ルート確定はしない）
	SuggestStopsOnRoute(ctx context.Context, origin, destination model.LatLng, categories []string, maxSuggestions int) (*model.StopSuggestionsResult, error)

	// Recalculate は解決済みの停車地リストで順序最適化と再ルーティングだけをやり直す
	Recalculate(ctx context.Context, req *model.RecalculateRequest) (*model.NavigationResult, error)

	// Preview は停車地なしの直行ルートだけを組み立てる
	Preview(ctx context.Context, origin, destination model.LatLng) (*model.Route, error)
}

type navigationService struct {
	directionsProvider repository.DirectionsProvider
	corridorService    RouteCorridorService
	placeResolver      PlaceResolverService
	clusterDetector    ClusterDetectorService
	evaluator          ParallelClusterEvaluator
	assembler          RouteAssembler

	corridorCfg model.CorridorConfig
	searchCfg   model.CorridorSearchConfig
	clusterCfg  model.ClusterConfig
	navCfg      model.NavigationConfig
}

func NewNavigationService(
	dp repository.DirectionsProvider,
	corridorService RouteCorridorService,
	placeResolver PlaceResolverService,
	clusterDetector ClusterDetectorService,
	evaluator ParallelClusterEvaluator,
	assembler RouteAssembler,
) NavigationService {
	return &navigationService{
		directionsProvider: dp,
		corridorService:    corridorService,
		placeResolver:      placeResolver,
		clusterDetector:    clusterDetector,
		evaluator:          evaluator,
		assembler:          assembler,
		corridorCfg:        model.DefaultCorridorConfig(),
		searchCfg:          model.DefaultCorridorSearchConfig(),
		clusterCfg:         model.DefaultClusterConfig(),
		navCfg:             model.DefaultNavigationConfig(),
	}
}

// NavigateWithStops は計画リクエストの全段を実行する。
// 停車地候補の欠落は excluded_stops として劣化させ、直行ルートの失敗だけをエラーにする
func (s *navigationService) NavigateWithStops(ctx context.Context, req *model.NavigationRequest) (*model.NavigationResult, error) {
	log.Printf("🚀 ルート計画開始: 目的地「%s」 停車地%d件", req.Destination.Name, len(req.StopQueries))

	destination, err := s.resolveDestination(ctx, req)
	if err != nil {
		return nil, err
	}

	corridor, err := s.corridorService.ExtractCorridor(ctx, req.Origin, destination.Location, s.corridorCfg)
	if err != nil {
		return nil, err
	}
	bufferM := CalculateBuffer(corridor.TotalDistanceM)

	if len(req.StopQueries) == 0 {
		return s.directResult(req.Origin, corridor, *destination, bufferM, nil), nil
	}

	candidates, err := s.placeResolver.ResolveStopsAlongCorridor(ctx, req.StopQueries, corridor, s.searchCfg)
	if err != nil {
		return nil, fmt.Errorf("コリドー検索に失敗: %w", err)
	}

	var excluded []model.ExcludedStop
	for _, query := range req.StopQueries {
		if len(candidates[query]) == 0 {
			excluded = append(excluded, model.ExcludedStop{
				Query:  query,
				Reason: model.ExcludedReasonNoPlacesOnCorridor,
			})
		}
	}
	if len(excluded) == len(req.StopQueries) {
		log.Printf("⚠️ 全カテゴリで候補が見つからなかったため直行ルートを返します")
		return s.directResult(req.Origin, corridor, *destination, bufferM, excluded), nil
	}

	clusters := s.clusterDetector.DetectClusters(candidates, corridor, s.clusterCfg)
	evaluated := s.evaluator.EvaluateClusters(ctx, req.Origin, destination.Location, clusters, corridor.TotalDurationMin)

	if len(evaluated) == 0 {
		log.Printf("⚠️ クラスタ評価が全滅したためフォールバック解決に切り替えます")
		return s.fallbackResult(ctx, req, corridor, *destination, bufferM, excluded)
	}

	options := s.rankOptions(req.Origin, destination.Location, corridor, evaluated, bufferM, req.VoiceMode)

	result := &model.NavigationResult{
		Route:         options[0].Route,
		RouteOptions:  options,
		ExcludedStops: excluded,
		Destination:   *destination,
		DirectTimeMin: corridor.TotalDurationMin,
	}
	if _, warning := CategorizeDetour(evaluated[0].ExtraTimeMin); warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	log.Printf("🏆 ルート計画完了: 候補%d件 除外%d件", len(options), len(excluded))
	return result, nil
}

// SuggestStopsOnRoute はカテゴリごとの最良1件をコリドー中間点の周辺で解決し、
// 起点からの沿線距離の昇順で提案する
func (s *navigationService) SuggestStopsOnRoute(ctx context.Context, origin, destination model.LatLng, categories []string, maxSuggestions int) (*model.StopSuggestionsResult, error) {
	corridor, err := s.corridorService.ExtractCorridor(ctx, origin, destination, s.corridorCfg)
	if err != nil {
		return nil, err
	}

	resolved, err := s.placeResolver.ResolveStops(ctx, categories, corridor.Midpoint(), 0)
	if err != nil {
		return nil, fmt.Errorf("停車地候補の解決に失敗: %w", err)
	}

	counts := make(map[string]int, len(categories))
	for _, category := range categories {
		counts[category] = 0
	}
	suggestions := make([]model.StopSuggestion, 0, len(resolved))
	for _, stop := range resolved {
		counts[stop.Query]++
		suggestions = append(suggestions, model.StopSuggestion{
			Query:               stop.Query,
			Place:               stop.Place,
			DistanceFromOriginM: distanceAlongCorridor(stop.Place.Location, corridor),
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].DistanceFromOriginM < suggestions[j].DistanceFromOriginM
	})
	if maxSuggestions > 0 && len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return &model.StopSuggestionsResult{
		Suggestions:    suggestions,
		CategoryCounts: counts,
	}, nil
}

// Recalculate は解決済みの停車地で順序決定と実ルート取得だけをやり直す
func (s *navigationService) Recalculate(ctx context.Context, req *model.RecalculateRequest) (*model.NavigationResult, error) {
	log.Printf("🔄 再計画開始: 停車地%d件", len(req.Stops))

	corridor, err := s.corridorService.ExtractCorridor(ctx, req.Origin, req.Destination, s.corridorCfg)
	if err != nil {
		return nil, err
	}
	bufferM := CalculateBuffer(corridor.TotalDistanceM)
	destination := model.ResolvedDestination{
		Location: req.Destination,
		Source:   model.ResolveSourceExplicit,
	}

	if len(req.Stops) == 0 {
		return s.directResult(req.Origin, corridor, destination, bufferM, nil), nil
	}

	order := OptimizeStopOrder(req.Origin, req.Destination, req.Stops)
	waypoints := make([]model.LatLng, len(order.OrderedStops))
	for i, stop := range order.OrderedStops {
		waypoints[i] = stop.Location
	}

	directions, err := s.directionsProvider.GetDrivingRoute(ctx, req.Origin, req.Destination, waypoints)
	if err != nil {
		return nil, fmt.Errorf("再計画ルートの取得に失敗: %w", err)
	}
	if directions == nil {
		return nil, model.NewRouteNotFoundError(nil)
	}

	extraTime := directions.TotalDurationMin - corridor.TotalDurationMin
	if extraTime < 0 {
		extraTime = 0
	}

	option := s.buildOption(req.Origin, req.Destination, corridor, order, directions, extraTime, 0, bufferM)
	option.Label = model.OptionLabelRecommended
	option.IsRecommended = true

	result := &model.NavigationResult{
		Route:         option.Route,
		RouteOptions:  []*model.RouteOption{option},
		Destination:   destination,
		DirectTimeMin: corridor.TotalDurationMin,
	}
	if _, warning := CategorizeDetour(extraTime); warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	return result, nil
}

// Preview は停車地なしの直行ルートだけを組み立てて返す
func (s *navigationService) Preview(ctx context.Context, origin, destination model.LatLng) (*model.Route, error) {
	corridor, err := s.corridorService.ExtractCorridor(ctx, origin, destination, s.corridorCfg)
	if err != nil {
		return nil, err
	}
	budget := model.NewDetourBudget(CalculateBuffer(corridor.TotalDistanceM), 0)
	return s.assembler.Build(origin, destination, nil, corridor.Directions, budget), nil
}

// resolveDestination は目的地を確定する。明示座標があればそれを優先し、
// なければ旅行方向に寄せたヒント位置で名前解決する
func (s *navigationService) resolveDestination(ctx context.Context, req *model.NavigationRequest) (*model.ResolvedDestination, error) {
	if req.Destination.Location != nil {
		return &model.ResolvedDestination{
			Name:     req.Destination.Name,
			Location: *req.Destination.Location,
			Source:   model.ResolveSourceExplicit,
		}, nil
	}

	hint := req.Origin
	if len(req.StopQueries) > 0 {
		// 最初の停車地を先に解決できれば、その位置を目的地検索のヒントにする
		resolved, err := s.placeResolver.ResolveStops(ctx, req.StopQueries[:1], req.Origin, 0)
		if err == nil && len(resolved) > 0 {
			hint = resolved[0].Place.Location
		}
	}

	return s.placeResolver.ResolveDestination(ctx, req.Destination.Name, req.Anchors, &hint)
}

// directResult は停車地なしの直行ルート1件だけを持つ結果を組み立てる
func (s *navigationService) directResult(origin model.LatLng, corridor *model.RouteCorridor, destination model.ResolvedDestination, bufferM float64, excluded []model.ExcludedStop) *model.NavigationResult {
	budget := model.NewDetourBudget(bufferM, 0)
	route := s.assembler.Build(origin, destination.Location, nil, corridor.Directions, budget)

	option := &model.RouteOption{
		ID:              route.ID,
		Label:           model.OptionLabelDirect,
		IsRecommended:   true,
		TotalTimeMin:    corridor.TotalDurationMin,
		TotalDistanceMi: helper.MetersToMiles(corridor.TotalDistanceM),
		ExtraTimeMin:    0,
		Route:           route,
	}

	return &model.NavigationResult{
		Route:         route,
		RouteOptions:  []*model.RouteOption{option},
		ExcludedStops: excluded,
		Destination:   destination,
		DirectTimeMin: corridor.TotalDurationMin,
	}
}

// fallbackResult はクラスタ評価が全滅したときの保険。コリドー中間点の周辺で
// 各クエリを1件ずつ解決し、1本だけ実ルートを引き直す。それも失敗したら直行ルートに劣化する
func (s *navigationService) fallbackResult(ctx context.Context, req *model.NavigationRequest, corridor *model.RouteCorridor, destination model.ResolvedDestination, bufferM float64, excluded []model.ExcludedStop) (*model.NavigationResult, error) {
	midpoint := corridor.Midpoint()
	resolved, err := s.placeResolver.ResolveStops(ctx, req.StopQueries, midpoint, bufferM)
	if err != nil || len(resolved) == 0 {
		if err != nil {
			log.Printf("⚠️ フォールバック解決に失敗: %v", err)
		}
		return s.directResult(req.Origin, corridor, destination, bufferM, excluded), nil
	}

	stops := make([]*model.PlaceCandidate, len(resolved))
	for i, r := range resolved {
		stops[i] = r.Place
	}
	order := OptimizeStopOrder(req.Origin, destination.Location, stops)

	waypoints := make([]model.LatLng, len(order.OrderedStops))
	for i, stop := range order.OrderedStops {
		waypoints[i] = stop.Location
	}
	directions, err := s.directionsProvider.GetDrivingRoute(ctx, req.Origin, destination.Location, waypoints)
	if err != nil || directions == nil {
		if err != nil {
			log.Printf("⚠️ フォールバックルートの取得に失敗: %v", err)
		}
		return s.directResult(req.Origin, corridor, destination, bufferM, excluded), nil
	}

	extraTime := directions.TotalDurationMin - corridor.TotalDurationMin
	if extraTime < 0 {
		extraTime = 0
	}

	option := s.buildOption(req.Origin, destination.Location, corridor, order, directions, extraTime, 0, bufferM)
	option.Label = model.OptionLabelRecommended
	option.IsRecommended = true

	result := &model.NavigationResult{
		Route:         option.Route,
		RouteOptions:  []*model.RouteOption{option},
		ExcludedStops: excluded,
		Destination:   destination,
		DirectTimeMin: corridor.TotalDurationMin,
	}
	if _, warning := CategorizeDetour(extraTime); warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	return result, nil
}

// rankOptions は評価済みクラスタをランキングして候補リストに変換する。
// 最良案より大幅に遅い案と広がりすぎたクラスタは落とし、音声モードでは1件に絞る
func (s *navigationService) rankOptions(origin, destination model.LatLng, corridor *model.RouteCorridor, evaluated []*model.EvaluatedCluster, bufferM float64, voiceMode bool) []*model.RouteOption {
	maxOptions := s.navCfg.MaxRouteOptions
	if voiceMode {
		maxOptions = 1
	}

	best := evaluated[0]
	var options []*model.RouteOption
	for i, ev := range evaluated {
		if len(options) >= maxOptions {
			break
		}
		if i > 0 {
			if ev.Directions.TotalDurationMin-best.Directions.TotalDurationMin > s.navCfg.MaxExtraTimeMin {
				continue
			}
			if ev.Cluster.MaxPairwiseDistanceM > s.navCfg.MaxClusterRadiusKm*1000 {
				continue
			}
		}

		option := s.buildOption(origin, destination, corridor, ev.Order, ev.Directions, ev.ExtraTimeMin, ev.Cluster.MaxPairwiseDistanceM/1000, bufferM)
		if len(options) == 0 {
			option.Label = model.OptionLabelRecommended
			option.IsRecommended = true
		} else {
			option.Label = fmt.Sprintf("Alternative %d", len(options))
		}
		options = append(options, option)
	}
	return options
}

// buildOption は訪問順と実ルートから候補1件分を組み立てる。
// 停車地ごとの回り道コストは「入るレグ＋出るレグ − 前後地点間の直線距離」で近似する
func (s *navigationService) buildOption(origin, destination model.LatLng, corridor *model.RouteCorridor, order *model.OptimizedOrder, directions *model.DirectionsResult, extraTimeMin, clusterRadiusKm, bufferM float64) *model.RouteOption {
	plans := make([]StopPlan, 0, len(order.OrderedStops))
	for i, stop := range order.OrderedStops {
		cost := stopDetourCost(origin, destination, order.OrderedStops, i, directions.Legs)
		plans = append(plans, StopPlan{
			Place:       stop,
			DetourCostM: cost,
			Status:      GetDetourStatus(cost, bufferM),
			Order:       i + 1,
		})
	}

	usedM := directions.TotalDistanceM - corridor.TotalDistanceM
	if usedM < 0 {
		usedM = 0
	}

	route := s.assembler.Build(origin, destination, plans, directions, model.NewDetourBudget(bufferM, usedM))
	return &model.RouteOption{
		ID:              route.ID,
		TotalTimeMin:    directions.TotalDurationMin,
		TotalDistanceMi: helper.MetersToMiles(directions.TotalDistanceM),
		ExtraTimeMin:    extraTimeMin,
		ClusterRadiusKm: clusterRadiusKm,
		Stops:           route.Stops,
		Route:           route,
	}
}

// stopDetourCost は停車地iを飛ばした場合に短縮される距離の近似値を返す。
// レグ情報が欠けている場合は0とする
func stopDetourCost(origin, destination model.LatLng, stops []*model.PlaceCandidate, i int, legs []model.RouteLeg) float64 {
	if i+1 >= len(legs) {
		return 0
	}

	prev := origin
	if i > 0 {
		prev = stops[i-1].Location
	}
	next := destination
	if i < len(stops)-1 {
		next = stops[i+1].Location
	}

	cost := legs[i].DistanceM + legs[i+1].DistanceM - helper.HaversineDistanceM(prev, next)
	if cost < 0 {
		return 0
	}
	return cost
}

// distanceAlongCorridor は場所に最も近いコリドー点の起点からの距離を返す
func distanceAlongCorridor(location model.LatLng, corridor *model.RouteCorridor) float64 {
	best := 0.0
	bestDist := -1.0
	for _, point := range corridor.CorridorPoints {
		d := helper.HaversineDistanceM(location, point.Location)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = point.DistanceFromOriginM
		}
	}
	return best
}

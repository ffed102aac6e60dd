package service

import (
	"VoiceNav-App/internal/domain/helper"
	"VoiceNav-App/internal/domain/model"
	"math"
	"sort"

	"github.com/google/uuid"
)

// クラスタスコアの距離正規化係数（メートル）
const clusterScoreScaleM = 10000.0

// ClusterDetectorService はカテゴリごとの候補から地理的にまとまった組み合わせを検出する
type ClusterDetectorService interface {
	// DetectClusters はスコア昇順（良い順）で最大 MaxClusters 件のクラスタを返す
	DetectClusters(candidates model.CategoryCandidates, corridor *model.RouteCorridor, cfg model.ClusterConfig) []*model.StopCluster
}

type clusterDetectorService struct{}

func NewClusterDetectorService() ClusterDetectorService {
	return &clusterDetectorService{}
}

func (s *clusterDetectorService) DetectClusters(candidates model.CategoryCandidates, corridor *model.RouteCorridor, cfg model.ClusterConfig) []*model.StopCluster {
	// 候補が空のカテゴリは落として残りで検出を続ける（失敗ではなく劣化）
	categories := make([]string, 0, len(candidates))
	for category, places := range candidates {
		if len(places) > 0 {
			categories = append(categories, category)
		}
	}
	if len(categories) == 0 {
		return nil
	}
	sort.Strings(categories) // 決定的な順序にする

	if len(categories) == 1 {
		return s.detectSingleCategory(categories[0], candidates[categories[0]], corridor, cfg)
	}

	lists := make([][]*model.PlaceCandidate, len(categories))
	for i, category := range categories {
		lists[i] = candidates[category]
	}
	lists = pruneCombinations(lists, corridor, cfg.MaxCombinations)

	var clusters []*model.StopCluster
	forEachCombination(lists, func(combination []*model.PlaceCandidate) {
		clusters = append(clusters, s.scoreCombination(combination, categories, corridor, cfg))
	})

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Score < clusters[j].Score
	})
	if len(clusters) > cfg.MaxClusters {
		clusters = clusters[:cfg.MaxClusters]
	}
	return clusters
}

// detectSingleCategory は単一カテゴリの退化ケース。各候補がそれぞれ1停車地クラスタになり、
// コリドーからの距離のみでスコアリングする
func (s *clusterDetectorService) detectSingleCategory(category string, places []*model.PlaceCandidate, corridor *model.RouteCorridor, cfg model.ClusterConfig) []*model.StopCluster {
	clusters := make([]*model.StopCluster, 0, len(places))
	for _, place := range places {
		distFromRoute := helper.DistanceToPathM(place.Location, corridor.DecodedPath)
		clusters = append(clusters, &model.StopCluster{
			ID:                   "cluster_" + uuid.New().String(),
			Stops:                []*model.PlaceCandidate{place},
			Categories:           []string{category},
			Centroid:             place.Location,
			RadiusM:              0,
			MaxPairwiseDistanceM: 0,
			DistanceFromRouteM:   distFromRoute,
			Score:                (distFromRoute / clusterScoreScaleM) * cfg.RouteProximityWeight,
		})
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Score < clusters[j].Score
	})
	if len(clusters) > cfg.MaxClusters {
		clusters = clusters[:cfg.MaxClusters]
	}
	return clusters
}

// scoreCombination は組み合わせ1件をスコアリングする。スコアは小さいほど良い
func (s *clusterDetectorService) scoreCombination(combination []*model.PlaceCandidate, categories []string, corridor *model.RouteCorridor, cfg model.ClusterConfig) *model.StopCluster {
	locations := make([]model.LatLng, len(combination))
	for i, place := range combination {
		locations[i] = place.Location
	}

	centroid := helper.Centroid(locations)
	maxPairwise := helper.MaxPairwiseDistanceM(locations)
	distFromRoute := helper.DistanceToPathM(centroid, corridor.DecodedPath)

	radius := 0.0
	for _, loc := range locations {
		if d := helper.HaversineDistanceM(centroid, loc); d > radius {
			radius = d
		}
	}

	score := (maxPairwise/clusterScoreScaleM)*cfg.TightnessWeight +
		(distFromRoute/clusterScoreScaleM)*cfg.RouteProximityWeight

	stops := make([]*model.PlaceCandidate, len(combination))
	copy(stops, combination)

	return &model.StopCluster{
		ID:                   "cluster_" + uuid.New().String(),
		Stops:                stops,
		Categories:           categories,
		Centroid:             centroid,
		RadiusM:              radius,
		MaxPairwiseDistanceM: maxPairwise,
		DistanceFromRouteM:   distFromRoute,
		Score:                score,
	}
}

// pruneCombinations は組み合わせ総数が上限を超える場合、各カテゴリをコリドーに近い候補だけに刈り込む。
// カテゴリあたりの件数は clamp(floor(maxCombinations^(1/カテゴリ数)), 3, 10)
func pruneCombinations(lists [][]*model.PlaceCandidate, corridor *model.RouteCorridor, maxCombinations int) [][]*model.PlaceCandidate {
	total := 1
	for _, list := range lists {
		total *= len(list)
		if total > maxCombinations {
			break
		}
	}
	if total <= maxCombinations {
		return lists
	}

	perCategory := int(math.Floor(math.Pow(float64(maxCombinations), 1/float64(len(lists)))))
	if perCategory < 3 {
		perCategory = 3
	}
	if perCategory > 10 {
		perCategory = 10
	}

	pruned := make([][]*model.PlaceCandidate, len(lists))
	for i, list := range lists {
		if len(list) <= perCategory {
			pruned[i] = list
			continue
		}
		sorted := make([]*model.PlaceCandidate, len(list))
		copy(sorted, list)
		sort.Slice(sorted, func(a, b int) bool {
			return helper.DistanceToPathM(sorted[a].Location, corridor.DecodedPath) <
				helper.DistanceToPathM(sorted[b].Location, corridor.DecodedPath)
		})
		pruned[i] = sorted[:perCategory]
	}
	return pruned
}

// forEachCombination は各カテゴリのリストから1件ずつ選ぶ直積を列挙する
func forEachCombination(lists [][]*model.PlaceCandidate, visit func([]*model.PlaceCandidate)) {
	combination := make([]*model.PlaceCandidate, len(lists))
	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(lists) {
			visit(combination)
			return
		}
		for _, place := range lists[depth] {
			combination[depth] = place
			walk(depth + 1)
		}
	}
	walk(0)
}

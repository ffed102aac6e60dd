package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VoiceNav-App/internal/domain/helper"
	"VoiceNav-App/internal/domain/model"
)

// testCorridor 緯度方向に伸びる直線コリドーを生成する
func testCorridor() *model.RouteCorridor {
	path := longStraightPath()
	return &model.RouteCorridor{
		DecodedPath:    path,
		TotalDistanceM: helper.PathDistanceM(path),
		Origin:         path[0],
		Destination:    path[len(path)-1],
	}
}

func TestDetectClusters_EmptyInput(t *testing.T) {
	detector := NewClusterDetectorService()

	assert.Empty(t, detector.DetectClusters(nil, testCorridor(), model.DefaultClusterConfig()))
	assert.Empty(t, detector.DetectClusters(model.CategoryCandidates{}, testCorridor(), model.DefaultClusterConfig()))
}

func TestDetectClusters_EmptyCategoryDropped(t *testing.T) {
	detector := NewClusterDetectorService()
	candidates := model.CategoryCandidates{
		"coffee":   {place("c1", 35.05, 135.001)},
		"pharmacy": {},
	}

	clusters := detector.DetectClusters(candidates, testCorridor(), model.DefaultClusterConfig())

	// 空カテゴリは落とされ、残り1カテゴリの退化ケースになる
	require.Len(t, clusters, 1)
	assert.Equal(t, []string{"coffee"}, clusters[0].Categories)
	require.Len(t, clusters[0].Stops, 1)
	assert.Zero(t, clusters[0].MaxPairwiseDistanceM)
}

func TestDetectClusters_TightClusterWinsOverSpread(t *testing.T) {
	detector := NewClusterDetectorService()

	// coffee c1 と pharmacy p1 は約100mしか離れていない。p2は約100km東
	candidates := model.CategoryCandidates{
		"coffee": {place("c1", 35.05, 135.001)},
		"pharmacy": {
			place("p2", 35.05, 136.1),
			place("p1", 35.051, 135.001),
		},
	}

	clusters := detector.DetectClusters(candidates, testCorridor(), model.DefaultClusterConfig())
	require.Len(t, clusters, 2)

	// 最良クラスタは近接ペア
	best := clusters[0]
	ids := []string{best.Stops[0].PlaceID, best.Stops[1].PlaceID}
	assert.ElementsMatch(t, []string{"c1", "p1"}, ids)
	assert.Less(t, best.MaxPairwiseDistanceM, 500.0)

	// スコアは昇順
	assert.LessOrEqual(t, clusters[0].Score, clusters[1].Score)
}

func TestDetectClusters_CapsAtMaxClusters(t *testing.T) {
	detector := NewClusterDetectorService()
	cfg := model.DefaultClusterConfig()

	candidates := model.CategoryCandidates{
		"coffee": {
			place("c1", 35.05, 135.001),
			place("c2", 35.06, 135.001),
			place("c3", 35.07, 135.001),
		},
		"pharmacy": {
			place("p1", 35.05, 135.002),
			place("p2", 35.06, 135.002),
		},
	}

	// 3×2=6通りの組み合わせがあるが、返却は上限まで
	clusters := detector.DetectClusters(candidates, testCorridor(), cfg)
	assert.Len(t, clusters, cfg.MaxClusters)
}

func TestDetectClusters_IdenticalLocations(t *testing.T) {
	detector := NewClusterDetectorService()
	candidates := model.CategoryCandidates{
		"coffee":   {place("c1", 35.05, 135.0)},
		"pharmacy": {place("p1", 35.05, 135.0)},
	}

	clusters := detector.DetectClusters(candidates, testCorridor(), model.DefaultClusterConfig())
	require.Len(t, clusters, 1)
	assert.Zero(t, clusters[0].MaxPairwiseDistanceM)
	assert.Zero(t, clusters[0].RadiusM)
}

func TestPruneCombinations(t *testing.T) {
	corridor := testCorridor()

	// 30×30=900 > 500 なので各カテゴリが刈り込まれる
	var many []*model.PlaceCandidate
	for i := 0; i < 30; i++ {
		many = append(many, place("x", 35.05, 135.0+float64(i)*0.01))
	}
	lists := [][]*model.PlaceCandidate{many, many}

	pruned := pruneCombinations(lists, corridor, 500)
	for _, list := range pruned {
		// floor(sqrt(500)) = 22 → 上限10にクランプ
		assert.Len(t, list, 10)
	}

	// 上限以内ならそのまま
	small := [][]*model.PlaceCandidate{many[:3], many[:3]}
	assert.Equal(t, small, pruneCombinations(small, corridor, 500))
}

package model

// StopCluster カテゴリごとに1件ずつ候補を選んだ組み合わせ。スコアは小さいほど良い
type StopCluster struct {
	ID                   string            `json:"id"`
	Stops                []*PlaceCandidate `json:"stops"`
	Categories           []string          `json:"categories"`
	Centroid             LatLng            `json:"centroid"`
	RadiusM              float64           `json:"radius_m"`
	MaxPairwiseDistanceM float64           `json:"max_pairwise_distance_m"`
	DistanceFromRouteM   float64           `json:"distance_from_route_m"`
	Score                float64           `json:"score"`
}

// DetourBudget 直行距離に対して許容される追加距離
type DetourBudget struct {
	TotalM     float64 `json:"total_m"`
	UsedM      float64 `json:"used_m"`
	RemainingM float64 `json:"remaining_m"`
}

// NewDetourBudget 残量の不変条件（remaining == max(0, total-used)）を満たすバジェットを生成
func NewDetourBudget(totalM, usedM float64) DetourBudget {
	remaining := totalM - usedM
	if remaining < 0 {
		remaining = 0
	}
	return DetourBudget{
		TotalM:     totalM,
		UsedM:      usedM,
		RemainingM: remaining,
	}
}

// 回り道の距離ベース判定
type DetourStatus string

const (
	DetourStatusNone           DetourStatus = "NO_DETOUR"
	DetourStatusMinimal        DetourStatus = "MINIMAL"
	DetourStatusAcceptable     DetourStatus = "ACCEPTABLE"
	DetourStatusNotRecommended DetourStatus = "NOT_RECOMMENDED"
)

// 回り道の時間ベース区分（音声警告の強さに対応）
type DetourCategory string

const (
	DetourCategoryMinimal     DetourCategory = "MINIMAL"
	DetourCategorySignificant DetourCategory = "SIGNIFICANT"
	DetourCategoryFar         DetourCategory = "FAR"
)

// OptimizedOrder 貪欲法による訪問順の最適化結果。
// Sequence は [origin, ...停車地ID..., destination]
type OptimizedOrder struct {
	Sequence       []string          `json:"sequence"`
	OrderedStops   []*PlaceCandidate `json:"ordered_stops"`
	Legs           []OrderLeg        `json:"legs"`
	TotalDistanceM float64           `json:"total_distance_m"`
}

// OrderLeg 最適化順序における区間（直線距離ベース）
type OrderLeg struct {
	FromID    string  `json:"from_id"`
	ToID      string  `json:"to_id"`
	DistanceM float64 `json:"distance_m"`
}

// EvaluatedCluster 実際の経路検索で評価済みのクラスタ
type EvaluatedCluster struct {
	Cluster      *StopCluster      `json:"cluster"`
	Order        *OptimizedOrder   `json:"order"`
	Directions   *DirectionsResult `json:"directions"`
	ExtraTimeMin float64           `json:"extra_time_min"`
}

package model

// CorridorConfig コリドー抽出の設定
type CorridorConfig struct {
	SamplingIntervalM float64 // サンプリング間隔（メートル）
	MaxPoints         int     // コリドー点の上限（最後の1枠は目的地用に予約）
	MinPoints         int     // 最低点数。下回る場合は弧長で等間隔補間する
}

// DefaultCorridorConfig コリドー抽出のデフォルト設定
func DefaultCorridorConfig() CorridorConfig {
	return CorridorConfig{
		SamplingIntervalM: 2000,
		MaxPoints:         25,
		MinPoints:         3,
	}
}

// CorridorSearchConfig ルート沿いの複数候補検索の設定
type CorridorSearchConfig struct {
	SearchRadiusM            float64 // 各コリドー点での検索半径
	MaxCandidatesPerCategory int     // カテゴリごとの候補上限（K）
	PointSkipFactor          int     // 中間点の間引き係数（>1でNごとに1点）
	SearchLimit              int     // 1回の検索あたりの取得上限
}

// DefaultCorridorSearchConfig ルート沿い検索のデフォルト設定
func DefaultCorridorSearchConfig() CorridorSearchConfig {
	return CorridorSearchConfig{
		SearchRadiusM:            5000,
		MaxCandidatesPerCategory: 5,
		PointSkipFactor:          2,
		SearchLimit:              10,
	}
}

// ClusterConfig クラスタ検出の設定
type ClusterConfig struct {
	TightnessWeight      float64 // 地理的なまとまりの重み
	RouteProximityWeight float64 // コリドー近接度の重み
	MaxClusters          int     // 返却するクラスタの上限
	MaxCombinations      int     // 組み合わせ爆発の上限。超えたらカテゴリごとに候補を刈り込む
}

// DefaultClusterConfig クラスタ検出のデフォルト設定
func DefaultClusterConfig() ClusterConfig {
	return ClusterConfig{
		TightnessWeight:      0.6,
		RouteProximityWeight: 0.4,
		MaxClusters:          3,
		MaxCombinations:      500,
	}
}

// NavigationConfig オーケストレーターの設定
type NavigationConfig struct {
	MaxExtraTimeMin        float64   // 最良案に対して許容する追加時間（分）
	MaxClusterRadiusKm     float64   // クラスタの最大ペア間距離の上限（km）
	MaxRouteOptions        int       // 通常モードでの候補数上限
	MaxParallelEvaluations int       // クラスタ並行評価の同時実行数
	TierRadiiM             []float64 // 段階的検索の半径（狭い順）
	RouteTTLHours          int       // 保存ルートのTTL（時間）
}

// DefaultNavigationConfig オーケストレーターのデフォルト設定
func DefaultNavigationConfig() NavigationConfig {
	return NavigationConfig{
		MaxExtraTimeMin:        10,
		MaxClusterRadiusKm:     5,
		MaxRouteOptions:        3,
		MaxParallelEvaluations: 5,
		TierRadiiM:             []float64{5000, 15000, 40000},
		RouteTTLHours:          2,
	}
}

// 除外理由の定型文（レスポンスの excluded_stops で使用）
const ExcludedReasonNoPlacesOnCorridor = "No places found along route corridor"

// ルートオプションのラベル
const (
	OptionLabelDirect      = "Direct Route"
	OptionLabelRecommended = "Recommended"
)

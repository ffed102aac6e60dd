package model

// DirectionsResult 経路検索プロバイダから返される運転ルート。
// ルートが存在しない場合、プロバイダは (nil, nil) を返す契約
type DirectionsResult struct {
	Polyline         string     `json:"polyline"`
	TotalDistanceM   float64    `json:"total_distance_m"`
	TotalDurationMin float64    `json:"total_duration_min"`
	Legs             []RouteLeg `json:"legs"`
}

// RouteLeg 区間ごとの距離・所要時間
type RouteLeg struct {
	DistanceM     float64 `json:"distance_m"`
	DurationMin   float64 `json:"duration_min"`
	StartLocation LatLng  `json:"start_location"`
	EndLocation   LatLng  `json:"end_location"`
}

// RouteCorridor 直行ルートの道路沿い形状をサンプリングした検索アンカー集合。
// CorridorPoints は必ず origin（距離0）で始まり destination（距離=TotalDistanceM）で終わる。
// リクエストごとに一度だけ生成され、以降は読み取り専用
type RouteCorridor struct {
	Polyline         string          `json:"polyline"`
	DecodedPath      []LatLng        `json:"decoded_path"`
	CorridorPoints   []CorridorPoint `json:"corridor_points"`
	TotalDistanceM   float64         `json:"total_distance_m"`
	TotalDurationMin float64         `json:"total_duration_min"`
	Origin           LatLng          `json:"origin"`
	Destination      LatLng          `json:"destination"`

	// Directions は抽出に使った直行ルートそのもの（直行ルートオプション構築用）
	Directions *DirectionsResult `json:"-"`
}

// Midpoint 総距離の半分に最も近いコリドー点を返す（停車地提案の検索中心に使用）
func (c *RouteCorridor) Midpoint() LatLng {
	if len(c.CorridorPoints) == 0 {
		return c.Origin
	}
	half := c.TotalDistanceM / 2
	best := c.CorridorPoints[0]
	bestDiff := diffAbs(best.DistanceFromOriginM, half)
	for _, p := range c.CorridorPoints[1:] {
		if d := diffAbs(p.DistanceFromOriginM, half); d < bestDiff {
			best = p
			bestDiff = d
		}
	}
	return best.Location
}

func diffAbs(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

// CorridorPoint コリドー上のサンプリング点
type CorridorPoint struct {
	Location            LatLng  `json:"location"`
	DistanceFromOriginM float64 `json:"distance_from_origin_m"`
}

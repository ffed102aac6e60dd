package helper

import (
	"math"
	"sort"

	"VoiceNav-App/internal/domain/model"
)

const earthRadiusM = 6371000.0

// HaversineDistanceM は2地点間の距離を計算する (メートル)
func HaversineDistanceM(p1, p2 model.LatLng) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lng1 := p1.Lng * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	lng2 := p2.Lng * math.Pi / 180
	dLat := lat2 - lat1
	dLng := lng2 - lng1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// DistanceToSegmentM は点から線分への最短距離を計算する (メートル)。
// 射影パラメータ t は緯度経度平面での近似計算（測地線ではない）で、[0,1]にクランプする
func DistanceToSegmentM(p, segStart, segEnd model.LatLng) float64 {
	dLat := segEnd.Lat - segStart.Lat
	dLng := segEnd.Lng - segStart.Lng

	lenSq := dLat*dLat + dLng*dLng
	if lenSq == 0 {
		// 線分が1点に退化している場合
		return HaversineDistanceM(p, segStart)
	}

	t := ((p.Lat-segStart.Lat)*dLat + (p.Lng-segStart.Lng)*dLng) / lenSq
	if t < 0 {
		return HaversineDistanceM(p, segStart)
	}
	if t > 1 {
		return HaversineDistanceM(p, segEnd)
	}

	projected := model.LatLng{
		Lat: segStart.Lat + t*dLat,
		Lng: segStart.Lng + t*dLng,
	}
	return HaversineDistanceM(p, projected)
}

// DistanceToPathM は点から経路（折れ線）への最短距離を計算する (メートル)。
// 空の経路は +Inf を返す
func DistanceToPathM(p model.LatLng, path []model.LatLng) float64 {
	if len(path) == 0 {
		return math.Inf(1)
	}
	if len(path) == 1 {
		return HaversineDistanceM(p, path[0])
	}

	minDist := math.Inf(1)
	for i := 0; i < len(path)-1; i++ {
		if d := DistanceToSegmentM(p, path[i], path[i+1]); d < minDist {
			minDist = d
		}
	}
	return minDist
}

// Centroid は複数地点の重心を計算する
func Centroid(points []model.LatLng) model.LatLng {
	if len(points) == 0 {
		return model.LatLng{}
	}
	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}
	n := float64(len(points))
	return model.LatLng{Lat: sumLat / n, Lng: sumLng / n}
}

// InterpolateAlongPath は経路の先頭から targetDistanceM 進んだ地点を線形補間で求める。
// 経路の総距離を超える場合は終点を返す
func InterpolateAlongPath(path []model.LatLng, targetDistanceM float64) model.LatLng {
	if len(path) == 0 {
		return model.LatLng{}
	}
	if targetDistanceM <= 0 {
		return path[0]
	}

	accumulated := 0.0
	for i := 0; i < len(path)-1; i++ {
		segDist := HaversineDistanceM(path[i], path[i+1])
		if accumulated+segDist >= targetDistanceM && segDist > 0 {
			// この区間内で目標距離に到達する
			ratio := (targetDistanceM - accumulated) / segDist
			return model.LatLng{
				Lat: path[i].Lat + ratio*(path[i+1].Lat-path[i].Lat),
				Lng: path[i].Lng + ratio*(path[i+1].Lng-path[i].Lng),
			}
		}
		accumulated += segDist
	}
	return path[len(path)-1]
}

// PathDistanceM は折れ線の総距離を計算する (メートル)
func PathDistanceM(path []model.LatLng) float64 {
	total := 0.0
	for i := 0; i < len(path)-1; i++ {
		total += HaversineDistanceM(path[i], path[i+1])
	}
	return total
}

// SortPlacesByDistance は基準座標からの距離で候補スライスをソートする
func SortPlacesByDistance(origin model.LatLng, places []*model.PlaceCandidate) {
	sort.Slice(places, func(i, j int) bool {
		distI := HaversineDistanceM(origin, places[i].Location)
		distJ := HaversineDistanceM(origin, places[j].Location)
		return distI < distJ
	})
}

// MaxPairwiseDistanceM は地点集合の中で最も離れたペアの距離を返す (メートル)
func MaxPairwiseDistanceM(points []model.LatLng) float64 {
	maxDist := 0.0
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if d := HaversineDistanceM(points[i], points[j]); d > maxDist {
				maxDist = d
			}
		}
	}
	return maxDist
}

// MetersToMiles メートルをマイルに変換
func MetersToMiles(m float64) float64 {
	return m / 1609.344
}

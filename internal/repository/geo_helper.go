package repository

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"VoiceNav-App/internal/domain/model"
)

// GeometryToLatLng PostGIS POINT（GeoJSON）を model.LatLng に変換。座標が不正なら nil
func GeometryToLatLng(g *model.Geometry) *model.LatLng {
	if g == nil || len(g.Coordinates) < 2 {
		return nil
	}
	point := orb.Point{g.Coordinates[0], g.Coordinates[1]}
	return &model.LatLng{
		Lat: point.Lat(),
		Lng: point.Lon(),
	}
}

// PointWKT 座標を PostGIS の地理関数に渡す WKT 文字列に変換
func PointWKT(p model.LatLng) string {
	return wkt.MarshalString(orb.Point{p.Lng, p.Lat})
}

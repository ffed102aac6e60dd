package helper

import (
	"strings"

	"VoiceNav-App/internal/domain/model"
)

// ポリラインのスケール係数（1単位 = 1e-5度）
const polylinePrecision = 1e5

// DecodePolyline はGoogle形式のエンコード済みポリラインをデコードする。
// 空文字列は空の経路を返す。不正な文字列でもpanicせず、
// 壊れたバイトの直前までのベストエフォート結果を返す
func DecodePolyline(encoded string) []model.LatLng {
	var path []model.LatLng
	index := 0
	lat, lng := 0, 0

	for index < len(encoded) {
		dLat, next, ok := decodeVarint(encoded, index)
		if !ok {
			break
		}
		index = next

		dLng, next, ok := decodeVarint(encoded, index)
		if !ok {
			break
		}
		index = next

		lat += dLat
		lng += dLng
		path = append(path, model.LatLng{
			Lat: float64(lat) / polylinePrecision,
			Lng: float64(lng) / polylinePrecision,
		})
	}
	return path
}

// decodeVarint はジグザグ符号化された差分値を1つ読み取る。
// 文字列が途中で終わっている場合は ok=false を返す
func decodeVarint(encoded string, index int) (value int, next int, ok bool) {
	result := 0
	shift := uint(0)
	for {
		if index >= len(encoded) {
			return 0, index, false
		}
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	// ジグザグ復号
	if result&1 != 0 {
		return ^(result >> 1), index, true
	}
	return result >> 1, index, true
}

// EncodePolyline は座標列をGoogle形式のポリラインにエンコードする
func EncodePolyline(path []model.LatLng) string {
	var sb strings.Builder
	prevLat, prevLng := 0, 0

	for _, p := range path {
		lat := int(round(p.Lat * polylinePrecision))
		lng := int(round(p.Lng * polylinePrecision))
		encodeVarint(&sb, lat-prevLat)
		encodeVarint(&sb, lng-prevLng)
		prevLat, prevLng = lat, lng
	}
	return sb.String()
}

func encodeVarint(sb *strings.Builder, value int) {
	// ジグザグ符号化
	v := value << 1
	if value < 0 {
		v = ^v
	}
	for v >= 0x20 {
		sb.WriteByte(byte((0x20 | (v & 0x1f)) + 63))
		v >>= 5
	}
	sb.WriteByte(byte(v + 63))
}

func round(f float64) float64 {
	if f < 0 {
		return f - 0.5
	}
	return f + 0.5
}

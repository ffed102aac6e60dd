package repository

import (
	"VoiceNav-App/internal/domain/model"
	"context"
)

// PlaceSearchProvider キーワードによる周辺スポット検索のインターフェース。
// 返却順は近接度・評価・人気度のブレンド（重み付けはプロバイダの実装詳細）
type PlaceSearchProvider interface {
	SearchPlaces(ctx context.Context, query string, center model.LatLng, radiusM float64, limit int) ([]*model.PlaceCandidate, error)
}

package service

import (
	"VoiceNav-App/internal/domain/helper"
	"VoiceNav-App/internal/domain/model"
	"VoiceNav-App/internal/domain/repository"
	"context"
	"log"
	"strings"
)

// PlaceResolverService は自由記述の目的地・停車地名をジオコーディング済み候補に解決する
type PlaceResolverService interface {
	// ResolveDestination はアンカー照合 → ジオコーディング → 段階的周辺検索の順に解決を試みる
	ResolveDestination(ctx context.Context, text string, anchors []model.Anchor, hint *model.LatLng) (*model.ResolvedDestination, error)

	// ResolveStops はクエリごとに段階的検索で最寄りの1件を解決する。見つからないクエリは黙って省かれる
	ResolveStops(ctx context.Context, queries []string, location model.LatLng, budgetM float64) ([]model.ResolvedStop, error)

	// ResolveStopsAlongCorridor はコリドー点を検索中心としてカテゴリごとに複数候補を収集する
	ResolveStopsAlongCorridor(ctx context.Context, queries []string, corridor *model.RouteCorridor, cfg model.CorridorSearchConfig) (model.CategoryCandidates, error)
}

type placeResolverService struct {
	geocodingProvider repository.GeocodingProvider
	placesProvider    repository.PlaceSearchProvider
	tierRadiiM        []float64
}

func NewPlaceResolverService(gp repository.GeocodingProvider, pp repository.PlaceSearchProvider) PlaceResolverService {
	return &placeResolverService{
		geocodingProvider: gp,
		placesProvider:    pp,
		tierRadiiM:        model.DefaultNavigationConfig().TierRadiiM,
	}
}

// ResolveDestination はアンカー照合 → ジオコーディング → 段階的周辺検索の順に解決する
func (s *placeResolverService) ResolveDestination(ctx context.Context, text string, anchors []model.Anchor, hint *model.LatLng) (*model.ResolvedDestination, error) {
	// (a) アンカー照合（大文字小文字を無視した完全一致または部分一致）
	if anchor := matchAnchor(text, anchors); anchor != nil {
		return &model.ResolvedDestination{
			Name:     anchor.Name,
			Location: anchor.Location,
			Source:   model.ResolveSourceAnchor,
		}, nil
	}

	// (b) 住所としてジオコーディング
	geocoded, err := s.geocodingProvider.Geocode(ctx, text)
	if err != nil {
		log.Printf("⚠️ ジオコーディング失敗 (%s): %v", text, err)
	}
	if geocoded != nil {
		return &model.ResolvedDestination{
			Name:     text,
			Location: geocoded.Location,
			Source:   model.ResolveSourceGeocode,
		}, nil
	}

	// (c) ヒント位置があれば段階的周辺検索
	if hint != nil {
		results, err := s.tieredSearch(ctx, text, *hint, 10)
		if err != nil {
			return nil, err
		}
		if len(results) > 0 {
			helper.SortPlacesByDistance(*hint, results)
			nearest := results[0]
			return &model.ResolvedDestination{
				Name:     nearest.Name,
				Location: nearest.Location,
				Source:   model.ResolveSourcePlaces,
			}, nil
		}
	}

	return nil, model.NewLocationUnavailableError(text)
}

// ResolveStops はクエリごとに段階的検索で最寄りの1件を解決する。
// 最初の段の半径はバジェットに依存しない。見つからないクエリは結果から省かれ、
// 除外の報告は呼び出し側の責務
func (s *placeResolverService) ResolveStops(ctx context.Context, queries []string, location model.LatLng, budgetM float64) ([]model.ResolvedStop, error) {
	var resolved []model.ResolvedStop
	for _, query := range queries {
		results, err := s.tieredSearch(ctx, query, location, 10)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			log.Printf("⚠️ 停車地「%s」はどの検索半径でも見つかりませんでした", query)
			continue
		}
		helper.SortPlacesByDistance(location, results)
		resolved = append(resolved, model.ResolvedStop{
			Query: query,
			Place: results[0],
		})
	}
	return resolved, nil
}

// ResolveStopsAlongCorridor はコリドー点のサブセットを検索中心として、
// カテゴリごとに上限件数まで候補を収集する。個別の検索エラーは0件として扱い、
// 他のカテゴリ・点の処理を妨げない
func (s *placeResolverService) ResolveStopsAlongCorridor(ctx context.Context, queries []string, corridor *model.RouteCorridor, cfg model.CorridorSearchConfig) (model.CategoryCandidates, error) {
	candidates := make(model.CategoryCandidates, len(queries))
	seen := make(map[string]map[string]struct{}, len(queries))
	for _, q := range queries {
		candidates[q] = nil
		seen[q] = make(map[string]struct{})
	}

	for _, point := range selectSearchPoints(corridor.CorridorPoints, cfg.PointSkipFactor) {
		for _, query := range queries {
			if len(candidates[query]) >= cfg.MaxCandidatesPerCategory {
				continue
			}

			results, err := s.placesProvider.SearchPlaces(ctx, query, point.Location, cfg.SearchRadiusM, cfg.SearchLimit)
			if err != nil {
				// 1回の検索失敗は0件として継続する
				log.Printf("⚠️ コリドー検索失敗 (カテゴリ: %s): %v", query, err)
				continue
			}

			for _, place := range results {
				if len(candidates[query]) >= cfg.MaxCandidatesPerCategory {
					break
				}
				if _, ok := seen[query][place.PlaceID]; ok {
					continue
				}
				seen[query][place.PlaceID] = struct{}{}
				candidates[query] = append(candidates[query], place)
			}
		}
	}

	return candidates, nil
}

// tieredSearch は半径を段階的に広げながら検索し、最初に結果が得られた段で打ち切る。
// 段内のエラーは次の段に進む。全段失敗かつ最後のエラーが再試行可能ならそれを返す
func (s *placeResolverService) tieredSearch(ctx context.Context, query string, center model.LatLng, limit int) ([]*model.PlaceCandidate, error) {
	var lastErr error
	for _, radius := range s.tierRadiiM {
		results, err := s.placesProvider.SearchPlaces(ctx, query, center, radius, limit)
		if err != nil {
			lastErr = err
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}
	if lastErr != nil && model.IsRetryable(lastErr) {
		return nil, lastErr
	}
	return nil, nil
}

// matchAnchor は大文字小文字を無視してアンカー名と照合する（完全一致または相互の部分一致）
func matchAnchor(text string, anchors []model.Anchor) *model.Anchor {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return nil
	}
	for i, anchor := range anchors {
		name := strings.ToLower(anchor.Name)
		if name == lowered || strings.Contains(lowered, name) || strings.Contains(name, lowered) {
			return &anchors[i]
		}
	}
	return nil
}

// selectSearchPoints は検索に使うコリドー点を選ぶ。先頭と末尾は必ず含め、
// 点数が3を超え間引き係数が1より大きい場合は中間点をNごとに1点採用する
func selectSearchPoints(points []model.CorridorPoint, skipFactor int) []model.CorridorPoint {
	if len(points) <= 2 {
		return points
	}

	selected := []model.CorridorPoint{points[0]}
	step := 1
	if len(points) > 3 && skipFactor > 1 {
		step = skipFactor
	}
	for i := 1; i < len(points)-1; i += step {
		selected = append(selected, points[i])
	}
	return append(selected, points[len(points)-1])
}

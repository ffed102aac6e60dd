package repository

import (
	"VoiceNav-App/internal/domain/model"
	"VoiceNav-App/internal/domain/repository"
	"VoiceNav-App/internal/infrastructure/database"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresPlacesRepository PostGISを使用した自前スポットデータベースの検索実装。
// PLACES_BACKEND=postgres のときに外部の場所検索APIの代わりに使われる
type PostgresPlacesRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresPlacesRepository(client *database.PostgreSQLClient) repository.PlaceSearchProvider {
	return &PostgresPlacesRepository{
		client: client,
	}
}

// placeRow PostGIS検索の結果を受け取るための構造体
type placeRow struct {
	ID             string
	Name           string
	Address        sql.NullString
	Location       string
	Categories     string
	Rating         float64
	ReviewCount    int
	DistanceMeters float64
}

// toPlaceCandidate placeRowをmodel.PlaceCandidateに変換
func (row *placeRow) toPlaceCandidate() (*model.PlaceCandidate, error) {
	var location model.Geometry
	if err := json.Unmarshal([]byte(row.Location), &location); err != nil {
		return nil, fmt.Errorf("location JSONBパースエラー: %w", err)
	}
	latLng := GeometryToLatLng(&location)
	if latLng == nil {
		return nil, fmt.Errorf("locationの座標が不正です: %s", row.Location)
	}

	var categories []string
	if err := json.Unmarshal([]byte(row.Categories), &categories); err != nil {
		return nil, fmt.Errorf("categories JSONBパースエラー: %w", err)
	}

	candidate := &model.PlaceCandidate{
		PlaceID:     row.ID,
		Name:        row.Name,
		Location:    *latLng,
		Rating:      row.Rating,
		ReviewCount: row.ReviewCount,
		Types:       categories,
	}
	if row.Address.Valid {
		candidate.Address = row.Address.String
	}
	return candidate, nil
}

// SearchPlaces は中心座標と半径でスポットを検索する。
// クエリは名前の部分一致またはカテゴリ完全一致で照合し、近い順に返す
func (r *PostgresPlacesRepository) SearchPlaces(ctx context.Context, query string, center model.LatLng, radiusM float64, limit int) ([]*model.PlaceCandidate, error) {
	if limit <= 0 {
		limit = 10
	}

	sqlQuery := `
		SELECT
			p.id, p.name, p.address,
			ST_AsGeoJSON(p.location)::jsonb as location,
			p.categories, p.rating, p.review_count,
			ST_Distance(
				ST_GeogFromText($1),
				p.location::geography
			) as distance_meters
		FROM places p
		WHERE ST_DWithin(
			ST_GeogFromText($1),
			p.location::geography,
			$2
		)
		AND (p.name ILIKE '%' || $3 || '%' OR p.categories ? $3)
		ORDER BY distance_meters
		LIMIT $4
	`

	rows, err := r.client.DB.QueryContext(ctx, sqlQuery, PointWKT(center), radiusM, query, limit)
	if err != nil {
		return nil, fmt.Errorf("周辺スポット検索失敗: %w", err)
	}
	defer rows.Close()

	var candidates []*model.PlaceCandidate
	for rows.Next() {
		var row placeRow
		err := rows.Scan(&row.ID, &row.Name, &row.Address, &row.Location,
			&row.Categories, &row.Rating, &row.ReviewCount, &row.DistanceMeters)
		if err != nil {
			return nil, fmt.Errorf("スポットデータスキャンエラー: %w", err)
		}

		candidate, err := row.toPlaceCandidate()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	return candidates, nil
}

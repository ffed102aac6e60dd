package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"VoiceNav-App/internal/domain/model"
	"VoiceNav-App/internal/domain/repository"
	"VoiceNav-App/internal/infrastructure/database"
)

// SupabaseAnchorsRepository デバイスごとの保存済みアンカー（"home"、"work"など）をSupabaseから取得する
type SupabaseAnchorsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseAnchorsRepository(client *database.SupabaseClient) repository.AnchorsRepository {
	return &SupabaseAnchorsRepository{
		client: client,
	}
}

// anchorRow anchorsテーブルの1行
type anchorRow struct {
	Name     string          `json:"name"`
	Address  string          `json:"address"`
	Location *model.Geometry `json:"location"`
}

// GetAnchors は指定デバイスのアンカーをすべて取得する。未登録のデバイスでは空スライスを返す
func (r *SupabaseAnchorsRepository) GetAnchors(ctx context.Context, deviceID string) ([]model.Anchor, error) {
	data, count, err := r.client.GetClient().From("anchors").
		Select("name,address,location", "exact", false).
		Eq("device_id", deviceID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("アンカーの取得失敗: %w", err)
	}
	_ = count

	var rows []anchorRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("アンカーのJSONアンマーシャル失敗: %w", err)
	}

	anchors := make([]model.Anchor, 0, len(rows))
	for _, row := range rows {
		latLng := GeometryToLatLng(row.Location)
		if latLng == nil {
			continue
		}
		anchors = append(anchors, model.Anchor{
			Name:     row.Name,
			Address:  row.Address,
			Location: *latLng,
		})
	}
	return anchors, nil
}

package repository

import (
	"VoiceNav-App/internal/domain/model"
	"VoiceNav-App/internal/domain/repository"
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
)

// FirestoreRouteRepository Firestoreを使用した計画済みルートのTTL付き保存
type FirestoreRouteRepository struct {
	client *firestore.Client
}

// NewFirestoreRouteRepository 新しいFirestoreRouteRepositoryインスタンスを作成
func NewFirestoreRouteRepository(client *firestore.Client) repository.RouteRepository {
	return &FirestoreRouteRepository{
		client: client,
	}
}

// SaveRoute はルートをexpireAtフィールド付きで保存する。
// コレクションのTTLポリシーがexpireAtを参照して期限切れドキュメントを削除する
func (r *FirestoreRouteRepository) SaveRoute(ctx context.Context, route *model.Route, ttlHours int) error {
	firestoreData := route.ToFirestoreRoute(ttlHours)

	_, err := r.client.Collection("routes").Doc(route.ID).Set(ctx, firestoreData)
	if err != nil {
		log.Printf("❌ Failed to save route %s: %v", route.ID, err)
		return fmt.Errorf("ルートの保存に失敗しました: %w", err)
	}

	log.Printf("✅ Route saved: %s (expires in %d hours)", route.ID, ttlHours)
	return nil
}

// GetRoute は指定されたroute_idのルートをFirestoreから取得する
func (r *FirestoreRouteRepository) GetRoute(ctx context.Context, routeID string) (*model.Route, error) {
	doc, err := r.client.Collection("routes").Doc(routeID).Get(ctx)
	if err != nil {
		if status := err.Error(); strings.Contains(status, "NotFound") || strings.Contains(status, "not found") {
			return nil, fmt.Errorf("ルートが見つかりません（有効期限切れまたは無効なID）: %s", routeID)
		}
		return nil, fmt.Errorf("ルートの取得に失敗しました: %w", err)
	}

	var firestoreData model.FirestoreRoute
	if err := doc.DataTo(&firestoreData); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}

	route := firestoreData.ToRoute(routeID)

	log.Printf("✅ Route retrieved: %s", routeID)
	return route, nil
}

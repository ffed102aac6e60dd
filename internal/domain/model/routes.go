package model

import "time"

// Route 組み立て済みの最終ルート。構築後は変更されず、再計画は新しいRouteを生成する
type Route struct {
	ID              string       `json:"id"`
	Origin          LatLng       `json:"origin"`
	Destination     LatLng       `json:"destination"`
	Stops           []RouteStop  `json:"stops"`
	Waypoints       []Waypoint   `json:"waypoints"`
	Legs            []RouteLeg   `json:"legs"`
	TotalDistanceMi float64      `json:"total_distance_mi"`
	TotalTimeMin    float64      `json:"total_time_min"`
	Polyline        string       `json:"polyline"`
	DetourBudget    DetourBudget `json:"detour_budget"`
	CreatedAt       time.Time    `json:"created_at"`
}

// RouteStop ルート上の停車地。MileMarker は Stops 順で厳密に増加する
type RouteStop struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address,omitempty"`
	Location    LatLng       `json:"location"`
	MileMarker  float64      `json:"mile_marker"`
	DetourCostM float64      `json:"detour_cost_m"`
	Status      DetourStatus `json:"status"`
	Order       int          `json:"order"`
}

// Waypoint の種別
const (
	WaypointTypeOrigin      = "origin"
	WaypointTypeStop        = "stop"
	WaypointTypeDestination = "destination"
)

type Waypoint struct {
	Name     string `json:"name"`
	Location LatLng `json:"location"`
	Type     string `json:"type"`
}

// RouteOption ランキング済みルート候補。レスポンス内でちょうど1件が IsRecommended=true となり、
// それは常に routeOptions[0]
type RouteOption struct {
	ID              string      `json:"id"`
	Label           string      `json:"label"`
	IsRecommended   bool        `json:"is_recommended"`
	TotalTimeMin    float64     `json:"total_time_min"`
	TotalDistanceMi float64     `json:"total_distance_mi"`
	ExtraTimeMin    float64     `json:"extra_time_min"`
	ClusterRadiusKm float64     `json:"cluster_radius_km"`
	Stops           []RouteStop `json:"stops"`
	Route           *Route      `json:"route"`
}

// DestinationSpec 目的地の指定。名前のみ、または明示座標付き
type DestinationSpec struct {
	Name     string  `json:"name"`
	Location *LatLng `json:"location,omitempty"`
}

// NavigationRequest オーケストレーターへの計画リクエスト（ドメイン内部表現）
type NavigationRequest struct {
	Origin      LatLng          `json:"origin"`
	Destination DestinationSpec `json:"destination"`
	StopQueries []string        `json:"stop_queries"`
	Anchors     []Anchor        `json:"anchors"`
	VoiceMode   bool            `json:"voice_mode"`
}

// ExcludedStop 候補が見つからず除外されたカテゴリ
type ExcludedStop struct {
	Query  string `json:"query"`
	Reason string `json:"reason"`
}

// NavigationResult 計画リクエストの結果
type NavigationResult struct {
	Route         *Route              `json:"route"`
	RouteOptions  []*RouteOption      `json:"route_options"`
	ExcludedStops []ExcludedStop      `json:"excluded_stops,omitempty"`
	Warnings      []string            `json:"warnings,omitempty"`
	Destination   ResolvedDestination `json:"destination"`
	DirectTimeMin float64             `json:"direct_time_min"`
}

// StopSuggestion ルート沿いの停車地提案
type StopSuggestion struct {
	Query               string          `json:"query"`
	Place               *PlaceCandidate `json:"place"`
	DistanceFromOriginM float64         `json:"distance_from_origin_m"`
}

// StopSuggestionsResult 停車地提案の結果（カテゴリごとの候補数付き）
type StopSuggestionsResult struct {
	Suggestions    []StopSuggestion `json:"suggestions"`
	CategoryCounts map[string]int   `json:"category_counts"`
}

// RecalculateRequest 解決済みの停車地リストを再最適化・再ルーティングするリクエスト
type RecalculateRequest struct {
	Origin      LatLng            `json:"origin"`
	Destination LatLng            `json:"destination"`
	Stops       []*PlaceCandidate `json:"stops"`
}

// --- Firestore 保存用の構造体 ---

// FirestoreRoute TTL付きでFirestoreに保存するルート
type FirestoreRoute struct {
	Origin          LatLng          `firestore:"origin"`
	Destination     LatLng          `firestore:"destination"`
	Stops           []FirestoreStop `firestore:"stops"`
	TotalDistanceMi float64         `firestore:"total_distance_mi"`
	TotalTimeMin    float64         `firestore:"total_time_min"`
	Polyline        string          `firestore:"polyline"`
	DetourBudget    DetourBudget    `firestore:"detour_budget"`
	CreatedAt       time.Time       `firestore:"created_at"`
	ExpireAt        time.Time       `firestore:"expireAt"`
}

type FirestoreStop struct {
	ID          string  `firestore:"id"`
	Name        string  `firestore:"name"`
	Address     string  `firestore:"address"`
	Lat         float64 `firestore:"lat"`
	Lng         float64 `firestore:"lng"`
	MileMarker  float64 `firestore:"mile_marker"`
	DetourCostM float64 `firestore:"detour_cost_m"`
	Status      string  `firestore:"status"`
	Order       int     `firestore:"order"`
}

// ToFirestoreRoute Route をFirestore保存用に変換
func (r *Route) ToFirestoreRoute(ttlHours int) *FirestoreRoute {
	stops := make([]FirestoreStop, len(r.Stops))
	for i, s := range r.Stops {
		stops[i] = FirestoreStop{
			ID:          s.ID,
			Name:        s.Name,
			Address:     s.Address,
			Lat:         s.Location.Lat,
			Lng:         s.Location.Lng,
			MileMarker:  s.MileMarker,
			DetourCostM: s.DetourCostM,
			Status:      string(s.Status),
			Order:       s.Order,
		}
	}
	return &FirestoreRoute{
		Origin:          r.Origin,
		Destination:     r.Destination,
		Stops:           stops,
		TotalDistanceMi: r.TotalDistanceMi,
		TotalTimeMin:    r.TotalTimeMin,
		Polyline:        r.Polyline,
		DetourBudget:    r.DetourBudget,
		CreatedAt:       r.CreatedAt,
		ExpireAt:        time.Now().Add(time.Duration(ttlHours) * time.Hour),
	}
}

// ToRoute FirestoreRoute を Route に復元
func (fr *FirestoreRoute) ToRoute(routeID string) *Route {
	stops := make([]RouteStop, len(fr.Stops))
	for i, s := range fr.Stops {
		stops[i] = RouteStop{
			ID:          s.ID,
			Name:        s.Name,
			Address:     s.Address,
			Location:    LatLng{Lat: s.Lat, Lng: s.Lng},
			MileMarker:  s.MileMarker,
			DetourCostM: s.DetourCostM,
			Status:      DetourStatus(s.Status),
			Order:       s.Order,
		}
	}
	return &Route{
		ID:              routeID,
		Origin:          fr.Origin,
		Destination:     fr.Destination,
		Stops:           stops,
		TotalDistanceMi: fr.TotalDistanceMi,
		TotalTimeMin:    fr.TotalTimeMin,
		Polyline:        fr.Polyline,
		DetourBudget:    fr.DetourBudget,
		CreatedAt:       fr.CreatedAt,
	}
}

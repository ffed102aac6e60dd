package model

// PlaceCandidate 場所検索で得られた候補スポット。生成後は変更しない
type PlaceCandidate struct {
	PlaceID     string   `json:"place_id"`
	Name        string   `json:"name"`
	Address     string   `json:"address,omitempty"`
	Location    LatLng   `json:"location"`
	Rating      float64  `json:"rating,omitempty"`
	ReviewCount int      `json:"review_count,omitempty"`
	Types       []string `json:"types,omitempty"`
	IsOpen      *bool    `json:"is_open,omitempty"`
}

// CategoryCandidates カテゴリ（検索クエリ文字列）ごとの候補リスト。placeIDで重複排除済み
type CategoryCandidates map[string][]*PlaceCandidate

// Anchor ユーザーが名前を付けて保存した場所（"home"、"work"など）
type Anchor struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Location LatLng `json:"location"`
}

// 目的地解決のソース種別
const (
	ResolveSourceAnchor   = "anchor"
	ResolveSourceGeocode  = "geocode"
	ResolveSourcePlaces   = "places"
	ResolveSourceExplicit = "explicit"
)

// ResolvedDestination 目的地解決の結果
type ResolvedDestination struct {
	Name     string `json:"name"`
	Location LatLng `json:"location"`
	Source   string `json:"source"`
}

// ResolvedStop クエリごとの最寄り解決結果
type ResolvedStop struct {
	Query string          `json:"query"`
	Place *PlaceCandidate `json:"place"`
}

// GeocodeResult ジオコーディングの結果
type GeocodeResult struct {
	Address  string `json:"address"`
	Location LatLng `json:"location"`
}

package handler

import (
	"VoiceNav-App/internal/domain/model"
	"VoiceNav-App/internal/usecase"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// NavigationHandler は停車地付きルート計画APIのハンドラー
type NavigationHandler struct {
	navigationUseCase usecase.NavigationUseCase
}

// NewNavigationHandler は新しいNavigationHandlerインスタンスを作成
func NewNavigationHandler(navigationUseCase usecase.NavigationUseCase) *NavigationHandler {
	return &NavigationHandler{
		navigationUseCase: navigationUseCase,
	}
}

// planRouteRequest POST /navigation/routes のリクエストボディ
type planRouteRequest struct {
	Origin      *model.LatLng         `json:"origin"`
	Destination *planRouteDestination `json:"destination"`
	Stops       []string              `json:"stops"`
	VoiceMode   bool                  `json:"voice_mode"`
	DeviceID    string                `json:"device_id"`
}

type planRouteDestination struct {
	Name     string        `json:"name"`
	Location *model.LatLng `json:"location,omitempty"`
}

// PostRoute はルート計画を実行するエンドポイント
// POST /navigation/routes
func (h *NavigationHandler) PostRoute(c *gin.Context) {
	var req planRouteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"code":    model.ErrCodeInvalidRequest,
			"details": err.Error(),
		})
		return
	}

	if err := h.validatePlanRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"code":    model.ErrCodeInvalidRequest,
			"details": err.Error(),
		})
		return
	}

	navReq := &model.NavigationRequest{
		Origin: *req.Origin,
		Destination: model.DestinationSpec{
			Name:     req.Destination.Name,
			Location: req.Destination.Location,
		},
		StopQueries: req.Stops,
		VoiceMode:   req.VoiceMode,
	}

	result, err := h.navigationUseCase.PlanRoute(c.Request.Context(), navReq, req.DeviceID)
	if err != nil {
		respondNavError(c, err, "ルート計画に失敗しました")
		return
	}

	c.JSON(http.StatusOK, result)
}

// validatePlanRequest はリクエストの詳細バリデーションを行う
func (h *NavigationHandler) validatePlanRequest(req *planRouteRequest) error {
	if req.Origin == nil {
		return &ValidationError{Field: "origin", Message: "出発地点は必須です"}
	}
	if err := validateLatLng("origin", req.Origin); err != nil {
		return err
	}

	if req.Destination == nil {
		return &ValidationError{Field: "destination", Message: "目的地は必須です"}
	}
	if req.Destination.Name == "" && req.Destination.Location == nil {
		return &ValidationError{Field: "destination", Message: "目的地の名前または座標を指定してください"}
	}
	if req.Destination.Location != nil {
		if err := validateLatLng("destination.location", req.Destination.Location); err != nil {
			return err
		}
	}

	for _, stop := range req.Stops {
		if strings.TrimSpace(stop) == "" {
			return &ValidationError{Field: "stops", Message: "空の停車地クエリは指定できません"}
		}
	}

	return nil
}

// GetRoute は保存済みルートを取得するエンドポイント
// GET /navigation/routes/:id
func (h *NavigationHandler) GetRoute(c *gin.Context) {
	routeID := c.Param("id")
	if routeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "route_idが指定されていません",
			"code":  model.ErrCodeInvalidRequest,
		})
		return
	}

	route, err := h.navigationUseCase.GetRoute(c.Request.Context(), routeID)
	if err != nil {
		// エラーメッセージから404か500かを判定
		if strings.Contains(err.Error(), "見つかりません") || strings.Contains(err.Error(), "有効期限切れ") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "ルートが見つかりません",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "ルートの取得に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, route)
}

// suggestStopsRequest POST /navigation/suggestions のリクエストボディ
type suggestStopsRequest struct {
	Origin         *model.LatLng `json:"origin"`
	Destination    *model.LatLng `json:"destination"`
	Categories     []string      `json:"categories"`
	MaxSuggestions int           `json:"max_suggestions"`
}

// PostSuggestions はルート沿いの停車地候補を提案するエンドポイント
// POST /navigation/suggestions
func (h *NavigationHandler) PostSuggestions(c *gin.Context) {
	var req suggestStopsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"code":    model.ErrCodeInvalidRequest,
			"details": err.Error(),
		})
		return
	}

	if err := validateOriginDestination(req.Origin, req.Destination); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"code":    model.ErrCodeInvalidRequest,
			"details": err.Error(),
		})
		return
	}
	if len(req.Categories) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"code":    model.ErrCodeInvalidRequest,
			"details": "categoriesを1件以上指定してください",
		})
		return
	}

	result, err := h.navigationUseCase.SuggestStops(c.Request.Context(), *req.Origin, *req.Destination, req.Categories, req.MaxSuggestions)
	if err != nil {
		respondNavError(c, err, "停車地の提案に失敗しました")
		return
	}

	c.JSON(http.StatusOK, result)
}

// previewRequest POST /navigation/preview のリクエストボディ
type previewRequest struct {
	Origin      *model.LatLng `json:"origin"`
	Destination *model.LatLng `json:"destination"`
}

// PostPreview は直行ルートのプレビューを返すエンドポイント
// POST /navigation/preview
func (h *NavigationHandler) PostPreview(c *gin.Context) {
	var req previewRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"code":    model.ErrCodeInvalidRequest,
			"details": err.Error(),
		})
		return
	}

	if err := validateOriginDestination(req.Origin, req.Destination); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"code":    model.ErrCodeInvalidRequest,
			"details": err.Error(),
		})
		return
	}

	route, err := h.navigationUseCase.PreviewRoute(c.Request.Context(), *req.Origin, *req.Destination)
	if err != nil {
		respondNavError(c, err, "ルートプレビューに失敗しました")
		return
	}

	c.JSON(http.StatusOK, route)
}

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func validateLatLng(field string, p *model.LatLng) error {
	if p.Lat < -90 || p.Lat > 90 {
		return &ValidationError{Field: field + ".lat", Message: "緯度は-90から90の範囲で指定してください"}
	}
	if p.Lng < -180 || p.Lng > 180 {
		return &ValidationError{Field: field + ".lng", Message: "経度は-180から180の範囲で指定してください"}
	}
	return nil
}

func validateOriginDestination(origin, destination *model.LatLng) error {
	if origin == nil {
		return &ValidationError{Field: "origin", Message: "出発地点は必須です"}
	}
	if err := validateLatLng("origin", origin); err != nil {
		return err
	}
	if destination == nil {
		return &ValidationError{Field: "destination", Message: "目的地は必須です"}
	}
	return validateLatLng("destination", destination)
}

// respondNavError はドメインエラーの機械可読コードをHTTPステータスに対応付ける
func respondNavError(c *gin.Context, err error, fallbackMessage string) {
	var navErr *model.NavError
	if errors.As(err, &navErr) {
		status := http.StatusInternalServerError
		switch navErr.Code {
		case model.ErrCodeInvalidRequest:
			status = http.StatusBadRequest
		case model.ErrCodeLocationUnavailable, model.ErrCodeRouteNotFound:
			status = http.StatusNotFound
		case model.ErrCodeQuotaExceeded:
			status = http.StatusTooManyRequests
		case model.ErrCodeProviderUnavailable:
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"error":       navErr.Message,
			"code":        navErr.Code,
			"suggestions": navErr.Suggestions,
			"retryable":   navErr.Retryable,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   fallbackMessage,
		"details": err.Error(),
	})
}

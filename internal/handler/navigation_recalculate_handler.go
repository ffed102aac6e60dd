package handler

import (
	"VoiceNav-App/internal/domain/model"
	"VoiceNav-App/internal/usecase"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// NavigationRecalculateHandler はルート再計画APIのハンドラー
type NavigationRecalculateHandler struct {
	recalculateUseCase usecase.RouteRecalculateUseCase
}

// NewNavigationRecalculateHandler は新しいNavigationRecalculateHandlerインスタンスを作成
func NewNavigationRecalculateHandler(recalculateUseCase usecase.RouteRecalculateUseCase) *NavigationRecalculateHandler {
	return &NavigationRecalculateHandler{
		recalculateUseCase: recalculateUseCase,
	}
}

// recalculateRequest POST /navigation/routes/:id/recalculate のリクエストボディ
type recalculateRequest struct {
	CurrentLocation *model.LatLng `json:"current_location,omitempty"`
}

// PostRecalculate は保存済みルートを現在地から再計画するエンドポイント
// POST /navigation/routes/:id/recalculate
func (h *NavigationRecalculateHandler) PostRecalculate(c *gin.Context) {
	routeID := c.Param("id")
	if routeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "route_idが指定されていません",
			"code":  model.ErrCodeInvalidRequest,
		})
		return
	}

	var req recalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"code":    model.ErrCodeInvalidRequest,
			"details": err.Error(),
		})
		return
	}

	if req.CurrentLocation != nil {
		if err := validateLatLng("current_location", req.CurrentLocation); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "バリデーションエラー",
				"code":    model.ErrCodeInvalidRequest,
				"details": err.Error(),
			})
			return
		}
	}

	result, err := h.recalculateUseCase.RecalculateRoute(c.Request.Context(), routeID, req.CurrentLocation)
	if err != nil {
		if strings.Contains(err.Error(), "見つかりません") || strings.Contains(err.Error(), "有効期限切れ") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "ルートが見つかりません",
				"details": err.Error(),
			})
			return
		}
		respondNavError(c, err, "ルート再計画に失敗しました")
		return
	}

	c.JSON(http.StatusOK, result)
}

package service

import (
	"VoiceNav-App/internal/domain/model"
	"fmt"
	"math"
)

// 回り道バッファの距離階層（メートル）
const (
	bufferTierShortM  = 3219.0  // 約2マイル
	bufferTierMediumM = 16093.0 // 約10マイル
	bufferMinM        = 400.0
	bufferMaxM        = 1600.0
)

// CalculateBuffer は直行距離から許容回り道距離を計算する。
// 短距離10%・中距離7%・長距離5%をかけて [400m, 1600m] にクランプする
func CalculateBuffer(directDistanceM float64) float64 {
	var rate float64
	switch {
	case directDistanceM <= bufferTierShortM:
		rate = 0.10
	case directDistanceM <= bufferTierMediumM:
		rate = 0.07
	default:
		rate = 0.05
	}

	buffer := directDistanceM * rate
	if buffer < bufferMinM {
		return bufferMinM
	}
	if buffer > bufferMaxM {
		return bufferMaxM
	}
	return buffer
}

// GetDetourStatus は追加距離をバッファに対して分類する
func GetDetourStatus(extraDistanceM, bufferM float64) model.DetourStatus {
	if extraDistanceM <= 50 {
		return model.DetourStatusNone
	}
	if bufferM <= 0 {
		return model.DetourStatusNotRecommended
	}

	ratio := extraDistanceM / bufferM
	switch {
	case ratio <= 0.25:
		return model.DetourStatusMinimal
	case ratio <= 0.75:
		return model.DetourStatusAcceptable
	default:
		return model.DetourStatusNotRecommended
	}
}

// CategorizeDetour は追加時間（分）を音声警告レベルに区分し、警告メッセージを返す。
// MINIMAL の場合メッセージは空
func CategorizeDetour(extraMinutes float64) (model.DetourCategory, string) {
	rounded := int(math.Round(extraMinutes))
	switch {
	case extraMinutes <= 5:
		return model.DetourCategoryMinimal, ""
	case extraMinutes <= 10:
		return model.DetourCategorySignificant, fmt.Sprintf("約%d分の回り道になります", rounded)
	default:
		return model.DetourCategoryFar, fmt.Sprintf("約%d分の大きな回り道になります。このまま進めてよいか確認してください", rounded)
	}
}

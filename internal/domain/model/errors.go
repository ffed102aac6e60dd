package model

import "errors"

// エラーコード（機械可読）
const (
	ErrCodeLocationUnavailable = "LOCATION_UNAVAILABLE"
	ErrCodeRouteNotFound       = "ROUTE_NOT_FOUND"
	ErrCodeQuotaExceeded       = "QUOTA_EXCEEDED"
	ErrCodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	ErrCodeInvalidRequest      = "INVALID_REQUEST"
)

// NavError ユーザー向けエラー。機械可読コード・メッセージ・対処案を持つ
type NavError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	Retryable   bool     `json:"retryable"`
	Err         error    `json:"-"`
}

func (e *NavError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *NavError) Unwrap() error {
	return e.Err
}

// NewLocationUnavailableError 目的地・停車地がどの手段でも解決できなかった
func NewLocationUnavailableError(query string) *NavError {
	return &NavError{
		Code:    ErrCodeLocationUnavailable,
		Message: "「" + query + "」に該当する場所が見つかりませんでした",
		Suggestions: []string{
			"別の名前や住所で指定してください",
			"近くの地名を含めて指定してください",
		},
		Retryable: false,
	}
}

// NewRouteNotFoundError 出発地から目的地までの運転ルートが存在しない
func NewRouteNotFoundError(err error) *NavError {
	return &NavError{
		Code:      ErrCodeRouteNotFound,
		Message:   "出発地から目的地までの運転ルートが見つかりませんでした",
		Retryable: false,
		Err:       err,
	}
}

// NewQuotaExceededError 上流APIのクォータ超過（バックオフ後に再試行可能）
func NewQuotaExceededError(err error) *NavError {
	return &NavError{
		Code:    ErrCodeQuotaExceeded,
		Message: "経路検索APIの利用上限に達しました",
		Suggestions: []string{
			"しばらく待ってから再試行してください",
		},
		Retryable: true,
		Err:       err,
	}
}

// NewProviderUnavailableError 上流APIの設定不備・認証エラー
func NewProviderUnavailableError(err error) *NavError {
	return &NavError{
		Code:    ErrCodeProviderUnavailable,
		Message: "経路検索サービスに接続できません",
		Suggestions: []string{
			"APIキーの設定を確認してください",
		},
		Retryable: false,
		Err:       err,
	}
}

// IsRetryable エラーが再試行可能かどうかを判定
func IsRetryable(err error) bool {
	var navErr *NavError
	if errors.As(err, &navErr) {
		return navErr.Retryable
	}
	return false
}

// ErrorCode エラーから機械可読コードを取り出す。NavError以外は空文字列
func ErrorCode(err error) string {
	var navErr *NavError
	if errors.As(err, &navErr) {
		return navErr.Code
	}
	return ""
}

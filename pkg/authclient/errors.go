package authclient

import "fmt"

// AuthError は資格情報の欠如・期限切れ・サーバーによる拒否を表します。
// Client が1回だけ透過的に再試行した後もなお認証に失敗した場合に返ります。
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authclient: %s: %v", e.Message, e.Err)
	}
	return "authclient: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// ProtocolError は認証以外の非 2xx 応答、または再試行後もなお JSON として
// 解釈できない応答を表します。サーバーがエラーメッセージを返していれば
// Message に入り、無ければ "HTTP <status> error" の形式になります。
type ProtocolError struct {
	StatusCode int
	Message    string
}

func (e *ProtocolError) Error() string {
	if e.Message != "" {
		return "authclient: " + e.Message
	}
	return fmt.Sprintf("authclient: HTTP %d error", e.StatusCode)
}

// NetworkError は応答が得られなかった転送層の失敗です。
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("authclient: リクエスト送信に失敗しました: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

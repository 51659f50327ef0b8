package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Client は資格情報付きのリクエストを発行する認証クライアントです。
// 2xx 応答のボディを JSON として呼び出し側の構造体へ復号します。
// 401 または成功応答のパース失敗を検知すると、キャッシュ済み資格情報を
// 破棄して論理リクエストごとにちょうど1回だけ再試行します。
type Client struct {
	httpClient Doer
	provider   CredentialProvider
}

// NewClient は依存関係を注入して Client を初期化します。
func NewClient(httpClient Doer, provider CredentialProvider) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	return &Client{httpClient: httpClient, provider: provider}, nil
}

// errorEnvelope は非 2xx 応答に乗ってくることがあるサーバー側メッセージです。
type errorEnvelope struct {
	Error string `json:"error"`
}

// Request は認証付きリクエストを1回発行します。out が非 nil なら応答
// ボディを JSON として復号して書き込みます。空ボディの 2xx は out に
// 触れずに成功として扱います。
func (c *Client) Request(ctx context.Context, method, url string, body any, out any) error {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete:
	default:
		return fmt.Errorf("unsupported request method: %s", method)
	}

	return c.do(ctx, method, url, body, out, false)
}

func (c *Client) do(ctx context.Context, method, url string, body any, out any, retried bool) error {
	credential, err := c.provider.Acquire(ctx)
	if err != nil {
		return &AuthError{Message: "資格情報を取得できませんでした", Err: err}
	}

	req, err := c.buildRequest(ctx, method, url, body)
	if err != nil {
		return err
	}
	c.provider.Attach(req, credential)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			// 成功ステータスなのに壊れたボディが返るのは、期限切れ
			// セッションがエラーページへ差し替えられたケースと
			// 区別が付かないため、認証失敗と同じ扱いで再試行する
			if !retried {
				slog.WarnContext(ctx, "応答のパースに失敗したため資格情報を取り直します", "url", url, "error", err)
				c.provider.Invalidate()
				return c.do(ctx, method, url, body, out, true)
			}
			return &ProtocolError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("応答を JSON として解釈できませんでした: %v", err)}
		}
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if !retried {
			slog.WarnContext(ctx, "401 を受信したため資格情報を取り直して再試行します", "url", url)
			c.provider.Invalidate()
			return c.do(ctx, method, url, body, out, true)
		}
		return &AuthError{Message: "再試行後も認証が拒否されました"}
	}

	var envelope errorEnvelope
	_ = json.Unmarshal(data, &envelope)
	return &ProtocolError{StatusCode: resp.StatusCode, Message: envelope.Error}
}

func (c *Client) buildRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var reader io.Reader
	hasBody := method != http.MethodGet && body != nil
	if hasBody {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("リクエストボディのシリアライズに失敗しました: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("リクエストの生成に失敗しました: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expirySafetyBuffer は有効期限ギリギリのトークンを使い始めて途中で
// 失効する事故を避けるための安全マージンです。
const expirySafetyBuffer = 60 * time.Second

// tokenResponse はトークン発行エンドポイントの応答です。
type tokenResponse struct {
	Token  string `json:"token"`
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

// BearerProvider はベアラートークン方式の CredentialProvider です。
// トークンは発行エンドポイントから取得し、JWT の exp クレームから読んだ
// 有効期限と一緒にメモリ上（セッション相当）へキャッシュします。
// 期限まで 60 秒を切ったトークンは無効とみなして取り直します。
type BearerProvider struct {
	httpClient Doer
	tokenURL   string
	now        func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewBearerProvider は BearerProvider を初期化します。
func NewBearerProvider(httpClient Doer, tokenURL string) (*BearerProvider, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if tokenURL == "" {
		return nil, fmt.Errorf("tokenURL is required")
	}
	return &BearerProvider{
		httpClient: httpClient,
		tokenURL:   tokenURL,
		now:        time.Now,
	}, nil
}

// Acquire はキャッシュ済みトークンがまだ安全に使える場合はそれを返し、
// そうでなければ発行エンドポイントから新規に取得します。
func (p *BearerProvider) Acquire(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.expiresAt.Add(-expirySafetyBuffer).After(p.now()) {
		return p.token, nil
	}

	token, expiresAt, err := p.issueToken(ctx)
	if err != nil {
		return "", err
	}

	p.token = token
	p.expiresAt = expiresAt
	return token, nil
}

// Invalidate はキャッシュを破棄し、次回 Acquire で必ず再取得させます。
func (p *BearerProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	p.expiresAt = time.Time{}
}

// Attach はトークンを Authorization ヘッダーへ付与します。
func (p *BearerProvider) Attach(req *http.Request, credential string) {
	req.Header.Set("Authorization", "Bearer "+credential)
}

func (p *BearerProvider) issueToken(ctx context.Context) (string, time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, nil)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("トークンリクエストの生成に失敗しました: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("トークンエンドポイントへの接続に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("トークン応答の読み取りに失敗しました: %w", err)
	}

	var parsed tokenResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", time.Time{}, fmt.Errorf("トークン応答を解釈できませんでした: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || parsed.Token == "" {
		if len(parsed.Errors) > 0 && parsed.Errors[0].Detail != "" {
			return "", time.Time{}, fmt.Errorf("トークン発行が拒否されました: %s", parsed.Errors[0].Detail)
		}
		return "", time.Time{}, fmt.Errorf("トークン発行に失敗しました (HTTP %d)", resp.StatusCode)
	}

	expiresAt, err := tokenExpiry(parsed.Token)
	if err != nil {
		return "", time.Time{}, err
	}

	return parsed.Token, expiresAt, nil
}

// tokenExpiry は JWT の exp クレームを検証なしで読み取ります。
// 署名検証はサーバー側の責務であり、クライアントは更新タイミングを
// 知るために期限だけを必要とします。
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("トークンのデコードに失敗しました: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("トークンに exp クレームがありません")
	}
	return exp.Time, nil
}

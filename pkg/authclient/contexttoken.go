package authclient

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// ContextTokenHeader はストア API がコンテキストトークンを運ぶヘッダー名です。
const ContextTokenHeader = "sw-context-token"

// ContextTokenCookie はトークンを永続化するクッキー名です。
const ContextTokenCookie = "sw-context-token"

// accessKeyHeader は販売チャネルのアクセスキーを渡すヘッダー名です。
const accessKeyHeader = "sw-access-key"

// ContextTokenProvider はクッキー方式の CredentialProvider です。
// トークンはコンテキスト確立エンドポイントの応答ヘッダーで発行され、
// 明示的な有効期限を持たずサーバー側で管理されます。取得したトークンは
// 注入された CookieStore へ Path=/ / SameSite=Lax（HTTPS ページでは
// Secure 付き）で書き戻し、モーダルの開閉をまたいで再利用します。
type ContextTokenProvider struct {
	httpClient Doer
	contextURL string
	accessKey  string
	cookies    CookieStore
	secure     bool

	mu     sync.Mutex
	cached string
}

// NewContextTokenProvider は ContextTokenProvider を初期化します。
// secure はページが HTTPS で配信されているかを示し、書き戻すクッキーの
// Secure 属性に反映されます。
func NewContextTokenProvider(httpClient Doer, contextURL, accessKey string, cookies CookieStore, secure bool) (*ContextTokenProvider, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if contextURL == "" {
		return nil, fmt.Errorf("contextURL is required")
	}
	if cookies == nil {
		return nil, fmt.Errorf("cookies is required")
	}
	return &ContextTokenProvider{
		httpClient: httpClient,
		contextURL: contextURL,
		accessKey:  accessKey,
		cookies:    cookies,
		secure:     secure,
	}, nil
}

// Acquire はメモリキャッシュ → クッキー → コンテキスト確立呼び出しの順で
// トークンを解決します。
func (p *ContextTokenProvider) Acquire(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached, nil
	}

	if value, ok := p.cookies.Get(ContextTokenCookie); ok && value != "" {
		p.cached = value
		return value, nil
	}

	token, err := p.establishContext(ctx)
	if err != nil {
		return "", err
	}

	p.persist(token)
	p.cached = token
	return token, nil
}

// Invalidate はメモリキャッシュとクッキーの両方を破棄します。
func (p *ContextTokenProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached = ""
	p.cookies.Set(&http.Cookie{
		Name:   ContextTokenCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// Attach はトークンをコンテキストトークンヘッダーへ付与します。
func (p *ContextTokenProvider) Attach(req *http.Request, credential string) {
	req.Header.Set(ContextTokenHeader, credential)
}

func (p *ContextTokenProvider) establishContext(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.contextURL, nil)
	if err != nil {
		return "", fmt.Errorf("コンテキストリクエストの生成に失敗しました: %w", err)
	}
	if p.accessKey != "" {
		req.Header.Set(accessKeyHeader, p.accessKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("コンテキスト確立の呼び出しに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	token := resp.Header.Get(ContextTokenHeader)
	if token == "" {
		return "", fmt.Errorf("コンテキストトークンが発行されませんでした (HTTP %d)", resp.StatusCode)
	}
	return token, nil
}

func (p *ContextTokenProvider) persist(token string) {
	p.cookies.Set(&http.Cookie{
		Name:     ContextTokenCookie,
		Value:    token,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		Secure:   p.secure,
	})
}

// MemoryCookieStore はテストやブラウザ外での埋め込み向けの CookieStore です。
type MemoryCookieStore struct {
	mu      sync.Mutex
	cookies map[string]string
}

// NewMemoryCookieStore は空の MemoryCookieStore を返します。
func NewMemoryCookieStore() *MemoryCookieStore {
	return &MemoryCookieStore{cookies: make(map[string]string)}
}

// Get は保存済みクッキーの値を返します。
func (s *MemoryCookieStore) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.cookies[name]
	return value, ok
}

// Set はクッキーを保存します。MaxAge が負なら削除として扱います。
func (s *MemoryCookieStore) Set(cookie *http.Cookie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cookie.MaxAge < 0 {
		delete(s.cookies, cookie.Name)
		return
	}
	s.cookies[cookie.Name] = cookie.Value
}

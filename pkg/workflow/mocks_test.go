package workflow

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/shouni/scene-preview-kit/pkg/session"
)

// mockView は StatusView のテスト用モックなのだ。呼び出しの足跡を全部残す。
type mockView struct {
	mu sync.Mutex

	loadingVisible bool
	orbVisible     bool
	orbX, orbY     float64
	errorVisible   bool
	lastError      string
	sceneURI       string
	sceneReset     bool
	quota          *session.QuotaDisplay
	debugVisible   bool
	loadingLog     []string
}

func (v *mockView) ShowLoading() { v.mu.Lock(); defer v.mu.Unlock(); v.loadingVisible = true }
func (v *mockView) HideLoading() { v.mu.Lock(); defer v.mu.Unlock(); v.loadingVisible = false }

func (v *mockView) SetLoadingMessage(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loadingLog = append(v.loadingLog, message)
}

func (v *mockView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errorVisible = true
	v.lastError = message
}

func (v *mockView) HideError() { v.mu.Lock(); defer v.mu.Unlock(); v.errorVisible = false }

func (v *mockView) SetSceneImage(dataURI string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sceneURI = dataURI
}

func (v *mockView) ResetSceneImage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sceneURI = ""
	v.sceneReset = true
}

func (v *mockView) ShowPlacementOrb(xPx, yPx float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.orbVisible = true
	v.orbX, v.orbY = xPx, yPx
}

func (v *mockView) HidePlacementOrb() { v.mu.Lock(); defer v.mu.Unlock(); v.orbVisible = false }

func (v *mockView) UpdateQuota(display session.QuotaDisplay) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.quota = &display
}

func (v *mockView) SetDebugVisible(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.debugVisible = visible
}

// mockClient は RequestClient のテスト用モックなのだ。
type mockClient struct {
	requestFunc func(ctx context.Context, method, url string, body any, out any) error
	calls       int
	lastMethod  string
	lastURL     string
	lastBody    any
}

func (m *mockClient) Request(ctx context.Context, method, url string, body any, out any) error {
	m.calls++
	m.lastMethod = method
	m.lastURL = url
	m.lastBody = body
	if m.requestFunc != nil {
		return m.requestFunc(ctx, method, url, body, out)
	}
	return nil
}

// mockHTTPClient は httpkit.ClientInterface を実装します。
type mockHTTPClient struct {
	data []byte
	err  error
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	return m.data, m.err
}

// インターフェースを満たすための空実装群なのだ
func (m *mockHTTPClient) DoRequest(req *http.Request) ([]byte, error) { return nil, nil }

func (m *mockHTTPClient) FetchAndDecodeJSON(ctx context.Context, url string, v any) error {
	return nil
}

func (m *mockHTTPClient) PostJSONAndFetchBytes(ctx context.Context, url string, data any) ([]byte, error) {
	return nil, nil
}

func (m *mockHTTPClient) PostRawBodyAndFetchBytes(ctx context.Context, url string, body []byte, contentType string) ([]byte, error) {
	return nil, nil
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) { return nil, nil }

func (m *mockHTTPClient) IsSafeURL(urlStr string) (bool, error) { return true, nil }

func (m *mockHTTPClient) IsSecureServiceURL(serviceURL string) bool { return true }

// mockReader は remoteio.InputReader のテスト用モックなのだ。
type mockReader struct {
	data []byte
	err  error
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	return nil
}

// mockCache は ImageCacher インターフェースを実装するのだ。
type mockCache struct {
	data map[string]any
}

func (m *mockCache) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockCache) Set(key string, value any, d time.Duration) {
	if m.data == nil {
		m.data = make(map[string]any)
	}
	m.data[key] = value
}

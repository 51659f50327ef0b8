package authclient

import (
	"context"
	"net/http"
)

// mockDoer は Doer のテスト用モックなのだ。
type mockDoer struct {
	doFunc func(req *http.Request) (*http.Response, error)
	calls  int
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	m.calls++
	return m.doFunc(req)
}

// mockProvider は CredentialProvider のテスト用モックなのだ。
// Invalidate の呼び出し回数を数えて再試行の境界を検証する。
type mockProvider struct {
	credential  string
	acquireErr  error
	acquired    int
	invalidated int
}

func (m *mockProvider) Acquire(ctx context.Context) (string, error) {
	m.acquired++
	if m.acquireErr != nil {
		return "", m.acquireErr
	}
	return m.credential, nil
}

func (m *mockProvider) Invalidate() {
	m.invalidated++
}

func (m *mockProvider) Attach(req *http.Request, credential string) {
	req.Header.Set("Authorization", "Bearer "+credential)
}

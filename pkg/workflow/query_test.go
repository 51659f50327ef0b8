package workflow

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shouni/scene-preview-kit/pkg/authclient"
)

func TestAutoOpenFromQuery(t *testing.T) {
	t.Run("フラグが 1 なら開いてパラメータを取り除くのだ", func(t *testing.T) {
		open, cleaned := AutoOpenFromQuery("https://shop.example/product/mug?openScenePreview=1&ref=mail#details")

		assert.True(t, open)
		assert.Equal(t, "https://shop.example/product/mug?ref=mail#details", cleaned)
	})

	t.Run("他のパラメータが無ければクエリごと消えるのだ", func(t *testing.T) {
		open, cleaned := AutoOpenFromQuery("https://shop.example/product/mug?openScenePreview=1")

		assert.True(t, open)
		assert.Equal(t, "https://shop.example/product/mug", cleaned)
	})

	t.Run("値が 1 以外なら開かないのだ", func(t *testing.T) {
		raw := "https://shop.example/product/mug?openScenePreview=yes"
		open, cleaned := AutoOpenFromQuery(raw)

		assert.False(t, open)
		assert.Equal(t, raw, cleaned)
	})

	t.Run("フラグが無ければ何もしないのだ", func(t *testing.T) {
		raw := "https://shop.example/product/mug"
		open, cleaned := AutoOpenFromQuery(raw)

		assert.False(t, open)
		assert.Equal(t, raw, cleaned)
	})

	t.Run("壊れた URL は開かず元の文字列を返すのだ", func(t *testing.T) {
		raw := "http://[::1:bad"
		open, cleaned := AutoOpenFromQuery(raw)

		assert.False(t, open)
		assert.Equal(t, raw, cleaned)
	})
}

func TestHasConsentCookie(t *testing.T) {
	cookies := authclient.NewMemoryCookieStore()
	assert.False(t, HasConsentCookie(cookies))

	cookies.Set(&http.Cookie{Name: ConsentCookieName, Value: "1"})
	assert.True(t, HasConsentCookie(cookies))
}

package workflow

import (
	"net/url"

	"github.com/shouni/scene-preview-kit/pkg/authclient"
)

// AutoOpenQueryFlag はページ読み込み時にモーダルを自動で開くための
// クエリパラメータ名です。
const AutoOpenQueryFlag = "openScenePreview"

// AutoOpenFromQuery は URL に自動オープンのフラグが立っているかを判定し、
// フラグを取り除いた URL を返します。履歴への書き戻し（リロード無しの
// パラメータ除去）は外部コラボレーターが行います。
// URL が解釈できない場合は開かず、元の文字列をそのまま返します。
func AutoOpenFromQuery(rawURL string) (open bool, cleanedURL string) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, rawURL
	}

	query := parsed.Query()
	if query.Get(AutoOpenQueryFlag) != "1" {
		return false, rawURL
	}

	query.Del(AutoOpenQueryFlag)
	parsed.RawQuery = query.Encode()
	return true, parsed.String()
}

// HasConsentCookie は機能の同意クッキーが立っているかを返します。
func HasConsentCookie(cookies authclient.CookieStore) bool {
	value, ok := cookies.Get(ConsentCookieName)
	return ok && value != ""
}

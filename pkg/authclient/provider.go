package authclient

import (
	"context"
	"net/http"
)

// Doer は *http.Response をそのまま観測できる最小の HTTP 実行器です。
// 401 の検出にステータスコードが必要なため、ボディだけを返す上位の
// HTTP キットではなくこの粒度で注入します。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CredentialProvider は資格情報の取得・破棄・付与を抽象化します。
// クッキー由来のコンテキストトークンと有効期限付きベアラートークンという
// 2つの実装が同じ契約を満たし、どちらを使うかは構成時の選択になります。
type CredentialProvider interface {
	// Acquire は有効な資格情報を返します。キャッシュが有効ならそれを、
	// 無ければ発行エンドポイントから新規に取得します。
	Acquire(ctx context.Context) (string, error)
	// Invalidate はキャッシュ済み資格情報を破棄します。401 を受けた
	// 再試行の前に必ず呼ばれ、無効と判明した資格情報の再利用を防ぎます。
	Invalidate()
	// Attach は資格情報をリクエストへ付与します。
	Attach(req *http.Request, credential string)
}

// CookieStore はコンテキストトークンの置き場（ブラウザでは document.cookie）
// を抽象化します。DOM 連携は外部コラボレーターの責務のため、コアは
// このインターフェース越しにだけ読み書きします。
type CookieStore interface {
	Get(name string) (value string, ok bool)
	Set(cookie *http.Cookie)
}

package workflow

import (
	"context"
	"time"

	"github.com/shouni/scene-preview-kit/pkg/session"
)

// RequestClient は認証付きリクエストの発行窓口です。
// pkg/authclient の Client がこれを満たします。
type RequestClient interface {
	Request(ctx context.Context, method, url string, body any, out any) error
}

// StatusView は合成ワークフローが状態を映す先の UI コラボレーターです。
// DOM の探索やクラス切り替えはコアの責務外のため、このインターフェース
// 越しにだけ操作します。すべてのメソッドは冪等であることを前提とします。
type StatusView interface {
	ShowLoading()
	HideLoading()
	SetLoadingMessage(message string)

	ShowError(message string)
	HideError()

	// SetSceneImage はシーン画像（または生成された合成画像）の data-URI を表示します。
	SetSceneImage(dataURI string)
	ResetSceneImage()

	ShowPlacementOrb(xPx, yPx float64)
	HidePlacementOrb()

	UpdateQuota(display session.QuotaDisplay)
	SetDebugVisible(visible bool)
}

// ImageCacher は取得済み商品画像データのキャッシュです。nil を許容します。
type ImageCacher interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}

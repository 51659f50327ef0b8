package domain

// GenerateRequest は生成エンドポイントへ送る JSON ペイロードです。
// ProductImage には原則 data-URI を入れますが、商品画像の取得に失敗した
// 場合は元の URL をそのまま入れるフォールバックを許容します。
type GenerateRequest struct {
	ProductID    string      `json:"productId"`
	SceneImage   string      `json:"sceneImage"`
	DropPosition DropPercent `json:"dropPosition"`
	ProductName  string      `json:"productName"`
	ProductImage string      `json:"productImage"`
}

// DropPercent は正規化済み配置座標のワイヤ表現です。
type DropPercent struct {
	XPercent float64 `json:"xPercent"`
	YPercent float64 `json:"yPercent"`
}

// GenerateResult は生成成功時の画像データ一式です。
type GenerateResult struct {
	FinalImage string `json:"finalImage"`
	DebugImage string `json:"debugImage,omitempty"`
	Prompt     string `json:"prompt,omitempty"`
}

// SessionStatus はサーバーが申告する残り生成回数です。
// この値が常に正で、クライアント側カウンタはそのキャッシュに過ぎません。
type SessionStatus struct {
	Remaining int `json:"remaining"`
}

// GenerateResponse は生成エンドポイントの応答エンベロープです。
// Success が false でも SessionStatus は併送されることがあります。
type GenerateResponse struct {
	Success       bool            `json:"success"`
	Data          *GenerateResult `json:"data,omitempty"`
	SessionStatus *SessionStatus  `json:"sessionStatus,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// SessionStatusResponse はセッション状態照会エンドポイントの応答です。
type SessionStatusResponse struct {
	Success bool           `json:"success"`
	Data    *SessionStatus `json:"data,omitempty"`
}

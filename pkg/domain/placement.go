package domain

// Point はビューポート座標系の1点です。
type Point struct {
	X float64
	Y float64
}

// Rect はコンテナのビューポート上の矩形（getBoundingClientRect 相当）です。
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Contains は点が矩形の内側（境界含む）にあるかを返します。
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Left+r.Width &&
		p.Y >= r.Top && p.Y <= r.Top+r.Height
}

// Size は画像の自然サイズ（naturalWidth / naturalHeight）です。
type Size struct {
	Width  float64
	Height float64
}

// Valid は幅・高さが共に正であることを確認します。
// 未デコードの画像は naturalWidth が 0 になるため、その場合は配置を受け付けません。
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// DropPosition はドロップ位置を2つの座標系で保持します。
// XPx/YPx はコンテナローカルのピクセル座標（配置オーブの表示用）、
// XPercent/YPercent はレターボックスを除いた描画画像コンテンツに対する
// 正規化座標（0〜100）です。生成リクエストには後者のみを送ります。
type DropPosition struct {
	XPx      float64
	YPx      float64
	XPercent float64
	YPercent float64
}

package geometry

import (
	"github.com/shouni/scene-preview-kit/pkg/domain"
)

// ComputePlacement はビューポート上のポインタ座標を、object-fit: contain で
// 描画された画像コンテンツに対する正規化座標へ変換します。
//
// コンテナにアスペクト比を保ったまま内接させた描画矩形を求め、中央寄せの
// オフセットを差し引いて画像ローカル座標を計算します。点がレターボックス
// （余白）側に落ちた場合は nil を返します。クランプはしません。
// マウスでもタッチでも同じ関数を通すため、変換規則は常に一つです。
func ComputePlacement(p domain.Point, container domain.Rect, natural domain.Size) *domain.DropPosition {
	if !natural.Valid() || container.Width <= 0 || container.Height <= 0 {
		return nil
	}

	imageAspect := natural.Width / natural.Height
	containerAspect := container.Width / container.Height

	// 幅優先か高さ優先かで内接矩形を決める
	var renderedWidth, renderedHeight float64
	if imageAspect > containerAspect {
		renderedWidth = container.Width
		renderedHeight = container.Width / imageAspect
	} else {
		renderedHeight = container.Height
		renderedWidth = container.Height * imageAspect
	}

	offsetX := (container.Width - renderedWidth) / 2
	offsetY := (container.Height - renderedHeight) / 2

	dropX := p.X - container.Left
	dropY := p.Y - container.Top

	imageX := dropX - offsetX
	imageY := dropY - offsetY

	if imageX < 0 || imageX > renderedWidth || imageY < 0 || imageY > renderedHeight {
		return nil
	}

	return &domain.DropPosition{
		XPx:      dropX,
		YPx:      dropY,
		XPercent: imageX / renderedWidth * 100,
		YPercent: imageY / renderedHeight * 100,
	}
}

package gesture

import (
	"context"

	"github.com/shouni/scene-preview-kit/pkg/domain"
)

// mockMetrics は ViewMetrics のテスト用モックなのだ。
// 200x100 のコンテナに正方形画像という、余白計算が見えやすい構成にしてある。
type mockMetrics struct {
	rect    domain.Rect
	natural domain.Size
}

func (m *mockMetrics) DropzoneRect() domain.Rect     { return m.rect }
func (m *mockMetrics) SceneNaturalSize() domain.Size { return m.natural }

func defaultMetrics() *mockMetrics {
	return &mockMetrics{
		rect:    domain.Rect{Left: 0, Top: 0, Width: 200, Height: 100},
		natural: domain.Size{Width: 100, Height: 100},
	}
}

// mockPlacementView は PlacementView のテスト用モックなのだ。
type mockPlacementView struct {
	ghostVisible   bool
	ghostX, ghostY float64
	orbVisible     bool
	orbX, orbY     float64
	scrollLocked   bool
}

func (v *mockPlacementView) ShowTouchGhost(x, y float64) {
	v.ghostVisible = true
	v.ghostX, v.ghostY = x, y
}

func (v *mockPlacementView) MoveTouchGhost(x, y float64) {
	v.ghostX, v.ghostY = x, y
}

func (v *mockPlacementView) HideTouchGhost() { v.ghostVisible = false }

func (v *mockPlacementView) ShowPlacementOrb(xPx, yPx float64) {
	v.orbVisible = true
	v.orbX, v.orbY = xPx, yPx
}

func (v *mockPlacementView) HidePlacementOrb() { v.orbVisible = false }

func (v *mockPlacementView) LockScroll()   { v.scrollLocked = true }
func (v *mockPlacementView) UnlockScroll() { v.scrollLocked = false }

// mockSink は PlacementSink のテスト用モックなのだ。
type mockSink struct {
	canGenerateErr error
	generated      []domain.DropPosition
}

func (s *mockSink) CanGenerate() error { return s.canGenerateErr }

func (s *mockSink) Generate(ctx context.Context, pos domain.DropPosition) error {
	s.generated = append(s.generated, pos)
	return nil
}

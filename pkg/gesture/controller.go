package gesture

import (
	"context"
	"fmt"
	"sync"

	"github.com/shouni/scene-preview-kit/pkg/domain"
	"github.com/shouni/scene-preview-kit/pkg/geometry"
)

// TransparentDragPreview はネイティブのドラッグゴーストを消すための
// 1x1 透明 GIF です。代わりのインジケーター（配置オーブ）は
// PlacementView 側で描画されます。
const TransparentDragPreview = "data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7"

// Region はイベントの発生元領域です。DOM のセレクタ照合はコアの責務外
// のため、アダプターが照合結果だけをここへ写し取ります。
type Region int

const (
	// RegionNone は関心領域の外です。
	RegionNone Region = iota
	// RegionProduct はドラッグ元の商品表示領域です。
	RegionProduct
	// RegionDropzone はシーン画像のドロップ先です。
	RegionDropzone
)

// PointerEvent はマウス・タッチのどちらからでも作れる最小のイベントです。
type PointerEvent struct {
	Point  domain.Point
	Region Region
}

// DragStart はドラッグ開始時にアダプターが DataTransfer へ反映する指示です。
type DragStart struct {
	Effect     string // effectAllowed / dropEffect に設定する値
	PreviewURI string // 差し替えるドラッグ画像
}

// ViewMetrics はドロップ先コンテナとシーン画像の幾何情報を提供します。
// 値は呼ばれるたびに現在のレイアウトを反映していることを前提とします。
type ViewMetrics interface {
	DropzoneRect() domain.Rect
	SceneNaturalSize() domain.Size
}

// PlacementView はタッチゴーストと配置オーブの表示コラボレーターです。
type PlacementView interface {
	ShowTouchGhost(x, y float64)
	MoveTouchGhost(x, y float64)
	HideTouchGhost()
	ShowPlacementOrb(xPx, yPx float64)
	HidePlacementOrb()
	// LockScroll はタッチドラッグ中のページスクロールを抑止します。
	LockScroll()
	UnlockScroll()
}

// PlacementSink は確定した配置を受け取るワークフロー側の契約です。
// pkg/workflow の Composer がこれを満たします。
type PlacementSink interface {
	CanGenerate() error
	Generate(ctx context.Context, pos domain.DropPosition) error
}

// Controller はマウスのドラッグ＆ドロップ、タッチドラッグ、単純な
// クリックを同じ「配置」イベントへ正規化します。座標変換は常に
// geometry.ComputePlacement を通すため、入力手段によらず同じ規則で
// レターボックス外の点が棄却されます。
type Controller struct {
	metrics ViewMetrics
	view    PlacementView
	sink    PlacementSink

	mu       sync.Mutex
	dragging bool
	ghost    *domain.Point
}

// NewController は依存関係を注入して Controller を初期化します。
func NewController(metrics ViewMetrics, view PlacementView, sink PlacementSink) (*Controller, error) {
	if metrics == nil {
		return nil, fmt.Errorf("metrics is required")
	}
	if view == nil {
		return nil, fmt.Errorf("view is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("sink is required")
	}
	return &Controller{metrics: metrics, view: view, sink: sink}, nil
}

// TouchDragging はタッチドラッグ中かを返します。
func (c *Controller) TouchDragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

// GhostPosition は現在のタッチゴースト位置を返します。ドラッグ中で
// なければ nil です。
func (c *Controller) GhostPosition() *domain.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ghost == nil {
		return nil
	}
	ghost := *c.ghost
	return &ghost
}

// HandleDragStart は商品表示領域からのネイティブドラッグ開始に応答します。
// 商品以外からのドラッグには nil を返し、アダプターは既定動作のままにします。
func (c *Controller) HandleDragStart(ev PointerEvent) *DragStart {
	if ev.Region != RegionProduct {
		return nil
	}
	return &DragStart{Effect: "move", PreviewURI: TransparentDragPreview}
}

// HandleDragOver はドロップ先上のドラッグ経過に応答します。true を
// 返したらアダプターは既定のナビゲーションを抑止します。
func (c *Controller) HandleDragOver(ev PointerEvent) bool {
	return ev.Region == RegionDropzone
}

// HandleDrop はネイティブドロップを配置イベントへ変換します。
// 戻り値はイベントを消費したか（= preventDefault すべきか）です。
func (c *Controller) HandleDrop(ctx context.Context, ev PointerEvent) bool {
	if ev.Region != RegionDropzone {
		return false
	}
	c.placeAt(ctx, ev.Point)
	return true
}

// HandleClick はドラッグを伴わない単純なクリック/タップです。
// ドロップと同じ前提条件と座標検査を通ります。
func (c *Controller) HandleClick(ctx context.Context, ev PointerEvent) bool {
	if ev.Region != RegionDropzone {
		return false
	}
	c.placeAt(ctx, ev.Point)
	return true
}

// HandleTouchStart は商品表示領域でのタッチ開始に応答します。
// 前提条件を満たさない場合はドラッグを開始しません。true を返したら
// アダプターはスクロールなどの既定動作を抑止します。
func (c *Controller) HandleTouchStart(ev PointerEvent) bool {
	if ev.Region != RegionProduct {
		return false
	}
	if err := c.sink.CanGenerate(); err != nil {
		return false
	}

	c.mu.Lock()
	c.dragging = true
	point := ev.Point
	c.ghost = &point
	c.mu.Unlock()

	c.view.ShowTouchGhost(ev.Point.X, ev.Point.Y)
	c.view.LockScroll()
	return true
}

// HandleTouchMove はドラッグ中の指の移動へ追従します。ドロップ先の上に
// いる間は配置オーブも更新し、外れたら消します。
func (c *Controller) HandleTouchMove(ev PointerEvent) bool {
	c.mu.Lock()
	if !c.dragging {
		c.mu.Unlock()
		return false
	}
	point := ev.Point
	c.ghost = &point
	c.mu.Unlock()

	c.view.MoveTouchGhost(ev.Point.X, ev.Point.Y)

	if ev.Region == RegionDropzone {
		if pos := c.computePlacement(ev.Point); pos != nil {
			c.view.ShowPlacementOrb(pos.XPx, pos.YPx)
			return true
		}
	}
	c.view.HidePlacementOrb()
	return true
}

// HandleTouchEnd はドラッグを終了します。指がドロップ先の上で離れた
// 場合のみ配置イベントを発火し、どの経路でもゴーストとスクロール
// 抑止は解除されます。
func (c *Controller) HandleTouchEnd(ctx context.Context, ev PointerEvent) bool {
	c.mu.Lock()
	if !c.dragging {
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()

	if ev.Region == RegionDropzone {
		c.placeAt(ctx, ev.Point)
	}

	c.endTouchDrag()
	return true
}

// CancelTouchDrag は touchcancel 相当の強制終了です。
func (c *Controller) CancelTouchDrag() {
	c.mu.Lock()
	dragging := c.dragging
	c.mu.Unlock()
	if dragging {
		c.endTouchDrag()
	}
}

func (c *Controller) endTouchDrag() {
	c.mu.Lock()
	c.dragging = false
	c.ghost = nil
	c.mu.Unlock()

	c.view.HideTouchGhost()
	c.view.HidePlacementOrb()
	c.view.UnlockScroll()
}

func (c *Controller) placeAt(ctx context.Context, p domain.Point) {
	if err := c.sink.CanGenerate(); err != nil {
		return
	}

	pos := c.computePlacement(p)
	if pos == nil {
		return
	}

	// 前提条件の再検査とエラー提示は Generate 側の責務
	_ = c.sink.Generate(ctx, *pos)
}

func (c *Controller) computePlacement(p domain.Point) *domain.DropPosition {
	return geometry.ComputePlacement(p, c.metrics.DropzoneRect(), c.metrics.SceneNaturalSize())
}

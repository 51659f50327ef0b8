package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/scene-preview-kit/pkg/domain"
	"github.com/shouni/scene-preview-kit/pkg/session"
)

// ConsentCookieName は機能の利用同意を表すクッキー名です。
// このクッキーが立っていない間は生成を一切受け付けません。
const ConsentCookieName = "ai-scene-preview"

// Config は Composer の構成です。外部コラボレーターから渡される
// 設定面（§エンドポイント・商品情報・文言）はすべてここに集まります。
type Config struct {
	Product          domain.ProductRef
	GenerateURL      string
	SessionStatusURL string

	MaxGenerations int
	DebugMode      bool
	LoggedIn       bool
	CookieConsent  bool

	// Messages の空フィールドは既定文言で補われます。
	Messages        domain.Messages
	LoadingMessages []string
	RotateInterval  time.Duration

	Client     RequestClient
	HTTPClient httpkit.ClientInterface
	Reader     remoteio.InputReader // 任意。ローカル/リモート URI からのシーン読込に使用
	Cache      ImageCacher          // 任意
	CacheTTL   time.Duration
	View       StatusView
}

// Composer は配置座標を受け取ってから合成結果を映すまでの
// ワークフロー全体を司ります。状態遷移は
// Idle → Validating → Uploading → AwaitingResult → (Applied | Failed) → Idle
// で、前提条件違反は Idle から外れる前に弾かれます。
type Composer struct {
	product          domain.ProductRef
	generateURL      string
	sessionStatusURL string
	messages         domain.Messages
	loadingMessages  []string
	rotateInterval   time.Duration

	client     RequestClient
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
	cache      ImageCacher
	cacheTTL   time.Duration
	view       StatusView
	session    *session.State

	mu       sync.Mutex
	loggedIn bool
	consent  bool
	scene    *domain.SceneImage
	epoch    uint64
}

// NewComposer は依存関係を検証して Composer を初期化します。
func NewComposer(cfg Config) (*Composer, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if cfg.HTTPClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if cfg.View == nil {
		return nil, fmt.Errorf("view is required")
	}
	if cfg.GenerateURL == "" {
		return nil, fmt.Errorf("generateURL is required")
	}

	messages := domain.DefaultMessages().Merge(cfg.Messages)
	loadingMessages := cfg.LoadingMessages
	if len(loadingMessages) == 0 {
		loadingMessages = domain.DefaultLoadingMessages()
	}

	return &Composer{
		product:          cfg.Product,
		generateURL:      cfg.GenerateURL,
		sessionStatusURL: cfg.SessionStatusURL,
		messages:         messages,
		loadingMessages:  loadingMessages,
		rotateInterval:   cfg.RotateInterval,
		client:           cfg.Client,
		httpClient:       cfg.HTTPClient,
		reader:           cfg.Reader,
		cache:            cfg.Cache,
		cacheTTL:         cfg.CacheTTL,
		view:             cfg.View,
		session:          session.NewState(cfg.MaxGenerations, cfg.DebugMode),
		loggedIn:         cfg.LoggedIn,
		consent:          cfg.CookieConsent,
	}, nil
}

// Session はクォータとデバッグ成果物の状態を返します。
func (c *Composer) Session() *session.State {
	return c.session
}

// Messages は解決済みのユーザー向け文言を返します。
func (c *Composer) Messages() domain.Messages {
	return c.messages
}

// SetCookieConsent は同意バナーからの更新を反映します。
// 同意が得られたタイミングで表示中の同意エラーを消します。
func (c *Composer) SetCookieConsent(granted bool) {
	c.mu.Lock()
	c.consent = granted
	c.mu.Unlock()

	if granted {
		c.view.HideError()
	}
}

// SceneUploaded はシーン画像がアップロード済みかを返します。
func (c *Composer) SceneUploaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene != nil
}

// CanGenerate は生成の前提条件を検査します。違反があれば該当する
// 文言をビューへ提示し、ValidationError を返します。状態は変更しません。
func (c *Composer) CanGenerate() error {
	c.mu.Lock()
	loggedIn, consent, hasScene := c.loggedIn, c.consent, c.scene != nil
	c.mu.Unlock()

	var message string
	switch {
	case !loggedIn:
		message = c.messages.LoginRequired
	case !consent:
		message = c.messages.CookieRequired
	case c.session.Exhausted():
		message = c.messages.SessionLimit
	case !hasScene:
		message = c.messages.NoImage
	default:
		return nil
	}

	c.view.ShowError(message)
	return &ValidationError{Message: message}
}

// UploadScene はユーザーが選択したシーン画像を受け付けます。
// 画像でないファイルは InvalidImage の文言とともに拒否されます。
func (c *Composer) UploadScene(name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		c.view.ShowError(c.messages.LoadFailed)
		return fmt.Errorf("シーン画像の読み込みに失敗しました: %w", err)
	}
	return c.acceptScene(name, data)
}

// UploadSceneFromURI は URI（http(s)、ローカルパス、gs:// 等)から
// シーン画像を読み込みます。
func (c *Composer) UploadSceneFromURI(ctx context.Context, rawURI string) error {
	data, err := c.fetchSceneData(ctx, rawURI)
	if err != nil {
		c.view.ShowError(c.messages.LoadFailed)
		return fmt.Errorf("シーン画像の取得に失敗しました: %w", err)
	}
	return c.acceptScene(rawURI, data)
}

func (c *Composer) acceptScene(name string, data []byte) error {
	scene, err := c.loadSceneImage(name, data)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			c.view.ShowError(vErr.Message)
		}
		return err
	}

	c.mu.Lock()
	c.scene = scene
	c.epoch++
	c.mu.Unlock()

	c.view.SetSceneImage(scene.DataURI)
	c.view.HideError()
	return nil
}

// Generate は配置座標を受け取り、リモートサービスで合成を実行します。
// 前提条件違反は ValidationError、通信・認証系の失敗はラップ済みの
// エラーとして返り、どの経路でもローディング表示と配置オーブは
// 必ず消えます。サーバーが success:false を返した「正常な失敗」は
// 文言の提示とクォータ反映だけを行い、エラーとしては扱いません。
func (c *Composer) Generate(ctx context.Context, pos domain.DropPosition) error {
	if err := c.CanGenerate(); err != nil {
		return err
	}

	c.mu.Lock()
	scene := c.scene
	epoch := c.epoch
	c.mu.Unlock()

	c.view.ShowLoading()
	c.view.ShowPlacementOrb(pos.XPx, pos.YPx)
	rotator := session.NewRotator(c.loadingMessages, c.rotateInterval, c.view.SetLoadingMessage)
	rotator.Start()
	defer func() {
		rotator.Stop()
		c.view.HideLoading()
		c.view.HidePlacementOrb()
	}()

	payload := domain.GenerateRequest{
		ProductID:  c.product.ID,
		SceneImage: scene.DataURI,
		DropPosition: domain.DropPercent{
			XPercent: pos.XPercent,
			YPercent: pos.YPercent,
		},
		ProductName:  c.product.Name,
		ProductImage: c.productImagePayload(ctx),
	}

	var resp domain.GenerateResponse
	if err := c.client.Request(ctx, http.MethodPost, c.generateURL, payload, &resp); err != nil {
		slog.ErrorContext(ctx, "生成リクエストが失敗しました", "error", err)
		if c.epochAlive(epoch) {
			c.view.ShowError(c.messages.GenerationException)
		}
		return err
	}

	if !c.epochAlive(epoch) {
		// モーダルが閉じられた後に届いた応答は結果を適用しない
		slog.InfoContext(ctx, "リセット後に届いた生成応答を破棄します")
		return nil
	}

	if resp.SessionStatus != nil {
		c.applyQuota(resp.SessionStatus.Remaining)
	}

	if !resp.Success || resp.Data == nil {
		message := resp.Error
		if message == "" {
			message = c.messages.GenerationFailed
		}
		c.view.ShowError(message)
		return nil
	}

	c.mu.Lock()
	if c.scene != nil {
		c.scene.DataURI = resp.Data.FinalImage
	}
	c.mu.Unlock()
	c.view.SetSceneImage(resp.Data.FinalImage)

	if resp.Data.DebugImage != "" {
		c.session.RecordDebugArtifact(&domain.DebugArtifact{
			Image:  resp.Data.DebugImage,
			Prompt: resp.Data.Prompt,
		})
	}
	c.view.SetDebugVisible(c.session.DebugVisible())

	c.view.HideError()
	return nil
}

// CheckSessionStatus は初期化時のクォータ照会です。ログイン済みの
// ときだけ実行し、失敗はログに残すのみで致命的には扱いません。
func (c *Composer) CheckSessionStatus(ctx context.Context) {
	c.mu.Lock()
	loggedIn := c.loggedIn
	c.mu.Unlock()
	if !loggedIn {
		return
	}

	var resp domain.SessionStatusResponse
	if err := c.client.Request(ctx, http.MethodGet, c.sessionStatusURL, nil, &resp); err != nil {
		slog.WarnContext(ctx, "セッション状態を確認できませんでした", "error", err)
		return
	}

	if resp.Success && resp.Data != nil {
		c.applyQuota(resp.Data.Remaining)
	}
}

// ResetUpload はシーンの再アップロードに向けた後始末です。
// シーン画像・配置オーブ・ローディング表示を消します。
func (c *Composer) ResetUpload() {
	c.mu.Lock()
	c.scene = nil
	c.epoch++
	c.mu.Unlock()

	c.view.ResetSceneImage()
	c.view.HidePlacementOrb()
	c.view.HideLoading()
}

// ResetModal はモーダルを閉じたときの完全な状態破棄です。
// ResetUpload に加えてエラー表示とデバッグ成果物も消します。
// 飛行中の生成リクエストは中断しませんが、エポックが進むため
// 遅れて届いた結果は破棄されます。
func (c *Composer) ResetModal() {
	c.ResetUpload()
	c.view.HideError()
	c.session.ClearDebugArtifact()
	c.view.SetDebugVisible(false)
}

func (c *Composer) applyQuota(remaining int) {
	c.session.UpdateQuota(remaining)
	c.view.UpdateQuota(c.session.QuotaDisplay())
}

func (c *Composer) epochAlive(epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch == epoch
}

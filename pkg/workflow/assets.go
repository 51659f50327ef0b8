package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/shouni/scene-preview-kit/pkg/domain"
	"github.com/shouni/scene-preview-kit/pkg/imgutil"
)

const (
	// UseSceneCompression が真のとき、シーン画像は送信前に JPEG へ再圧縮されます。
	UseSceneCompression     = true
	SceneCompressionQuality = 75

	// sceneCompressionThreshold 未満の画像は再圧縮しても益が薄いため素通しします。
	sceneCompressionThreshold = 256 * 1024

	cacheKeyProductImage = "product_image:"
)

// loadSceneImage はアップロードされたバイト列を検証し、送信用の
// SceneImage に変換します。画像でないファイルは受け付けません。
func (c *Composer) loadSceneImage(name string, data []byte) (*domain.SceneImage, error) {
	if len(data) == 0 || !imgutil.IsImage(data) {
		return nil, &ValidationError{Message: c.messages.InvalidImage}
	}

	finalData := data
	if UseSceneCompression && len(data) >= sceneCompressionThreshold {
		if compressed, err := imgutil.CompressToJPEG(data, SceneCompressionQuality); err == nil {
			finalData = compressed
		}
	}

	return &domain.SceneImage{
		Name:     name,
		MimeType: http.DetectContentType(finalData),
		DataURI:  imgutil.EncodeDataURI(finalData),
	}, nil
}

// fetchSceneData はシーン画像の URI からバイト列を取得します。
// http(s) は HTTP キット、それ以外（ローカルパスや gs://）は
// InputReader に委譲します。
func (c *Composer) fetchSceneData(ctx context.Context, rawURI string) ([]byte, error) {
	if strings.HasPrefix(rawURI, "http://") || strings.HasPrefix(rawURI, "https://") {
		return c.httpClient.FetchBytes(ctx, rawURI)
	}

	if c.reader == nil {
		return nil, fmt.Errorf("リモート読み取りが構成されていません: %s", rawURI)
	}
	rc, err := c.reader.Open(ctx, rawURI)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// productImagePayload は商品画像を data-URI に変換します。取得や検証に
// 失敗しても生成は続行し、元の URL をそのまま使うフォールバックをとります。
func (c *Composer) productImagePayload(ctx context.Context) string {
	rawURL := c.product.ImageURL

	if c.cache != nil {
		if cached, found := c.cache.Get(cacheKeyProductImage + rawURL); found {
			if uri, ok := cached.(string); ok {
				return uri
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", rawURL, "type", fmt.Sprintf("%T", cached))
		}
	}

	if safe, err := isSafeURL(rawURL); !safe || err != nil {
		slog.WarnContext(ctx, "商品画像URLの検証に失敗したため URL のまま送信します", "url", rawURL, "error", err)
		return rawURL
	}

	data, err := c.httpClient.FetchBytes(ctx, rawURL)
	if err != nil {
		slog.WarnContext(ctx, "商品画像のダウンロードに失敗したため URL のまま送信します", "url", rawURL, "error", err)
		return rawURL
	}
	if !imgutil.IsImage(data) {
		slog.WarnContext(ctx, "商品画像の MIME タイプが画像ではありません", "url", rawURL)
		return rawURL
	}

	uri := imgutil.EncodeDataURI(data)
	if c.cache != nil {
		c.cache.Set(cacheKeyProductImage+rawURL, uri, c.cacheTTL)
	}
	return uri
}

// isSafeURL は SSRF 対策として URL を検証します。
// 許可されたスキーム (http, https) かつ、プライベートIPやループバック
// アドレスをターゲットにしていないことを確認します。
func isSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolvedIPs, err := net.LookupIP(host)
		if err != nil {
			return false, fmt.Errorf("名前解決失敗: %w", err)
		}
		ips = resolvedIPs
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}

	return true, nil
}

package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/shouni/scene-preview-kit/pkg/domain"
)

// 資格情報戦略の選択肢です。どちらか一方だけがデプロイごとに有効になります。
const (
	StrategyBearer       = "bearer"
	StrategyContextToken = "context-token"
)

// DefaultMaxGenerations は未設定時のセッションあたり生成上限です。
const DefaultMaxGenerations = 10

// Config はホスト側から注入される設定面です。エンドポイント・商品情報・
// 文言などはすべてここを経由してコアへ渡り、コア自身は何も管理しません。
type Config struct {
	GenerateURL      string
	SessionStatusURL string
	TokenURL         string
	ContextURL       string
	AccessKey        string

	ProductID       string
	ProductName     string
	ProductImageURL string

	MaxGenerations     int
	DebugMode          bool
	CredentialStrategy string

	LoadingMessages []string
	Messages        domain.Messages
}

// Product は設定から ProductRef を組み立てます。
func (c *Config) Product() domain.ProductRef {
	return domain.ProductRef{
		ID:       c.ProductID,
		Name:     c.ProductName,
		ImageURL: c.ProductImageURL,
	}
}

// Load は .env ファイル（あれば）と環境変数から設定を読み込みます。
// 必須項目は生成エンドポイントと商品IDのみで、残りは既定値で補います。
func Load(envFiles ...string) (*Config, error) {
	// .env が無いのは通常運用なので無視する
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Debug("環境ファイルは読み込まれませんでした", "error", err)
	}

	cfg := &Config{
		GenerateURL:        os.Getenv("SCENE_PREVIEW_GENERATE_URL"),
		SessionStatusURL:   os.Getenv("SCENE_PREVIEW_SESSION_STATUS_URL"),
		TokenURL:           os.Getenv("SCENE_PREVIEW_TOKEN_URL"),
		ContextURL:         os.Getenv("SCENE_PREVIEW_CONTEXT_URL"),
		AccessKey:          os.Getenv("SCENE_PREVIEW_ACCESS_KEY"),
		ProductID:          os.Getenv("SCENE_PREVIEW_PRODUCT_ID"),
		ProductName:        os.Getenv("SCENE_PREVIEW_PRODUCT_NAME"),
		ProductImageURL:    os.Getenv("SCENE_PREVIEW_PRODUCT_IMAGE"),
		MaxGenerations:     DefaultMaxGenerations,
		CredentialStrategy: StrategyBearer,
	}

	if cfg.GenerateURL == "" {
		return nil, fmt.Errorf("SCENE_PREVIEW_GENERATE_URL is required")
	}
	if cfg.ProductID == "" {
		return nil, fmt.Errorf("SCENE_PREVIEW_PRODUCT_ID is required")
	}

	if raw := os.Getenv("SCENE_PREVIEW_MAX_GENERATIONS"); raw != "" {
		max, err := strconv.Atoi(raw)
		if err != nil || max < 0 {
			return nil, fmt.Errorf("SCENE_PREVIEW_MAX_GENERATIONS が不正です: %q", raw)
		}
		cfg.MaxGenerations = max
	}

	if raw := os.Getenv("SCENE_PREVIEW_DEBUG_MODE"); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("SCENE_PREVIEW_DEBUG_MODE が不正です: %q", raw)
		}
		cfg.DebugMode = debug
	}

	if raw := os.Getenv("SCENE_PREVIEW_CREDENTIAL_STRATEGY"); raw != "" {
		switch raw {
		case StrategyBearer, StrategyContextToken:
			cfg.CredentialStrategy = raw
		default:
			return nil, fmt.Errorf("SCENE_PREVIEW_CREDENTIAL_STRATEGY が不正です: %q", raw)
		}
	}

	// 文言類はホストのテンプレートから JSON で届く想定（dataset 相当）
	if raw := os.Getenv("SCENE_PREVIEW_LOADING_MESSAGES"); raw != "" {
		var messages []string
		if err := json.Unmarshal([]byte(raw), &messages); err != nil {
			slog.Warn("ローディング文言を解釈できませんでした。既定値を使います", "error", err)
		} else if len(messages) > 0 {
			cfg.LoadingMessages = messages
		}
	}

	if raw := os.Getenv("SCENE_PREVIEW_MESSAGES"); raw != "" {
		var overrides domain.Messages
		if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
			slog.Warn("メッセージ上書きを解釈できませんでした。既定値を使います", "error", err)
		} else {
			cfg.Messages = overrides
		}
	}

	return cfg, nil
}

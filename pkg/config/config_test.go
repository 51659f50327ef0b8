package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SCENE_PREVIEW_GENERATE_URL", "https://apps.example/api/ai-scene/generate")
	t.Setenv("SCENE_PREVIEW_PRODUCT_ID", "p-1")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultMaxGenerations, cfg.MaxGenerations)
	assert.Equal(t, StrategyBearer, cfg.CredentialStrategy)
	assert.False(t, cfg.DebugMode)
	assert.Empty(t, cfg.LoadingMessages)
}

func TestLoad_RequiredFields(t *testing.T) {
	t.Run("生成エンドポイントが無いとエラーなのだ", func(t *testing.T) {
		t.Setenv("SCENE_PREVIEW_GENERATE_URL", "")
		t.Setenv("SCENE_PREVIEW_PRODUCT_ID", "p-1")

		_, err := Load()
		assert.ErrorContains(t, err, "SCENE_PREVIEW_GENERATE_URL")
	})

	t.Run("商品IDが無いとエラーなのだ", func(t *testing.T) {
		t.Setenv("SCENE_PREVIEW_GENERATE_URL", "https://apps.example/api/generate")
		t.Setenv("SCENE_PREVIEW_PRODUCT_ID", "")

		_, err := Load()
		assert.ErrorContains(t, err, "SCENE_PREVIEW_PRODUCT_ID")
	})
}

func TestLoad_Parsing(t *testing.T) {
	t.Run("数値・真偽値・戦略を読むのだ", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SCENE_PREVIEW_MAX_GENERATIONS", "3")
		t.Setenv("SCENE_PREVIEW_DEBUG_MODE", "true")
		t.Setenv("SCENE_PREVIEW_CREDENTIAL_STRATEGY", StrategyContextToken)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3, cfg.MaxGenerations)
		assert.True(t, cfg.DebugMode)
		assert.Equal(t, StrategyContextToken, cfg.CredentialStrategy)
	})

	t.Run("不正な上限値はエラーなのだ", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SCENE_PREVIEW_MAX_GENERATIONS", "many")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("未知の戦略はエラーなのだ", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SCENE_PREVIEW_CREDENTIAL_STRATEGY", "magic")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoad_JSONFields(t *testing.T) {
	t.Run("ローディング文言の JSON 配列を読むのだ", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SCENE_PREVIEW_LOADING_MESSAGES", `["step one","step two"]`)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, []string{"step one", "step two"}, cfg.LoadingMessages)
	})

	t.Run("壊れた JSON は既定値のまま続行するのだ", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SCENE_PREVIEW_LOADING_MESSAGES", `not-json`)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Empty(t, cfg.LoadingMessages)
	})

	t.Run("メッセージ上書きを読むのだ", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SCENE_PREVIEW_MESSAGES", `{"NoImage":"まずは写真をアップロードしてください"}`)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "まずは写真をアップロードしてください", cfg.Messages.NoImage)
	})
}

func TestConfig_Product(t *testing.T) {
	cfg := &Config{ProductID: "p-9", ProductName: "Lamp", ProductImageURL: "https://shop.example/lamp.png"}

	product := cfg.Product()

	assert.Equal(t, "p-9", product.ID)
	assert.Equal(t, "Lamp", product.Name)
	assert.Equal(t, "https://shop.example/lamp.png", product.ImageURL)
}

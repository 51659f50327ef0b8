package domain

// Messages はユーザー向けメッセージの一式です。翻訳やストア側の文言
// 上書きは外部コラボレーターの責務のため、コアは文字列を保持するだけです。
type Messages struct {
	InvalidImage        string
	LoadFailed          string
	NoImage             string
	SessionLimit        string
	GenerationFailed    string
	GenerationException string
	CookieRequired      string
	LoginRequired       string
}

// DefaultMessages は上書きが無い場合の既定文言を返します。
func DefaultMessages() Messages {
	return Messages{
		InvalidImage:        "Please select a valid image file.",
		LoadFailed:          "Failed to load image. Please try again.",
		NoImage:             "Please upload an image first.",
		SessionLimit:        "Generation limit reached for this session.",
		GenerationFailed:    "We had problems placing the product in your scene. Please try again. For best results, make sure that the scene image has enough free space available to place the product in a meaningful way.",
		GenerationException: "Something went wrong in the browser during generation. Please try again.",
		CookieRequired:      "Please accept the AI scene preview cookie in the consent banner to use this feature.",
		LoginRequired:       "Login required",
	}
}

// Merge は空でないフィールドだけで既定値を上書きした Messages を返します。
func (m Messages) Merge(override Messages) Messages {
	merged := m
	if override.InvalidImage != "" {
		merged.InvalidImage = override.InvalidImage
	}
	if override.LoadFailed != "" {
		merged.LoadFailed = override.LoadFailed
	}
	if override.NoImage != "" {
		merged.NoImage = override.NoImage
	}
	if override.SessionLimit != "" {
		merged.SessionLimit = override.SessionLimit
	}
	if override.GenerationFailed != "" {
		merged.GenerationFailed = override.GenerationFailed
	}
	if override.GenerationException != "" {
		merged.GenerationException = override.GenerationException
	}
	if override.CookieRequired != "" {
		merged.CookieRequired = override.CookieRequired
	}
	if override.LoginRequired != "" {
		merged.LoginRequired = override.LoginRequired
	}
	return merged
}

// DefaultLoadingMessages は生成待機中に順番に表示するステータス文言です。
func DefaultLoadingMessages() []string {
	return []string{
		"Analyzing your product...",
		"Surveying the scene...",
		"Describing placement location with AI...",
		"Crafting the perfect composition prompt...",
		"Generating photorealistic options...",
		"Assembling the final scene...",
	}
}

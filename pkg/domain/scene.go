package domain

// ProductRef はモーダルを開いたときに外部コラボレーターから渡される
// 商品情報です。コア側からは読み取り専用として扱います。
type ProductRef struct {
	ID       string
	Name     string
	ImageURL string
}

// SceneImage はユーザーがアップロードした背景写真1枚分の状態です。
// 再アップロードまたはリセットで丸ごと差し替えられます。
type SceneImage struct {
	Name     string // 元ファイル名（表示用）
	MimeType string
	DataURI  string // data: スキームのエンコード済み画像
}

// DebugArtifact はデバッグモード有効時にサーバーが返す中間生成物です。
type DebugArtifact struct {
	Image  string // data-URI
	Prompt string
}

package session

import (
	"strconv"
	"strings"
	"sync"

	"github.com/shouni/scene-preview-kit/pkg/domain"
)

// QuotaTier は残り生成回数カウンタの表示段階です。
type QuotaTier int

const (
	// TierHidden は残量に余裕がありカウンタを出さない状態です。
	TierHidden QuotaTier = iota
	// TierInfo は残りわずかの通知段階です。
	TierInfo
	// TierWarning は残量ゼロの警告段階です。
	TierWarning
)

// hideThreshold 以上残っている間はカウンタ自体を表示しません。
const hideThreshold = 5

// QuotaDisplay はカウンタ表示に必要な導出状態です。
// Remaining は表示用に 0 未満へ落ちないようクランプ済みです。
type QuotaDisplay struct {
	Tier      QuotaTier
	Remaining int
}

// State は1ブラウザセッション分の生成クォータとデバッグ成果物を保持します。
// remaining はサーバー応答が常に正で、ここにあるのはそのキャッシュです。
// 初回の応答が届くまでは max を仮の値として使います。
type State struct {
	mu           sync.Mutex
	remaining    int
	max          int
	debugEnabled bool
	artifact     *domain.DebugArtifact
}

// NewState は State を初期化します。
func NewState(maxGenerations int, debugEnabled bool) *State {
	return &State{
		remaining:    maxGenerations,
		max:          maxGenerations,
		debugEnabled: debugEnabled,
	}
}

// UpdateQuota はサーバーが申告した残量でカウンタを置き換えます。
func (s *State) UpdateQuota(remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remaining = remaining
}

// Remaining は現在の残量（未クランプ）を返します。
func (s *State) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Exhausted は残量が尽きているかを返します。
func (s *State) Exhausted() bool {
	return s.Remaining() <= 0
}

// QuotaDisplay は表示段階と表示用残量を導出します。
func (s *State) QuotaDisplay() QuotaDisplay {
	remaining := s.Remaining()
	switch {
	case remaining >= hideThreshold:
		return QuotaDisplay{Tier: TierHidden, Remaining: remaining}
	case remaining <= 0:
		return QuotaDisplay{Tier: TierWarning, Remaining: 0}
	default:
		return QuotaDisplay{Tier: TierInfo, Remaining: remaining}
	}
}

// Message はカウンタ文言テンプレートの %count% を表示用残量へ置換します。
func (d QuotaDisplay) Message(template string) string {
	return strings.ReplaceAll(template, "%count%", strconv.Itoa(d.Remaining))
}

// RecordDebugArtifact はデバッグ成果物を保存または消去します。
// デバッグモードが無効のときは何も保存しません。
func (s *State) RecordDebugArtifact(artifact *domain.DebugArtifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.debugEnabled {
		return
	}
	s.artifact = artifact
}

// DebugArtifact は保存中の成果物を返します。無ければ nil です。
func (s *State) DebugArtifact() *domain.DebugArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifact
}

// DebugVisible はデバッグトリガーを見せてよいかを返します。
// デバッグモードが有効かつ成果物が存在するときだけ true です。
func (s *State) DebugVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debugEnabled && s.artifact != nil
}

// ClearDebugArtifact はモーダルを閉じたときの成果物破棄です。
func (s *State) ClearDebugArtifact() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifact = nil
}

package session

import (
	"sync"
	"time"
)

// DefaultRotateInterval はローディングメッセージの切り替え間隔です。
const DefaultRotateInterval = 3 * time.Second

// Rotator は生成リクエストが飛んでいる間、設定済みのステータス文言を
// 一定間隔で順繰りに流します。Start で先頭の文言を即時に1回流し、
// 以降はタイマーで巡回します。リクエストが成功・失敗・例外のどの経路で
// 決着しても Stop を必ず呼ぶのが呼び出し側の契約で、Stop は何度呼んでも
// 安全です。
type Rotator struct {
	messages []string
	interval time.Duration
	sink     func(message string)

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewRotator は Rotator を初期化します。interval が 0 以下のときは
// 既定の 3 秒を使います。
func NewRotator(messages []string, interval time.Duration, sink func(string)) *Rotator {
	if interval <= 0 {
		interval = DefaultRotateInterval
	}
	return &Rotator{
		messages: messages,
		interval: interval,
		sink:     sink,
	}
}

// Start は巡回を開始します。すでに動いている場合は何もしません。
func (r *Rotator) Start() {
	if len(r.messages) == 0 || r.sink == nil {
		return
	}

	r.mu.Lock()
	if r.stop != nil {
		r.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	r.stop = stop
	r.done = done
	r.mu.Unlock()

	r.sink(r.messages[0])

	go func() {
		defer close(done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		current := 0
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				current = (current + 1) % len(r.messages)
				r.sink(r.messages[current])
			}
		}
	}()
}

// Stop は巡回を停止し、タイマーの後始末が終わるまで待ちます。
// 動いていないときに呼んでも何も起きません。
func (r *Rotator) Stop() {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop = nil
	r.done = nil
	r.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

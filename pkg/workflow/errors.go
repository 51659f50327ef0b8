package workflow

// ValidationError は生成に入る前の前提条件違反です。
// 即座にユーザーへ文言を提示し、再試行はしません。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "workflow: " + e.Message
}

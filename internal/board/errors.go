package board

import "errors"

// ErrNotFound は投稿が存在しない（またはIDの形式が不正な）場合に返されます。
var ErrNotFound = errors.New("post not found")

// ValidationError は入力値の不備を表します。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validatePostInput(title, content string) error {
	if title == "" || content == "" {
		return &ValidationError{Message: "タイトルと内容は必須です"}
	}
	return nil
}

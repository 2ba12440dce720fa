package analyses

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrRecordingDisabled = errors.New("analysis history is disabled")
)

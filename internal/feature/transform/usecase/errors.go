package usecase

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest はリクエストの必須項目が欠けている場合に返されます。
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownAction は未対応の action が指定された場合に返されます。
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidFetchType は未対応の fetch_type が指定された場合に返されます。
	ErrInvalidFetchType = errors.New("invalid fetch type")
	// ErrSessionNotFound は指定したセッションが保存されていない場合に返されます。
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoValidUseCases は選択されたユースケースIDが1件も有効でない場合に返されます。
	ErrNoValidUseCases = errors.New("no valid use case ids")
	// ErrInvalidFileURL は読み取りが許可されていないファイルURLが指定された場合に返されます。
	ErrInvalidFileURL = errors.New("invalid file url")
)

// RequestError is a client error whose message is returned as-is in the response body.
type RequestError struct {
	Err error
	Msg string
}

func (e *RequestError) Error() string { return e.Msg }

func (e *RequestError) Unwrap() error { return e.Err }

func requestErrorf(sentinel error, format string, args ...any) error {
	return &RequestError{Err: sentinel, Msg: fmt.Sprintf(format, args...)}
}

// ErrorType classifies err for the error_type field of responses and status records.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrUnknownAction):
		return "unknown_action"
	case errors.Is(err, ErrInvalidFetchType):
		return "invalid_fetch_type"
	case errors.Is(err, ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, ErrNoValidUseCases):
		return "no_valid_use_cases"
	case errors.Is(err, ErrInvalidFileURL):
		return "invalid_file_url"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "processing_error"
	}
}

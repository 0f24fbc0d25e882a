package usecase

import "errors"

var (
	// ErrRenderFailed はPDFの生成に失敗した場合に返されます。
	ErrRenderFailed = errors.New("failed to render report")
	// ErrUploadFailed はレポートのアップロードに失敗した場合に返されます。
	ErrUploadFailed = errors.New("failed to upload report")
)

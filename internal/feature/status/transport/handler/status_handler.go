// Package handler はstatusフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"advisor_backend/internal/feature/status/domain/entity"
	"advisor_backend/internal/feature/status/transport/http/dto"
)

// StatusReader はセッションの進捗を取得するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StatusReader interface {
	Current(ctx context.Context, sessionID string) (*entity.Record, error)
}

// StatusHandler は進捗確認のHTTPリクエストを処理します。
type StatusHandler struct {
	reader StatusReader
}

// NewStatusHandler はStatusHandlerの新しいインスタンスを生成します。
func NewStatusHandler(reader StatusReader) *StatusHandler {
	return &StatusHandler{reader: reader}
}

// Get はセッションの現在のチェックポイントを返します。
//
// エンドポイント: GET /v1/sessions/:id/status
func (h *StatusHandler) Get(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "session id is required"})
		return
	}

	rec, err := h.reader.Current(c.Request.Context(), id)
	if err != nil {
		slog.Error("進捗の取得に失敗", "error", err, "session_id", id)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load status"})
		return
	}

	// ポーリング中のクライアントに古い値を返さない
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.NewStatusResponse(rec))
}

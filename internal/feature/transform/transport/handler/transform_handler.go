// Package handler はtransformフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"advisor_backend/internal/feature/transform/domain/entity"
	"advisor_backend/internal/feature/transform/transport/http/dto"
	"advisor_backend/internal/feature/transform/usecase"
)

// Transformer はオーケストレーターのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type Transformer interface {
	Process(ctx context.Context, req entity.Request) (*entity.Response, error)
	Session(ctx context.Context, sessionID string) (*entity.Session, error)
}

// TransformHandler は transform と session 参照のHTTPリクエストを処理します。
type TransformHandler struct {
	transformer Transformer
}

// NewTransformHandler はTransformHandlerの新しいインスタンスを生成します。
func NewTransformHandler(transformer Transformer) *TransformHandler {
	return &TransformHandler{transformer: transformer}
}

// Transform はリクエストの action に応じて処理を実行します。
//
// エンドポイント: POST /v1/transform
// 同一リクエストが処理中の場合は 202 Accepted を返します。
func (h *TransformHandler) Transform(c *gin.Context) {
	var req dto.TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:    entity.StatusError,
			Message:   "invalid request body",
			ErrorType: "invalid_request",
		})
		return
	}

	resp, err := h.transformer.Process(c.Request.Context(), req.ToEntity())
	if err != nil {
		code := statusCode(err)
		if code >= http.StatusInternalServerError {
			slog.Error("transform request failed", "error", err, "session_id", req.SessionID, "action", req.Action)
		}
		c.JSON(code, dto.NewErrorResponse(req.SessionID, err))
		return
	}

	if resp.Status == entity.StatusInProgress {
		c.JSON(http.StatusAccepted, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSession は保存されたセッションを返します。
//
// エンドポイント: GET /v1/sessions/:id
func (h *TransformHandler) GetSession(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: entity.StatusError, Message: "session id is required", ErrorType: "invalid_request"})
		return
	}

	s, err := h.transformer.Session(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Status: entity.StatusError, Message: "session not found", ErrorType: "session_not_found", SessionID: id})
			return
		}
		slog.Error("セッションの取得に失敗", "error", err, "session_id", id)
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(id, err))
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{Status: "success", Session: s})
}

// statusCode maps orchestrator errors to HTTP status codes.
func statusCode(err error) int {
	var reqErr *usecase.RequestError
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

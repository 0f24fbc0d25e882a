package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor_backend/internal/feature/status/domain/entity"
	"advisor_backend/internal/feature/status/transport/handler"
	"advisor_backend/internal/feature/status/transport/http/dto"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockStatusReader struct {
	CurrentFunc  func(ctx context.Context, id string) (*entity.Record, error)
	CurrentCalls int
}

func (m *mockStatusReader) Current(ctx context.Context, id string) (*entity.Record, error) {
	m.CurrentCalls++
	return m.CurrentFunc(ctx, id)
}

func setupRouter(reader handler.StatusReader) *gin.Engine {
	r := gin.New()
	r.GET("/v1/sessions/:id/status", handler.NewStatusHandler(reader).Get)
	return r
}

func TestStatusHandler_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		record      *entity.Record
		err         error
		wantCode    int
		wantPolling bool
		wantFound   bool
	}{
		{
			name:        "in progress",
			record:      &entity.Record{SessionID: "s1", CurrentStatus: entity.CheckpointResearchInProgress},
			wantCode:    http.StatusOK,
			wantPolling: true,
			wantFound:   true,
		},
		{
			name:        "completed",
			record:      &entity.Record{SessionID: "s1", CurrentStatus: entity.CheckpointCompleted},
			wantCode:    http.StatusOK,
			wantPolling: false,
			wantFound:   true,
		},
		{
			name:        "unknown session",
			record:      &entity.Record{SessionID: "s1", CurrentStatus: entity.CheckpointUnknown},
			wantCode:    http.StatusOK,
			wantPolling: true,
			wantFound:   false,
		},
		{
			name:     "store failure",
			err:      errors.New("redis down"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reader := &mockStatusReader{CurrentFunc: func(ctx context.Context, id string) (*entity.Record, error) {
				assert.Equal(t, "s1", id)
				return tt.record, tt.err
			}}
			w := httptest.NewRecorder()
			setupRouter(reader).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/sessions/s1/status", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, 1, reader.CurrentCalls)
			if tt.wantCode != http.StatusOK {
				return
			}
			var resp dto.StatusResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantPolling, resp.PollingRecommended)
			assert.Equal(t, tt.wantFound, resp.StatusRetrieved)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		})
	}
}

package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"advisor_backend/internal/app/router"
	statusentity "advisor_backend/internal/feature/status/domain/entity"
	statushandler "advisor_backend/internal/feature/status/transport/handler"
	"advisor_backend/internal/feature/transform/domain/entity"
	transformhandler "advisor_backend/internal/feature/transform/transport/handler"
	platformhandler "advisor_backend/internal/platform/http/handler"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubTransformer struct{}

func (stubTransformer) Process(ctx context.Context, req entity.Request) (*entity.Response, error) {
	return &entity.Response{Status: entity.StatusUseCasesGenerated}, nil
}

func (stubTransformer) Session(ctx context.Context, id string) (*entity.Session, error) {
	return &entity.Session{SessionID: id}, nil
}

type stubStatus struct{}

func (stubStatus) Current(ctx context.Context, id string) (*statusentity.Record, error) {
	return &statusentity.Record{SessionID: id, CurrentStatus: statusentity.CheckpointCompleted}, nil
}

func newRouter(opts router.Options) *gin.Engine {
	return router.NewRouter(
		platformhandler.NewHealthHandler(nil),
		transformhandler.NewTransformHandler(stubTransformer{}),
		statushandler.NewStatusHandler(stubStatus{}),
		opts,
	)
}

func TestNewRouter_Routes(t *testing.T) {
	t.Parallel()

	r := newRouter(router.Options{})

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodHead, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/readyz", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodPost, "/v1/transform", `{"company_name":"Acme"}`, http.StatusOK},
		{http.MethodGet, "/v1/sessions/s1", "", http.StatusOK},
		{http.MethodGet, "/v1/sessions/s1/status", "", http.StatusOK},
		{http.MethodGet, "/v1/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestNewRouter_AuthRequired(t *testing.T) {
	t.Parallel()

	r := newRouter(router.Options{AuthRequired: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/sessions/s1", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code, "health checks stay public")
}

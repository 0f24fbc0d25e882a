package router

import (
	"github.com/gin-gonic/gin"

	statushandler "advisor_backend/internal/feature/status/transport/handler"
	transformhandler "advisor_backend/internal/feature/transform/transport/handler"
	platformhandler "advisor_backend/internal/platform/http/handler"
	jwtmw "advisor_backend/internal/platform/jwt"
	"advisor_backend/internal/platform/metrics"
)

// Options controls optional middleware.
type Options struct {
	// AuthRequired は /v1 配下に JWT 認証を適用します。
	AuthRequired bool
}

func NewRouter(health *platformhandler.HealthHandler, transform *transformhandler.TransformHandler,
	status *statushandler.StatusHandler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), metrics.Middleware())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	// 依存サービスの疎通確認
	r.GET("/readyz", health.Ready)
	r.GET("/metrics", metrics.Handler())

	v1 := r.Group("/v1")
	if opts.AuthRequired {
		// → リクエストヘッダーに JWT が必要になる
		v1.Use(jwtmw.AuthRequired())
	}
	{
		v1.POST("/transform", transform.Transform)
		v1.GET("/sessions/:id", transform.GetSession)
		v1.GET("/sessions/:id/status", status.Get)
	}

	return r
}

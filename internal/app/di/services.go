package di

import (
	"time"

	"advisor_backend/internal/feature/report/adapters/pdf"
	reportusecase "advisor_backend/internal/feature/report/usecase"
	"advisor_backend/internal/feature/research/adapters/documents"
	"advisor_backend/internal/feature/research/adapters/web"
	researchusecase "advisor_backend/internal/feature/research/usecase"
	statususecase "advisor_backend/internal/feature/status/usecase"
	transformadapters "advisor_backend/internal/feature/transform/adapters"
	"advisor_backend/internal/feature/transform/transport/handler"
	transformusecase "advisor_backend/internal/feature/transform/usecase"
	usecasegenusecase "advisor_backend/internal/feature/usecasegen/usecase"
	infrahttp "advisor_backend/internal/platform/http"
	"advisor_backend/internal/shared/ratelimiter"
)

// Services are the pipeline stages built on top of Infra.
// Fields may be replaced before calling Transformer, e.g. to wrap the reporter.
type Services struct {
	Tracker  *statususecase.Tracker
	Deps     transformusecase.Dependencies
	Reporter transformusecase.Reporter
}

// NewWebResearcher creates a fully configured Scraper with its search client.
func NewWebResearcher() *web.Scraper {
	cfg := web.LoadConfig()
	client := infrahttp.NewBrowserClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter("search", cfg.SearchesPerMinute, time.Minute)
	searcher := web.NewSearcher(client, cfg.SearchEndpoint, limiter)
	return web.NewScraper(client, searcher, cfg)
}

// NewServices wires every stage of the transform pipeline.
func NewServices(infra *Infra) *Services {
	tracker := statususecase.NewTracker(NewStatusStore(infra.Redis, infra.DB))

	return &Services{
		Tracker:  tracker,
		Reporter: reportusecase.NewReportUsecase(infra.LLM, pdf.NewRenderer(), infra.Store, tracker),
		Deps: transformusecase.Dependencies{
			Documents: documents.NewParser(infra.Objects),
			Files:     infra.Objects,
			Research:  researchusecase.NewResearchUsecase(NewWebResearcher(), infra.LLM, tracker),
			Generator: usecasegenusecase.NewGeneratorUsecase(infra.LLM, tracker),
			Status:    tracker,
			Sessions:  transformadapters.NewSessionGorm(infra.DB),
			Cache:     NewResultCache(infra.Redis),
			Inflight:  NewInflightGuard(infra.Redis),
		},
	}
}

// Transformer builds the orchestrator from the current services.
func (s *Services) Transformer() handler.Transformer {
	deps := s.Deps
	deps.Reporter = s.Reporter
	return transformusecase.NewTransformUsecase(deps)
}

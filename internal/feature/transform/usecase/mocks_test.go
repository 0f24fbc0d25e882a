package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	reportusecase "advisor_backend/internal/feature/report/usecase"
	researchentity "advisor_backend/internal/feature/research/domain/entity"
	researchusecase "advisor_backend/internal/feature/research/usecase"
	statusentity "advisor_backend/internal/feature/status/domain/entity"
	"advisor_backend/internal/feature/transform/domain/entity"
	"advisor_backend/internal/feature/transform/usecase"
	usecasegenentity "advisor_backend/internal/feature/usecasegen/domain/entity"
	usecasegenusecase "advisor_backend/internal/feature/usecasegen/usecase"
)

type mockDocuments struct {
	ParseAllCalls int
}

func (m *mockDocuments) ParseAll(_ context.Context, urls []string) []researchentity.Document {
	m.ParseAllCalls++
	docs := make([]researchentity.Document, len(urls))
	for i, u := range urls {
		docs[i] = researchentity.Document{URL: u, Text: "text of " + u}
		if strings.HasSuffix(u, ".doc") {
			docs[i] = researchentity.Document{URL: u, Error: "unsupported"}
		}
	}
	return docs
}

type mockResearcher struct {
	ResearchFunc  func(ctx context.Context, in researchusecase.Input) (*researchentity.Findings, error)
	ResearchCalls int
	LastInput     researchusecase.Input
}

func (m *mockResearcher) Research(ctx context.Context, in researchusecase.Input) (*researchentity.Findings, error) {
	m.ResearchCalls++
	m.LastInput = in
	if m.ResearchFunc != nil {
		return m.ResearchFunc(ctx, in)
	}
	return &researchentity.Findings{
		Text:              "Acme sells widgets",
		Method:            researchentity.MethodWebAndLLM,
		URLsScraped:       []string{"https://acme.example"},
		SuccessfulScrapes: 1,
	}, nil
}

type mockGenerator struct {
	GenerateFunc  func(ctx context.Context) (*usecasegenusecase.Result, error)
	ProfileCalls  int
	GenerateCalls int
}

func (m *mockGenerator) ExtractProfile(_ context.Context, in usecasegenusecase.Input) (usecasegenentity.CompanyProfile, error) {
	m.ProfileCalls++
	return usecasegenentity.DefaultProfile(in.CompanyName), nil
}

func (m *mockGenerator) Generate(ctx context.Context, _ usecasegenentity.CompanyProfile, _ usecasegenusecase.Input) (*usecasegenusecase.Result, error) {
	m.GenerateCalls++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return &usecasegenusecase.Result{
		UseCases: []usecasegenentity.UseCase{
			{ID: "uc-1", Title: "Smart Support", TimelineMonths: 4, MonthlyCostUSD: 2000},
			{ID: "uc-2", Title: "Demand Forecasting", TimelineMonths: 6, MonthlyCostUSD: 3000},
			{ID: "uc-3", Title: "Document Automation", TimelineMonths: 3, MonthlyCostUSD: 1500},
		},
		Method: usecasegenentity.MethodGenerated,
	}, nil
}

type mockReporter struct {
	GenerateFunc  func(ctx context.Context, in reportusecase.Input) (*reportusecase.Result, error)
	GenerateCalls int
}

func (m *mockReporter) Generate(ctx context.Context, in reportusecase.Input) (*reportusecase.Result, error) {
	m.GenerateCalls++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, in)
	}
	return &reportusecase.Result{URL: "https://reports.example/" + in.SessionID + ".pdf"}, nil
}

type mockStatus struct {
	mu          sync.Mutex
	checkpoints []statusentity.Checkpoint
	current     *statusentity.Record
	CurrentErr  error
}

func (m *mockStatus) Update(_ context.Context, sessionID string, cp statusentity.Checkpoint, p statusentity.Progress) *statusentity.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkpoints = append(m.checkpoints, cp)
	return &statusentity.Record{SessionID: sessionID, CurrentStatus: cp, Details: p.Details}
}

func (m *mockStatus) Current(_ context.Context, sessionID string) (*statusentity.Record, error) {
	if m.CurrentErr != nil {
		return nil, m.CurrentErr
	}
	if m.current != nil {
		return m.current, nil
	}
	return &statusentity.Record{SessionID: sessionID, CurrentStatus: statusentity.CheckpointUnknown}, nil
}

type memSessions struct {
	sessions  map[string]entity.Session
	order     []string
	SaveCalls int
}

func newMemSessions(seed ...entity.Session) *memSessions {
	m := &memSessions{sessions: map[string]entity.Session{}}
	for _, s := range seed {
		m.sessions[s.SessionID] = s
		m.order = append(m.order, s.SessionID)
	}
	return m
}

func (m *memSessions) Save(_ context.Context, s *entity.Session) error {
	m.SaveCalls++
	if _, ok := m.sessions[s.SessionID]; !ok {
		m.order = append(m.order, s.SessionID)
	}
	m.sessions[s.SessionID] = *s
	return nil
}

func (m *memSessions) Find(_ context.Context, id string) (*entity.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, usecase.ErrSessionNotFound
	}
	return &s, nil
}

// FindByCompany returns the most recently saved first.
func (m *memSessions) FindByCompany(_ context.Context, name string) ([]entity.Session, error) {
	var out []entity.Session
	for i := len(m.order) - 1; i >= 0; i-- {
		s := m.sessions[m.order[i]]
		if strings.EqualFold(s.CompanyName, name) {
			out = append(out, s)
		}
	}
	return out, nil
}

type memCache struct {
	data     map[string][]byte
	GetErr   error
	SetCalls int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte) error {
	m.SetCalls++
	m.data[key] = value
	return nil
}

type mockGuard struct {
	held         map[string]string
	AcquireErr   error
	ReleaseCalls int
}

func newMockGuard() *mockGuard { return &mockGuard{held: map[string]string{}} }

func (m *mockGuard) Acquire(_ context.Context, key, id string) (bool, error) {
	if m.AcquireErr != nil {
		return false, m.AcquireErr
	}
	if _, ok := m.held[key]; ok {
		return false, nil
	}
	m.held[key] = id
	return true, nil
}

func (m *mockGuard) Release(_ context.Context, key, id string) error {
	m.ReleaseCalls++
	if m.held[key] == id {
		delete(m.held, key)
	}
	return nil
}

func (m *mockGuard) Holder(_ context.Context, key string) (string, error) {
	return m.held[key], nil
}

// fileCheckerFunc adapts a function to usecase.FileChecker.
type fileCheckerFunc func(rawURL string) error

func (f fileCheckerFunc) Check(rawURL string) error { return f(rawURL) }

// fixture wires every mock into a transform usecase.
type fixture struct {
	documents *mockDocuments
	research  *mockResearcher
	generator *mockGenerator
	reporter  *mockReporter
	status    *mockStatus
	sessions  *memSessions
	cache     *memCache
	guard     *mockGuard
	files     usecase.FileChecker
}

func newFixture(seed ...entity.Session) *fixture {
	return &fixture{
		documents: &mockDocuments{},
		research:  &mockResearcher{},
		generator: &mockGenerator{},
		reporter:  &mockReporter{},
		status:    &mockStatus{},
		sessions:  newMemSessions(seed...),
		cache:     newMemCache(),
		guard:     newMockGuard(),
	}
}

func (f *fixture) usecase() usecaseUnderTest {
	return usecase.NewTransformUsecase(usecase.Dependencies{
		Documents: f.documents,
		Research:  f.research,
		Generator: f.generator,
		Reporter:  f.reporter,
		Status:    f.status,
		Sessions:  f.sessions,
		Cache:     f.cache,
		Inflight:  f.guard,
		Files:     f.files,
	})
}

type usecaseUnderTest interface {
	Process(ctx context.Context, req entity.Request) (*entity.Response, error)
	Session(ctx context.Context, sessionID string) (*entity.Session, error)
}

var errBoom = errors.New("boom")

package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor_backend/internal/feature/report/domain/entity"
	"advisor_backend/internal/feature/report/usecase"
	researchentity "advisor_backend/internal/feature/research/domain/entity"
	statusentity "advisor_backend/internal/feature/status/domain/entity"
	usecasegenentity "advisor_backend/internal/feature/usecasegen/domain/entity"
)

type mockModel struct {
	ComposeFunc  func(ctx context.Context, prompt string) (string, error)
	ComposeCalls int
	Prompts      []string
}

func (m *mockModel) Compose(ctx context.Context, prompt string) (string, error) {
	m.ComposeCalls++
	m.Prompts = append(m.Prompts, prompt)
	if m.ComposeFunc != nil {
		return m.ComposeFunc(ctx, prompt)
	}
	return "", errors.New("ComposeFunc is not implemented")
}

type mockRenderer struct {
	RenderFunc  func(doc *entity.Document) ([]byte, error)
	RenderCalls int
	LastDoc     *entity.Document
}

func (m *mockRenderer) Render(doc *entity.Document) ([]byte, error) {
	m.RenderCalls++
	m.LastDoc = doc
	if m.RenderFunc != nil {
		return m.RenderFunc(doc)
	}
	return []byte("%PDF-1.3 test"), nil
}

type mockStore struct {
	PutFunc         func(ctx context.Context, key string, data []byte, contentType string) (string, error)
	PutCalls        int
	LastKey         string
	LastContentType string
}

func (m *mockStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.PutCalls++
	m.LastKey = key
	m.LastContentType = contentType
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, data, contentType)
	}
	return "https://reports.example/" + key, nil
}

type recordingStatus struct {
	checkpoints []statusentity.Checkpoint
}

func (r *recordingStatus) Update(_ context.Context, sessionID string, cp statusentity.Checkpoint, _ statusentity.Progress) *statusentity.Record {
	r.checkpoints = append(r.checkpoints, cp)
	return &statusentity.Record{SessionID: sessionID, CurrentStatus: cp}
}

func completeReport() string {
	var b strings.Builder
	b.WriteString("<heading_bold>Acme Transformation</heading_bold>\n")
	for i := range 20 {
		fmt.Fprintf(&b, "<sub-heading-bold>Section %d</sub-heading-bold>\n", i)
		fmt.Fprintf(&b, "<paragraph>Section %d explains a separate initiative in enough detail to read well.</paragraph>\n", i)
	}
	b.WriteString("<content>Closing statement.</content>")
	return b.String()
}

func input() usecase.Input {
	profile := usecasegenentity.DefaultProfile("Acme")
	return usecase.Input{
		SessionID: "s-1",
		Profile:   profile,
		UseCases: []usecasegenentity.UseCase{
			{ID: "uc-1", Title: "Smart Support", Category: "Customer", BusinessValue: "Faster answers", TimelineMonths: 4, MonthlyCostUSD: 2000},
			{ID: "uc-2", Title: "Demand Forecasting", Category: "Operations", BusinessValue: "Lower stock", TimelineMonths: 6, MonthlyCostUSD: 3500},
		},
		Research: &researchentity.Findings{Text: "Acme sells widgets.", SuccessfulScrapes: 0},
	}
}

var keyPattern = regexp.MustCompile(`^transformation-reports/s-1/comprehensive-analysis/\d{8}_\d{6}_transformation_report\.pdf$`)

func TestReportUsecase_Generate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name             string
		responses        []func() (string, error)
		expectedCalls    int
		expectedFallback bool
		expectedTitle    string
	}{
		{
			name:          "success: first attempt complete",
			responses:     []func() (string, error){func() (string, error) { return completeReport(), nil }},
			expectedCalls: 1,
			expectedTitle: "Acme Transformation",
		},
		{
			name: "success: incomplete then simplified retry",
			responses: []func() (string, error){
				func() (string, error) { return "<content>cut off...", nil },
				func() (string, error) { return "<paragraph>Short but usable</paragraph>", nil },
			},
			expectedCalls: 2,
			expectedTitle: "GenAI Transformation Strategy for Acme",
		},
		{
			name: "fallback: both attempts fail",
			responses: []func() (string, error){
				func() (string, error) { return "", errors.New("quota") },
				func() (string, error) { return "no tags at all", nil },
			},
			expectedCalls:    2,
			expectedFallback: true,
			expectedTitle:    "GenAI Transformation Strategy for Acme",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			model := &mockModel{}
			model.ComposeFunc = func(ctx context.Context, prompt string) (string, error) {
				return tc.responses[model.ComposeCalls-1]()
			}
			renderer := &mockRenderer{}
			store := &mockStore{}
			status := &recordingStatus{}
			uc := usecase.NewReportUsecase(model, renderer, store, status)

			res, err := uc.Generate(context.Background(), input())

			require.NoError(t, err)
			assert.Equal(t, tc.expectedCalls, model.ComposeCalls)
			assert.Equal(t, tc.expectedFallback, res.Fallback)
			assert.Equal(t, tc.expectedTitle, res.Document.Title)
			assert.Regexp(t, keyPattern, res.Key)
			assert.Equal(t, "https://reports.example/"+res.Key, res.URL)
			assert.Equal(t, "application/pdf", store.LastContentType)
			assert.Equal(t, 1, renderer.RenderCalls)
			assert.Equal(t, []statusentity.Checkpoint{
				statusentity.CheckpointReportGenerationStarted,
				statusentity.CheckpointReportGenerated,
			}, status.checkpoints)
		})
	}
}

func TestReportUsecase_Generate_FallbackDocument(t *testing.T) {
	t.Parallel()

	model := &mockModel{ComposeFunc: func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("unavailable")
	}}
	renderer := &mockRenderer{}
	uc := usecase.NewReportUsecase(model, renderer, &mockStore{}, &recordingStatus{})

	res, err := uc.Generate(context.Background(), input())
	require.NoError(t, err)

	headings := 0
	for _, b := range renderer.LastDoc.Blocks {
		if b.Kind == entity.BlockHeading {
			headings++
		}
	}
	assert.Equal(t, 8, headings)
	assert.NotEmpty(t, renderer.LastDoc.Citations)
	assert.Contains(t, res.XML, "<bold>Smart Support</bold> - Customer: Faster answers")
}

func TestReportUsecase_Generate_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		renderFunc  func(doc *entity.Document) ([]byte, error)
		putFunc     func(ctx context.Context, key string, data []byte, contentType string) (string, error)
		expectedErr error
		expectPut   bool
	}{
		{
			name:        "render failure",
			renderFunc:  func(doc *entity.Document) ([]byte, error) { return nil, errors.New("font missing") },
			expectedErr: usecase.ErrRenderFailed,
		},
		{
			name: "upload failure",
			putFunc: func(ctx context.Context, key string, data []byte, contentType string) (string, error) {
				return "", errors.New("access denied")
			},
			expectedErr: usecase.ErrUploadFailed,
			expectPut:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			model := &mockModel{ComposeFunc: func(ctx context.Context, prompt string) (string, error) { return completeReport(), nil }}
			store := &mockStore{PutFunc: tc.putFunc}
			status := &recordingStatus{}
			uc := usecase.NewReportUsecase(model, &mockRenderer{RenderFunc: tc.renderFunc}, store, status)

			res, err := uc.Generate(context.Background(), input())

			assert.Nil(t, res)
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Equal(t, tc.expectPut, store.PutCalls == 1)
			assert.Equal(t, statusentity.CheckpointError, status.checkpoints[len(status.checkpoints)-1])
		})
	}
}

func TestReportUsecase_Generate_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	model := &mockModel{ComposeFunc: func(ctx context.Context, prompt string) (string, error) {
		cancel()
		return "", ctx.Err()
	}}
	renderer := &mockRenderer{}
	status := &recordingStatus{}
	uc := usecase.NewReportUsecase(model, renderer, &mockStore{}, status)

	_, err := uc.Generate(ctx, input())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, model.ComposeCalls)
	assert.Zero(t, renderer.RenderCalls)
	assert.Equal(t, statusentity.CheckpointError, status.checkpoints[len(status.checkpoints)-1])
}

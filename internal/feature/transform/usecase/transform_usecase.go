// Package usecase は transform リクエストのオーケストレーションを実装します。
// research -> generate -> report の各ステージを順に呼び出し、
// 進捗の記録・重複実行の抑止・結果キャッシュを担います。
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	reportusecase "advisor_backend/internal/feature/report/usecase"
	researchentity "advisor_backend/internal/feature/research/domain/entity"
	researchusecase "advisor_backend/internal/feature/research/usecase"
	statusentity "advisor_backend/internal/feature/status/domain/entity"
	"advisor_backend/internal/feature/transform/domain/entity"
	usecasegenentity "advisor_backend/internal/feature/usecasegen/domain/entity"
	usecasegenusecase "advisor_backend/internal/feature/usecasegen/usecase"
)

// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。

// DocumentParser はアップロード資料のテキスト抽出を抽象化します。
type DocumentParser interface {
	ParseAll(ctx context.Context, urls []string) []researchentity.Document
}

// FileChecker はリクエストで指定されたファイルURLが読み取り可能かを判定します。
type FileChecker interface {
	Check(rawURL string) error
}

// Researcher は企業リサーチのステージです。
type Researcher interface {
	Research(ctx context.Context, in researchusecase.Input) (*researchentity.Findings, error)
}

// Generator はプロファイル抽出とユースケース生成のステージです。
type Generator interface {
	ExtractProfile(ctx context.Context, in usecasegenusecase.Input) (usecasegenentity.CompanyProfile, error)
	Generate(ctx context.Context, profile usecasegenentity.CompanyProfile, in usecasegenusecase.Input) (*usecasegenusecase.Result, error)
}

// Reporter はレポート生成のステージです。
type Reporter interface {
	Generate(ctx context.Context, in reportusecase.Input) (*reportusecase.Result, error)
}

// StatusTracker はチェックポイントの記録と参照を抽象化します。
type StatusTracker interface {
	Update(ctx context.Context, sessionID string, cp statusentity.Checkpoint, p statusentity.Progress) *statusentity.Record
	Current(ctx context.Context, sessionID string) (*statusentity.Record, error)
}

// SessionStore は start の結果を保存します。
type SessionStore interface {
	Save(ctx context.Context, s *entity.Session) error
	// Find returns ErrSessionNotFound when the session does not exist.
	Find(ctx context.Context, sessionID string) (*entity.Session, error)
	// FindByCompany matches the name case-insensitively and returns the newest session first.
	FindByCompany(ctx context.Context, companyName string) ([]entity.Session, error)
}

// ResultCache stores serialized responses. Entries expire at the end of the UTC day.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// InflightGuard suppresses concurrent processing of identical requests.
type InflightGuard interface {
	Acquire(ctx context.Context, sessionKey, sessionID string) (bool, error)
	// Release clears the guard only while sessionID still holds it.
	Release(ctx context.Context, sessionKey, sessionID string) error
	Holder(ctx context.Context, sessionKey string) (string, error)
}

// Dependencies groups the collaborators of the orchestrator.
type Dependencies struct {
	Documents DocumentParser
	// Files is optional. When nil, file urls are not checked before parsing.
	Files     FileChecker
	Research  Researcher
	Generator Generator
	Reporter  Reporter
	Status    StatusTracker
	Sessions  SessionStore
	Cache     ResultCache
	Inflight  InflightGuard
}

type transformUsecase struct {
	documents DocumentParser
	files     FileChecker
	research  Researcher
	generator Generator
	reporter  Reporter
	status    StatusTracker
	sessions  SessionStore
	cache     ResultCache
	inflight  InflightGuard
	now       func() time.Time
	newID     func() string
}

// NewTransformUsecase はtransformUsecaseの新しいインスタンスを生成します。
func NewTransformUsecase(d Dependencies) *transformUsecase {
	return &transformUsecase{
		documents: d.Documents,
		files:     d.Files,
		research:  d.Research,
		generator: d.Generator,
		reporter:  d.Reporter,
		status:    d.Status,
		sessions:  d.Sessions,
		cache:     d.Cache,
		inflight:  d.Inflight,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// cachedResult is the value stored in the result cache.
type cachedResult struct {
	CachedAt time.Time        `json:"cached_at"`
	Response *entity.Response `json:"response"`
}

// Process はリクエストを検証し、ステータス照会・キャッシュ参照・オーケストレーションのいずれかで応答します。
// クライアント起因のエラーは *RequestError として返されます。
func (u *transformUsecase) Process(ctx context.Context, req entity.Request) (*entity.Response, error) {
	req.Normalize(u.newID)
	if err := validate(&req); err != nil {
		return nil, err
	}
	if err := u.checkFiles(req.Files); err != nil {
		return nil, err
	}

	if req.IsStatusPoll() {
		return u.pollStatus(ctx, req.SessionID)
	}

	cacheable := req.Action == entity.ActionStart || req.Action == entity.ActionSelect
	key := CacheKey(&req)
	if cacheable {
		if resp, cachedAt, ok := u.lookup(ctx, key); ok {
			slog.Info("serving cached result", "session_id", resp.SessionID, "cache_key", key, "action", req.Action)
			resp.Cache = &entity.CacheInfo{Hit: true, CachedAt: cachedAt, CacheKey: key}
			return resp, nil
		}
	}

	resp, err := u.orchestrate(ctx, req)
	if err != nil {
		return nil, err
	}
	if cacheable && resp.Status != entity.StatusError && resp.Status != entity.StatusInProgress {
		u.store(ctx, key, resp)
	}
	return resp, nil
}

func validate(req *entity.Request) error {
	switch req.Action {
	case entity.ActionStart, entity.ActionSelect, entity.ActionFetch:
	default:
		return requestErrorf(ErrUnknownAction, "Unknown action: %s", req.Action)
	}
	if req.Action == entity.ActionFetch && !slices.Contains(entity.FetchTypes, req.FetchType) {
		return requestErrorf(ErrInvalidFetchType, "Invalid fetch_type: %s. Valid types: %s",
			req.FetchType, strings.Join(entity.FetchTypes, ", "))
	}
	if req.IsStatusPoll() {
		if req.SessionID == "" {
			return requestErrorf(ErrInvalidRequest, "session_id is required for status fetch")
		}
		return nil
	}
	if req.CompanyName == "" {
		return requestErrorf(ErrInvalidRequest, "company_name is required")
	}
	return nil
}

// checkFiles rejects file urls the document reader would refuse, before any work starts.
func (u *transformUsecase) checkFiles(files []string) error {
	if u.files == nil {
		return nil
	}
	for _, f := range files {
		if err := u.files.Check(f); err != nil {
			slog.Warn("rejected file url", "url", f, "error", err)
			return &RequestError{Err: ErrInvalidFileURL, Msg: fmt.Sprintf("File url is not allowed: %s", f)}
		}
	}
	return nil
}

// pollStatus never fails: a status store error is reported as an unknown record.
func (u *transformUsecase) pollStatus(ctx context.Context, sessionID string) (*entity.Response, error) {
	rec, err := u.status.Current(ctx, sessionID)
	if err != nil {
		// 状態ストアの障害はポーリングを止めず unknown として返す
		slog.Warn("failed to load status record", "session_id", sessionID, "error", err)
		rec = &statusentity.Record{SessionID: sessionID, CurrentStatus: statusentity.CheckpointUnknown}
	}
	polling := rec.PollingRecommended()
	return &entity.Response{
		Status:             entity.StatusCheck,
		SessionID:          sessionID,
		CurrentStatus:      rec,
		PollingRecommended: &polling,
		NextPollSeconds:    entity.DefaultPollSeconds,
	}, nil
}

// orchestrate runs one start or select request under the in-flight guard, or serves a fetch.
func (u *transformUsecase) orchestrate(ctx context.Context, req entity.Request) (*entity.Response, error) {
	if req.Action == entity.ActionFetch {
		return u.fetch(ctx, req)
	}

	u.status.Update(ctx, req.SessionID, statusentity.CheckpointInitiated, statusentity.Progress{
		Details: fmt.Sprintf("Processing %s for %s", req.Action, req.CompanyName),
		Extra: map[string]any{
			"company_name":           req.CompanyName,
			"company_url":            req.CompanyURL,
			"action":                 string(req.Action),
			"project_id":             req.ProjectID,
			"user_id":                req.UserID,
			"files_provided":         len(req.Files),
			"custom_prompt_provided": req.Prompt != "",
		},
	})

	var pc *researchentity.PromptContext
	if req.Prompt != "" {
		u.status.Update(ctx, req.SessionID, statusentity.CheckpointCustomPromptProcessing, statusentity.Progress{
			Details: "Analyzing custom prompt",
			Extra:   map[string]any{"prompt_length": len(req.Prompt)},
		})
		pc = researchusecase.ProcessPrompt(req.Prompt, req.CompanyName, fmt.Sprintf("Industry: %s company analysis", req.CompanyName))
		slog.Info("custom prompt processed", "session_id", req.SessionID, "context_type", pc.ContextType, "focus_areas", len(pc.FocusAreas))
	}

	sessionKey := SessionKey(&req)
	acquired, err := u.inflight.Acquire(ctx, sessionKey, req.SessionID)
	if err != nil {
		// ガードが使えなくても処理は続行する
		slog.Warn("inflight guard unavailable", "session_id", req.SessionID, "error", err)
		acquired = true
	}
	if !acquired {
		return u.inProgress(ctx, req, sessionKey), nil
	}
	defer func() {
		if err := u.inflight.Release(context.WithoutCancel(ctx), sessionKey, req.SessionID); err != nil {
			slog.Warn("failed to release inflight guard", "session_id", req.SessionID, "error", err)
		}
	}()

	var resp *entity.Response
	switch req.Action {
	case entity.ActionStart:
		resp, err = u.start(ctx, req, pc, sessionKey)
	case entity.ActionSelect:
		resp, err = u.selectUseCases(ctx, req)
	}
	if err != nil {
		slog.Error("transform failed", "session_id", req.SessionID, "action", req.Action, "error", err)
		u.status.Update(context.WithoutCancel(ctx), req.SessionID, statusentity.CheckpointError, statusentity.Progress{
			Details: err.Error(),
			Extra:   map[string]any{"error_type": ErrorType(err)},
		})
		return nil, err
	}

	final := statusentity.CheckpointCompleted
	if resp.Status == entity.StatusUseCasesGenerated && resp.ReportURL == "" {
		final = statusentity.CheckpointUseCasesGenerated
	}
	rec := u.status.Update(ctx, req.SessionID, final, statusentity.Progress{
		Details: fmt.Sprintf("%s finished for %s", req.Action, req.CompanyName),
		Extra:   map[string]any{"report_available": resp.ReportURL != ""},
	})

	completedAt := u.now().UTC()
	resp.SessionKey = sessionKey
	resp.SessionID = req.SessionID
	resp.ProjectID = req.ProjectID
	resp.UserID = req.UserID
	resp.ProcessingCompletedAt = &completedAt
	resp.StatusTracking = rec
	return resp, nil
}

func (u *transformUsecase) inProgress(ctx context.Context, req entity.Request, sessionKey string) *entity.Response {
	pollID := req.SessionID
	if holder, err := u.inflight.Holder(ctx, sessionKey); err == nil && holder != "" {
		pollID = holder
	}
	slog.Info("duplicate request rejected", "session_id", req.SessionID, "running_session_id", pollID)
	return &entity.Response{
		Status:     entity.StatusInProgress,
		Message:    "Request with identical payload is already being processed",
		SessionKey: sessionKey,
		SessionID:  pollID,
		ProjectID:  req.ProjectID,
		UserID:     req.UserID,
		PollingInfo: &entity.PollingInfo{
			PollAction:          string(entity.ActionFetch),
			PollFetchType:       entity.FetchStatus,
			PollIntervalSeconds: entity.DefaultPollSeconds,
			SessionID:           pollID,
		},
	}
}

// lookup returns a copy of the cached response for key, if any. Cache failures count as misses.
func (u *transformUsecase) lookup(ctx context.Context, key string) (*entity.Response, time.Time, bool) {
	data, ok, err := u.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("result cache read failed", "cache_key", key, "error", err)
		return nil, time.Time{}, false
	}
	if !ok {
		return nil, time.Time{}, false
	}
	var cr cachedResult
	if err := json.Unmarshal(data, &cr); err != nil || cr.Response == nil {
		slog.Warn("discarding corrupted cache entry", "cache_key", key, "error", err)
		return nil, time.Time{}, false
	}
	return cr.Response, cr.CachedAt, true
}

func (u *transformUsecase) store(ctx context.Context, key string, resp *entity.Response) {
	data, err := json.Marshal(cachedResult{CachedAt: u.now().UTC(), Response: resp})
	if err != nil {
		slog.Warn("failed to encode cache entry", "cache_key", key, "error", err)
		return
	}
	if err := u.cache.Set(ctx, key, data); err != nil {
		slog.Warn("result cache write failed", "cache_key", key, "error", err)
	}
}

// Session returns the stored result of a start run.
func (u *transformUsecase) Session(ctx context.Context, sessionID string) (*entity.Session, error) {
	s, err := u.sessions.Find(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return nil, err
	}
	return s, nil
}

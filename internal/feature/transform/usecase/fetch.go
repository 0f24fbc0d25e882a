package usecase

import (
	"context"
	"fmt"
	"strings"

	"advisor_backend/internal/feature/transform/domain/entity"
)

// fetch serves the read-only fetch types. Status polls are handled before the cache in Process.
func (u *transformUsecase) fetch(ctx context.Context, req entity.Request) (*entity.Response, error) {
	switch req.FetchType {
	case entity.FetchUseCases:
		return u.fetchUseCases(ctx, req)
	case entity.FetchReports:
		return u.fetchReports(ctx, req)
	case entity.FetchAll:
		return u.fetchAll(ctx, req)
	}
	return nil, requestErrorf(ErrInvalidFetchType, "Invalid fetch_type: %s. Valid types: %s",
		req.FetchType, strings.Join(entity.FetchTypes, ", "))
}

// fetchUseCases returns the newest session of the company, else the cached start result.
func (u *transformUsecase) fetchUseCases(ctx context.Context, req entity.Request) (*entity.Response, error) {
	sessions, err := u.sessions.FindByCompany(ctx, req.CompanyName)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	if len(sessions) > 0 {
		s := sessions[0]
		return &entity.Response{
			Status:              entity.StatusFoundUseCases,
			Message:             fmt.Sprintf("Retrieved cached transformation use cases for %s%s", req.CompanyName, enhancementNote(&s)),
			SessionID:           s.SessionID,
			CompanyName:         req.CompanyName,
			CompanyURL:          req.CompanyURL,
			CompanyProfile:      companyInfo(s.Profile),
			UseCases:            s.LegacyUseCases,
			AvailableUseCaseIDs: s.UseCaseIDs(),
			TotalUseCases:       len(s.UseCases),
			ReportURL:           s.ReportURL,
			Enhancement:         enhancement(&s),
			NextAction:          string(entity.ActionSelect),
		}, nil
	}

	key := CacheKey(&entity.Request{CompanyName: req.CompanyName, CompanyURL: req.CompanyURL, Action: entity.ActionStart})
	if cached, cachedAt, ok := u.lookup(ctx, key); ok && cached.Status == entity.StatusUseCasesGenerated {
		return &entity.Response{
			Status:      entity.StatusFoundInCache,
			Message:     fmt.Sprintf("Retrieved cached data from cache for %s", req.CompanyName),
			CompanyName: req.CompanyName,
			CompanyURL:  req.CompanyURL,
			CachedData:  cached,
			Cache:       &entity.CacheInfo{Hit: true, CachedAt: cachedAt, CacheKey: key},
		}, nil
	}

	return &entity.Response{
		Status:      entity.StatusNoCachedData,
		Message:     fmt.Sprintf("No cached transformation use cases found for %s", req.CompanyName),
		CompanyName: req.CompanyName,
		CompanyURL:  req.CompanyURL,
		NextAction:  string(entity.ActionStart),
	}, nil
}

// fetchReports lists the reports generated for the company name and URL, newest first.
func (u *transformUsecase) fetchReports(ctx context.Context, req entity.Request) (*entity.Response, error) {
	sessions, err := u.sessions.FindByCompany(ctx, req.CompanyName)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	var reports []entity.ReportSummary
	for _, s := range sessions {
		if s.ReportURL == "" || !strings.EqualFold(s.CompanyURL, req.CompanyURL) {
			continue
		}
		reports = append(reports, entity.ReportSummary{
			SessionID:           s.SessionID,
			ReportURL:           s.ReportURL,
			CompanyName:         s.CompanyName,
			CompanyURL:          s.CompanyURL,
			UseCaseCount:        len(s.UseCases),
			AvailableUseCaseIDs: s.UseCaseIDs(),
			FilesProcessed:      s.FilesProcessed,
			CustomContextUsed:   s.Prompt.Active(),
			CreatedAt:           s.CreatedAt,
		})
	}

	if len(reports) == 0 {
		return &entity.Response{
			Status:      entity.StatusNoReports,
			Message:     fmt.Sprintf("No consolidated reports found for %s", req.CompanyName),
			CompanyName: req.CompanyName,
			CompanyURL:  req.CompanyURL,
			NextAction:  string(entity.ActionStart),
		}, nil
	}
	return &entity.Response{
		Status:      entity.StatusFoundReports,
		Message:     fmt.Sprintf("Retrieved %d consolidated report(s) for %s", len(reports), req.CompanyName),
		CompanyName: req.CompanyName,
		CompanyURL:  req.CompanyURL,
		ReportURL:   reports[0].ReportURL,
		Reports:     reports,
	}, nil
}

// fetchAll summarises every session of the company, newest first.
func (u *transformUsecase) fetchAll(ctx context.Context, req entity.Request) (*entity.Response, error) {
	sessions, err := u.sessions.FindByCompany(ctx, req.CompanyName)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	if len(sessions) == 0 {
		return &entity.Response{
			Status:      entity.StatusNoCachedData,
			Message:     fmt.Sprintf("No cached transformation data found for %s", req.CompanyName),
			CompanyName: req.CompanyName,
			CompanyURL:  req.CompanyURL,
			NextAction:  string(entity.ActionStart),
		}, nil
	}

	summaries := make([]entity.SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, entity.SessionSummary{
			SessionID:          s.SessionID,
			CreatedAt:          s.CreatedAt,
			HasUseCases:        len(s.UseCases) > 0,
			HasReport:          s.ReportURL != "",
			UseCaseCount:       len(s.UseCases),
			SelectedUseCaseIDs: s.SelectedUseCaseIDs,
			ReportURL:          s.ReportURL,
			FilesProcessed:     s.FilesProcessed,
			CustomContextUsed:  s.Prompt.Active(),
			SuccessfulScrapes:  s.SuccessfulScrapes,
		})
	}
	return &entity.Response{
		Status:      entity.StatusFoundData,
		Message:     fmt.Sprintf("Retrieved all cached transformation data for %s (%d sessions)", req.CompanyName, len(sessions)),
		SessionID:   sessions[0].SessionID,
		CompanyName: req.CompanyName,
		CompanyURL:  req.CompanyURL,
		Sessions:    summaries,
	}, nil
}

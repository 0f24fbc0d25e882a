package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	statusentity "advisor_backend/internal/feature/status/domain/entity"
	"advisor_backend/internal/feature/transform/domain/entity"
)

// selectUseCases は start 済みセッションのユースケースから選択を確定します。
// 存在しないIDは無視し、有効なIDが1件もなければエラーにします。
func (u *transformUsecase) selectUseCases(ctx context.Context, req entity.Request) (*entity.Response, error) {
	if len(req.SelectedUseCaseIDs) == 0 {
		return nil, requestErrorf(ErrNoValidUseCases, "No transformation use cases selected")
	}

	u.status.Update(ctx, req.SessionID, statusentity.CheckpointAssessmentStarted, statusentity.Progress{
		Details: fmt.Sprintf("Processing %d selected use cases", len(req.SelectedUseCaseIDs)),
		Extra: map[string]any{
			"selected_use_cases": len(req.SelectedUseCaseIDs),
			"use_case_ids":       req.SelectedUseCaseIDs,
		},
	})

	sess, err := u.sessions.Find(ctx, req.SessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, requestErrorf(ErrSessionNotFound, `Session not found. Please start with action: "start"`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	available := sess.UseCaseIDs()
	var valid []string
	for _, id := range req.SelectedUseCaseIDs {
		if slices.Contains(available, id) && !slices.Contains(valid, id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, requestErrorf(ErrNoValidUseCases, "No valid transformation use case IDs. Available IDs: %s", strings.Join(available, ", "))
	}

	var selected []entity.LegacyUseCase
	for _, uc := range sess.LegacyUseCases {
		if slices.Contains(valid, uc.ID) {
			selected = append(selected, uc)
		}
	}

	sess.SelectedUseCaseIDs = valid
	sess.UpdatedAt = u.now().UTC()
	if err := u.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save selection: %w", err)
	}

	return &entity.Response{
		Status:             entity.StatusCompleted,
		Message:            fmt.Sprintf("Selected %d of %d transformation use cases for %s", len(valid), len(available), sess.CompanyName),
		CompanyName:        sess.CompanyName,
		CompanyURL:         sess.CompanyURL,
		CompanyProfile:     companyInfo(sess.Profile),
		SelectedUseCaseIDs: valid,
		SelectedUseCases:   selected,
		ReportURL:          sess.ReportURL,
		Enhancement:        enhancement(sess),
	}, nil
}

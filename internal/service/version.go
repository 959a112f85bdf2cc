package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"promptbox/internal/config"
	"promptbox/internal/domain"
	"promptbox/internal/domain/models"
	"promptbox/internal/domain/repositories"
	"promptbox/internal/domain/services"
)

// versionService implements the VersionService interface
type versionService struct {
	versionRepo repositories.VersionRepository
	promptRepo  repositories.PromptRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewVersionService creates a new version service
func NewVersionService(
	versionRepo repositories.VersionRepository,
	promptRepo repositories.PromptRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.VersionService {
	return &versionService{
		versionRepo: versionRepo,
		promptRepo:  promptRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Append records a new snapshot as the prompt's next version. Content is not
// validated: an empty draft is a legitimate save, and saving the same content
// twice creates two distinct versions (the history is a log of saves, not a
// set of distinct contents). The version insert and the prompt's updated_at
// bump commit together.
func (s *versionService) Append(ctx context.Context, promptID string, req *services.CreateVersionRequest) (*models.Version, error) {
	if req.Changelog != nil {
		if err := validation.Validate(*req.Changelog, validation.Length(0, config.MaxChangelogLength)); err != nil {
			return nil, fmt.Errorf("%w: changelog: %v", domain.ErrValidation, err)
		}
	}

	if _, err := s.promptRepo.GetByID(ctx, promptID); err != nil {
		return nil, err
	}

	version := &models.Version{
		PromptID:  promptID,
		Content:   req.Content,
		Changelog: req.Changelog,
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.versionRepo.Append(ctx, version); err != nil {
			return err
		}
		return s.promptRepo.Touch(ctx, promptID, time.Now())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("version appended",
		"prompt_id", promptID,
		"version_num", version.Number,
	)

	return version, nil
}

// List retrieves a prompt's versions, newest first
func (s *versionService) List(ctx context.Context, promptID string) ([]models.Version, error) {
	if _, err := s.promptRepo.GetByID(ctx, promptID); err != nil {
		return nil, err
	}
	return s.versionRepo.ListByPrompt(ctx, promptID)
}

// Restore returns the content of the given version. It is read-only: the
// caller stages the content as its working draft and must save explicitly
// for the restored content to become a new version.
func (s *versionService) Restore(ctx context.Context, versionID string) (string, error) {
	version, err := s.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		return "", err
	}
	return version.Content, nil
}

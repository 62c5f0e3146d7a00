package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/repository"
)

var (
	ErrSameAccount        = errors.New("cannot merge an account with itself")
	ErrAccountConstrained = repository.ErrAccountConstrained
)

type MergeAccountRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Account, error)
	Delete(ctx context.Context, id uint) error
}

type MergeSeasonRepository interface {
	FindParticipationByAccount(ctx context.Context, accountID uint) ([]domain.SeasonParticipation, error)
	UpdateParticipation(ctx context.Context, row domain.SeasonParticipation) (domain.SeasonParticipation, error)
	ReassignParticipation(ctx context.Context, id, newAccountID uint) error
	DeleteParticipation(ctx context.Context, id uint) error
}

type MergeReferenceRepository interface {
	RewriteReferences(ctx context.Context, field domain.ReferenceField, sourceID, targetID uint) (int64, error)
	CountReferences(ctx context.Context, field domain.ReferenceField, accountID uint) (int64, error)
}

type MergeNotifier interface {
	Send(to, subject, body string)
}

// MergeService consolidates two accounts: season stats are summed or
// reassigned, every account-bearing reference column is repointed, and
// the drained source account is deleted if nothing still constrains it.
//
// The steps run sequentially without a wrapping transaction. The season
// phase is fatal on error; the reference sweep is best-effort and a
// failed source delete still counts as a (partial) success.
type MergeService struct {
	accounts   MergeAccountRepository
	seasons    MergeSeasonRepository
	references MergeReferenceRepository
	notifier   MergeNotifier
}

func NewMergeService(accounts MergeAccountRepository, seasons MergeSeasonRepository, references MergeReferenceRepository, notifier MergeNotifier) *MergeService {
	return &MergeService{
		accounts:   accounts,
		seasons:    seasons,
		references: references,
		notifier:   notifier,
	}
}

func (s *MergeService) Merge(ctx context.Context, sourceID, targetID uint) (domain.MergeReport, error) {
	if sourceID == targetID {
		return domain.MergeReport{}, ErrSameAccount
	}

	source, err := s.accounts.FindByID(ctx, sourceID)
	if err != nil {
		return domain.MergeReport{}, fmt.Errorf("s.accounts.FindByID -> %w", err)
	}
	target, err := s.accounts.FindByID(ctx, targetID)
	if err != nil {
		return domain.MergeReport{}, fmt.Errorf("s.accounts.FindByID -> %w", err)
	}

	report := domain.NewMergeReport(sourceID, targetID)

	if err := s.mergeSeasonStats(ctx, sourceID, targetID, &report); err != nil {
		return domain.MergeReport{}, err
	}

	s.rewriteReferences(ctx, sourceID, targetID, &report)
	s.countLeftoverReferences(ctx, sourceID, &report)

	// The source profile holds no referenceable data any more, so a
	// delete blocked by a remaining constraint is not a failure.
	if err := s.accounts.Delete(ctx, sourceID); err != nil {
		if !errors.Is(err, repository.ErrAccountConstrained) {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("source account %d could not be deleted: %v", sourceID, err))
		}
		zap.L().Warn("merge: source profile preserved due to constraints",
			zap.Uint("source_id", sourceID), zap.Error(err))
	} else {
		report.SourceDeleted = true
	}

	if target.Email != "" && !target.Skeleton {
		s.notifier.Send(target.Email, "Accounts merged",
			fmt.Sprintf("The account %q has been merged into yours.", source.Name))
	}

	return report, nil
}

// mergeSeasonStats folds the source's per-season aggregates into the
// target. Overlapping seasons are summed into the target row, the
// source row deleted; disjoint seasons are reassigned untouched. Any
// error here aborts the whole merge.
func (s *MergeService) mergeSeasonStats(ctx context.Context, sourceID, targetID uint, report *domain.MergeReport) error {
	sourceRows, err := s.seasons.FindParticipationByAccount(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("s.seasons.FindParticipationByAccount -> %w", err)
	}
	if len(sourceRows) == 0 {
		return nil
	}

	targetRows, err := s.seasons.FindParticipationByAccount(ctx, targetID)
	if err != nil {
		return fmt.Errorf("s.seasons.FindParticipationByAccount -> %w", err)
	}

	targetBySeason := make(map[uint]domain.SeasonParticipation, len(targetRows))
	for _, row := range targetRows {
		targetBySeason[row.SeasonID] = row
	}

	for _, sourceRow := range sourceRows {
		targetRow, overlapping := targetBySeason[sourceRow.SeasonID]
		if overlapping {
			targetRow.Absorb(sourceRow)
			if _, err := s.seasons.UpdateParticipation(ctx, targetRow); err != nil {
				return fmt.Errorf("s.seasons.UpdateParticipation -> %w", err)
			}
			if err := s.seasons.DeleteParticipation(ctx, sourceRow.ID); err != nil {
				return fmt.Errorf("s.seasons.DeleteParticipation -> %w", err)
			}
			report.SeasonsMerged++
		} else {
			if err := s.seasons.ReassignParticipation(ctx, sourceRow.ID, targetID); err != nil {
				return fmt.Errorf("s.seasons.ReassignParticipation -> %w", err)
			}
			report.SeasonsReassigned++
		}
	}

	return nil
}

// rewriteReferences repoints every reference field from source to
// target. Each field is independent; a failure is logged and recorded
// as a warning without stopping the sweep.
func (s *MergeService) rewriteReferences(ctx context.Context, sourceID, targetID uint, report *domain.MergeReport) {
	for _, field := range domain.ReferenceFields() {
		updated, err := s.references.RewriteReferences(ctx, field, sourceID, targetID)
		if err != nil {
			zap.L().Warn("merge: reference rewrite failed",
				zap.String("field", field.String()),
				zap.Uint("source_id", sourceID),
				zap.Error(err))
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("failed to rewrite %s: %v", field, err))
			continue
		}
		if updated > 0 {
			report.ReferenceUpdates[field.String()] = updated
		}
	}
}

// countLeftoverReferences re-queries the swept fields for rows still
// pointing at the source. Diagnostic only; nothing is repaired here.
func (s *MergeService) countLeftoverReferences(ctx context.Context, sourceID uint, report *domain.MergeReport) {
	for _, field := range domain.ReferenceFields() {
		count, err := s.references.CountReferences(ctx, field, sourceID)
		if err != nil {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("failed to verify %s: %v", field, err))
			continue
		}
		if count > 0 {
			zap.L().Warn("merge: references to source remain",
				zap.String("field", field.String()),
				zap.Int64("count", count))
			report.Leftover[field.String()] = count
		}
	}
}

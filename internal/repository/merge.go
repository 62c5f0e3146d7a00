package repository

import (
	"context"
	"fmt"

	"github.com/riversidetc/club-api/internal/domain"
)

type MergeDAO interface {
	RewriteColumn(ctx context.Context, table, column string, sourceID, targetID uint) (int64, error)
	CountColumn(ctx context.Context, table, column string, accountID uint) (int64, error)
}

// MergeRepository exposes the reference sweep over the fixed
// table/column list to the merge orchestrator.
type MergeRepository struct {
	dao MergeDAO
}

func NewMergeRepository(dao MergeDAO) *MergeRepository {
	return &MergeRepository{
		dao: dao,
	}
}

func (r *MergeRepository) RewriteReferences(ctx context.Context, field domain.ReferenceField, sourceID, targetID uint) (int64, error) {
	updated, err := r.dao.RewriteColumn(ctx, field.Table, field.Column, sourceID, targetID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.RewriteColumn -> %w", err)
	}

	return updated, nil
}

func (r *MergeRepository) CountReferences(ctx context.Context, field domain.ReferenceField, accountID uint) (int64, error) {
	count, err := r.dao.CountColumn(ctx, field.Table, field.Column, accountID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountColumn -> %w", err)
	}

	return count, nil
}

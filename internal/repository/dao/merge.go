package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// MergeDAO issues the generic column rewrites used by the account merge
// sweep. Tables and columns come from the fixed reference-field list;
// identifiers are never taken from user input.
type MergeDAO struct {
	db *gorm.DB
}

func NewMergeDAO(db *gorm.DB) *MergeDAO {
	return &MergeDAO{
		db: db,
	}
}

// RewriteColumn repoints every row whose column equals sourceID at
// targetID and returns the number of rows touched.
func (d *MergeDAO) RewriteColumn(ctx context.Context, table, column string, sourceID, targetID uint) (int64, error) {
	result := d.db.WithContext(ctx).
		Table(table).
		Where(fmt.Sprintf("%s = ?", column), sourceID).
		Update(column, targetID)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// CountColumn counts the rows whose column still equals accountID. Used
// by the post-merge diagnostic pass.
func (d *MergeDAO) CountColumn(ctx context.Context, table, column string, accountID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Table(table).
		Where(fmt.Sprintf("%s = ?", column), accountID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

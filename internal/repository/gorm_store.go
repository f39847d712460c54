package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/yukikurage/list-task-api/internal/models"
	"gorm.io/gorm"
)

// GormCollection is a GORM implementation of Collection
type GormCollection[T any, PT recordPtr[T]] struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by db. db should be opened with
// TranslateError so unique violations surface as ErrDuplicateKey.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users: &GormCollection[models.User, *models.User]{db: db},
		Lists: &GormCollection[models.List, *models.List]{db: db},
		Tasks: &GormCollection[models.Task, *models.Task]{db: db},
	}
}

// Insert creates a new record
func (c *GormCollection[T, PT]) Insert(ctx context.Context, rec *T) error {
	PT(rec).SetID(NewID())
	if err := c.db.WithContext(ctx).Create(rec).Error; err != nil {
		return translateGormError(err)
	}
	return nil
}

// FindOne finds the first record matching filter
func (c *GormCollection[T, PT]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var rec T
	if err := where(c.db.WithContext(ctx), filter).First(&rec).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &rec, nil
}

// FindMany streams matching records row by row
func (c *GormCollection[T, PT]) FindMany(ctx context.Context, filter Filter) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		db := c.db.WithContext(ctx)
		rows, err := where(db.Model(new(T)), filter).Rows()
		if err != nil {
			yield(nil, translateGormError(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var rec T
			if err := db.ScanRows(rows, &rec); err != nil {
				yield(nil, fmt.Errorf("failed to scan row: %w", err))
				return
			}
			if !yield(&rec, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, translateGormError(err))
		}
	}
}

// Update patches the first record matching filter within a transaction
func (c *GormCollection[T, PT]) Update(ctx context.Context, filter Filter, patch Patch) (*T, error) {
	if err := checkPatch[T, PT](patch); err != nil {
		return nil, err
	}

	var updated T
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current T
		if err := where(tx, filter).First(&current).Error; err != nil {
			return err
		}

		id := PT(&current).GetID()
		if err := tx.Model(new(T)).Where(models.ColumnID+" = ?", id).Updates(map[string]any(patch)).Error; err != nil {
			return err
		}

		return tx.Where(models.ColumnID+" = ?", id).First(&updated).Error
	})
	if err != nil {
		return nil, translateGormError(err)
	}
	return &updated, nil
}

// DeleteOne deletes the first record matching filter
func (c *GormCollection[T, PT]) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	db := c.db.WithContext(ctx)

	var target T
	if err := where(db.Select(models.ColumnID), filter).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, translateGormError(err)
	}

	result := db.Where(models.ColumnID+" = ?", PT(&target).GetID()).Delete(new(T))
	if result.Error != nil {
		return 0, translateGormError(result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteMany deletes every record matching filter
func (c *GormCollection[T, PT]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	db := c.db.WithContext(ctx)
	if len(filter) == 0 {
		db = db.Session(&gorm.Session{AllowGlobalUpdate: true})
	}

	result := where(db, filter).Delete(new(T))
	if result.Error != nil {
		return 0, translateGormError(result.Error)
	}
	return result.RowsAffected, nil
}

func where(db *gorm.DB, filter Filter) *gorm.DB {
	if len(filter) == 0 {
		return db
	}
	return db.Where(map[string]any(filter))
}

func translateGormError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	default:
		return err
	}
}

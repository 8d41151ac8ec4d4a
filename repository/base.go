// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateKey is returned when a write violates a unique constraint
var ErrDuplicateKey = errors.New("duplicate key")

const pgUniqueViolation = "23505"

// BaseRepository provides common repository functionality with transaction support
type BaseRepository[T any] struct {
	DB *gorm.DB
}

// NewBaseRepository creates a new base repository instance
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{
		DB: db,
	}
}

// getDB returns the appropriate database connection (with or without transaction)
func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.DB.WithContext(ctx)
}

// getDBForWrite returns database connection with transaction for write operations
func (r *BaseRepository[T]) getDBForWrite(ctx context.Context) (*gorm.DB, bool, error) {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx, false, nil // Transaction already exists, don't commit
	}

	tx := r.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	return tx, true, nil
}

// ByID retrieves an entity by its primary key. A missing row yields (nil, nil).
func (r *BaseRepository[T]) ByID(ctx context.Context, id uint) (*T, error) {
	db := r.getDB(ctx)

	var entity T
	err := db.First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find entity by ID %d: %w", id, err)
	}

	return &entity, nil
}

// List retrieves all entities ordered by the given clause
func (r *BaseRepository[T]) List(ctx context.Context, orderBy string) ([]*T, error) {
	db := r.getDB(ctx)

	var entities []*T
	query := db
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if err := query.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}

	return entities, nil
}

// Save inserts a new entity
func (r *BaseRepository[T]) Save(ctx context.Context, entity *T) (err error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				err = db.Commit().Error
			}
		}()
	}

	err = db.Create(entity).Error
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to save entity: %w: %w", ErrDuplicateKey, err)
		}
		return fmt.Errorf("failed to save entity: %w", err)
	}

	return nil
}

// updateColumn sets a single column on the row with the given primary key and
// reports whether a row was affected.
func (r *BaseRepository[T]) updateColumn(ctx context.Context, id uint, column string, value any) (bool, error) {
	db := r.getDB(ctx)

	var entity T
	res := db.Model(&entity).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update %s of entity %d: %w", column, id, res.Error)
	}

	return res.RowsAffected > 0, nil
}

// WithTransaction executes a function within a database transaction
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(context.Context) error) (err error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			err = fmt.Errorf("panic in transaction: %v", r)
		}
	}()

	ctx = context.WithValue(ctx, TxContextKey, tx)

	if err := fn(ctx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to commit transaction: %w: %w", ErrDuplicateKey, err)
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IsDuplicateKey reports whether err was caused by a unique constraint violation
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey) || isUniqueViolation(err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"libraryhub/internal/db"
	"libraryhub/internal/db/query"
	apperrors "libraryhub/internal/errors"
)

// Store groups the repositories so several of them can share one transaction.
type Store interface {
	Users() UserRepository
	Books() BookRepository
	IssuedBooks() IssuedBookRepository
	Ping(ctx context.Context) error
	// WithTransaction runs fn with a Store bound to a single transaction.
	// Returning an error from fn rolls the transaction back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type store struct {
	db      *gorm.DB
	builder *query.Builder
	limit   uint
}

// NewStore creates a Store on db. limit caps the listing queries.
func NewStore(db *gorm.DB, builder *query.Builder, limit uint) Store {
	return &store{db: db, builder: builder, limit: limit}
}

func (s *store) Users() UserRepository {
	return NewUserRepository(s.db)
}

func (s *store) Books() BookRepository {
	return NewBookRepository(s.db, s.builder, s.limit)
}

func (s *store) IssuedBooks() IssuedBookRepository {
	return NewIssuedBookRepository(s.db, s.builder, s.limit)
}

func (s *store) Ping(ctx context.Context) error {
	return apperrors.Database(db.Ping(ctx, s.db))
}

// WithTransaction executes a function within a database transaction.
// Errors returned by fn pass through unchanged; failures to begin or commit
// become DatabaseErrors.
func (s *store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txStore := &store{db: tx, builder: s.builder, limit: s.limit}
		fnErr = fn(ctx, txStore)
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	return apperrors.Database(err)
}

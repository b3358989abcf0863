package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"libraryhub/internal/db/query"
	apperrors "libraryhub/internal/errors"
	"libraryhub/internal/model"
)

const issuedBookTable = "issuedBook"

// IssuedBookRepository defines loan persistence operations.
type IssuedBookRepository interface {
	Create(ctx context.Context, issued *model.IssuedBook) error
	Delete(ctx context.Context, id string) error
	FindByUserAndBook(ctx context.Context, userID, bookID string) (*model.IssuedBook, error)
	List(ctx context.Context) ([]model.IssuedBook, error)
	ListByUser(ctx context.Context, userID string) ([]model.IssuedBook, error)
	// ListOverdue returns loans whose return date is before today (YYYY-MM-DD).
	ListOverdue(ctx context.Context, today string) ([]model.IssuedBook, error)
}

type issuedBookRepository struct {
	db      *gorm.DB
	builder *query.Builder
	limit   uint
}

// NewIssuedBookRepository creates a new loan repository. List returns at most limit rows.
func NewIssuedBookRepository(db *gorm.DB, builder *query.Builder, limit uint) IssuedBookRepository {
	return &issuedBookRepository{db: db, builder: builder, limit: limit}
}

// Create inserts the loan, assigning an id when it has none.
func (r *issuedBookRepository) Create(ctx context.Context, issued *model.IssuedBook) error {
	if issued.ID == "" {
		issued.ID = uuid.New().String()
	}
	sql, args, err := r.builder.Insert(issuedBookTable, map[string]interface{}{
		"id":          issued.ID,
		"user_id":     issued.UserID,
		"book_id":     issued.BookID,
		"borrow_date": issued.BorrowDate,
		"return_date": issued.ReturnDate,
	})
	if err != nil {
		return err
	}
	_, err = exec(ctx, r.db, sql, args)
	return err
}

func (r *issuedBookRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.builder.Delete(issuedBookTable, query.Where{"id": id})
	if err != nil {
		return err
	}
	_, err = exec(ctx, r.db, sql, args)
	return err
}

// FindByUserAndBook returns the oldest loan of bookID held by userID, or nil.
func (r *issuedBookRepository) FindByUserAndBook(ctx context.Context, userID, bookID string) (*model.IssuedBook, error) {
	var issued model.IssuedBook
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("borrow_date ASC").
		First(&issued).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Database(err)
	}
	return &issued, nil
}

func (r *issuedBookRepository) List(ctx context.Context) ([]model.IssuedBook, error) {
	return r.selectMany(ctx, nil, r.limit)
}

func (r *issuedBookRepository) ListByUser(ctx context.Context, userID string) ([]model.IssuedBook, error) {
	return r.selectMany(ctx, query.Where{"user_id": userID}, 0)
}

func (r *issuedBookRepository) ListOverdue(ctx context.Context, today string) ([]model.IssuedBook, error) {
	loans := make([]model.IssuedBook, 0)
	if err := r.db.WithContext(ctx).
		Where("return_date < ?", today).
		Order("return_date ASC").
		Find(&loans).Error; err != nil {
		return nil, apperrors.Database(err)
	}
	return loans, nil
}

func (r *issuedBookRepository) selectMany(ctx context.Context, where query.Where, limit uint) ([]model.IssuedBook, error) {
	sql, args, err := r.builder.Select(issuedBookTable, nil, where, "borrow_date", limit)
	if err != nil {
		return nil, err
	}
	loans := make([]model.IssuedBook, 0)
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&loans).Error; err != nil {
		return nil, apperrors.Database(err)
	}
	return loans, nil
}

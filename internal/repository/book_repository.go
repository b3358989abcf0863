package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"libraryhub/internal/db/query"
	apperrors "libraryhub/internal/errors"
	"libraryhub/internal/model"
)

const (
	bookTable          = "book"
	colCopies          = "number_of_copies"
	colAvailableCopies = "number_of_available_books"
)

// BookRepository defines book persistence operations.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	// Update replaces title and author only.
	Update(ctx context.Context, book *model.Book) error
	// AddCopy adds one copy to the shelf. It reports false when no book has id.
	AddCopy(ctx context.Context, id string) (bool, error)
	// WithdrawCopy removes one copy that is not on loan. It reports false when
	// every copy is lent out or no book has id.
	WithdrawCopy(ctx context.Context, id string) (bool, error)
	// ReserveCopy takes one available copy. It reports false when none is left.
	ReserveCopy(ctx context.Context, id string) (bool, error)
	// ReleaseCopy gives a copy back. It reports false when every copy is already available.
	ReleaseCopy(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Book, error)
	FindByTitle(ctx context.Context, title string) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
}

type bookRepository struct {
	db      *gorm.DB
	builder *query.Builder
	limit   uint
}

// NewBookRepository creates a new book repository. List returns at most limit rows.
func NewBookRepository(db *gorm.DB, builder *query.Builder, limit uint) BookRepository {
	return &bookRepository{db: db, builder: builder, limit: limit}
}

func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	return apperrors.Database(r.db.WithContext(ctx).Create(book).Error)
}

func (r *bookRepository) Update(ctx context.Context, book *model.Book) error {
	sql, args, err := r.builder.Update(bookTable,
		map[string]interface{}{"title": book.Title, "author": book.Author},
		query.Where{"id": book.ID})
	if err != nil {
		return err
	}
	_, err = exec(ctx, r.db, sql, args)
	return err
}

func (r *bookRepository) AddCopy(ctx context.Context, id string) (bool, error) {
	sql, args, err := r.builder.Update(bookTable,
		map[string]interface{}{
			colCopies:          query.Add(colCopies, 1),
			colAvailableCopies: query.Add(colAvailableCopies, 1),
		},
		query.Where{"id": id})
	if err != nil {
		return false, err
	}
	n, err := exec(ctx, r.db, sql, args)
	return n == 1, err
}

func (r *bookRepository) WithdrawCopy(ctx context.Context, id string) (bool, error) {
	sql, args, err := r.builder.Update(bookTable,
		map[string]interface{}{
			colCopies:          query.Add(colCopies, -1),
			colAvailableCopies: query.Add(colAvailableCopies, -1),
		},
		query.Where{"id": id, colAvailableCopies: query.GreaterThan(0)})
	if err != nil {
		return false, err
	}
	n, err := exec(ctx, r.db, sql, args)
	return n == 1, err
}

// exec runs a built statement and returns the number of rows it touched.
func exec(ctx context.Context, db *gorm.DB, sql string, args []interface{}) (int64, error) {
	res := db.WithContext(ctx).Exec(sql, args...)
	if res.Error != nil {
		return 0, apperrors.Database(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *bookRepository) ReserveCopy(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Book{}).
		Where("id = ? AND "+colAvailableCopies+" > 0", id).
		Update(colAvailableCopies, gorm.Expr(colAvailableCopies+" - 1"))
	if res.Error != nil {
		return false, apperrors.Database(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *bookRepository) ReleaseCopy(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Book{}).
		Where("id = ? AND "+colAvailableCopies+" < "+colCopies, id).
		Update(colAvailableCopies, gorm.Expr(colAvailableCopies+" + 1"))
	if res.Error != nil {
		return false, apperrors.Database(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *bookRepository) Delete(ctx context.Context, id string) error {
	return apperrors.Database(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Book{}).Error)
}

// FindByID returns nil without error when no book has this id.
func (r *bookRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByTitle matches the title exactly and returns nil when absent.
func (r *bookRepository) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	return r.findOne(ctx, "title = ?", title)
}

func (r *bookRepository) findOne(ctx context.Context, cond string, arg interface{}) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Database(err)
	}
	return &book, nil
}

// List returns books ordered by title.
func (r *bookRepository) List(ctx context.Context) ([]model.Book, error) {
	sql, args, err := r.builder.Select(bookTable, nil, nil, "title", r.limit)
	if err != nil {
		return nil, err
	}
	books := make([]model.Book, 0)
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&books).Error; err != nil {
		return nil, apperrors.Database(err)
	}
	return books, nil
}

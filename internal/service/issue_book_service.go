package service

import (
	"context"
	"time"

	apperrors "libraryhub/internal/errors"
	"libraryhub/internal/model"
	"libraryhub/internal/repository"
)

// IssueBookService lends and takes back book copies.
type IssueBookService interface {
	IssueBook(ctx context.Context, userID, bookID, returnDate string) (*model.IssuedBook, error)
	ReturnIssueBook(ctx context.Context, userID, bookID string) error
	GetIssueBookByUserID(ctx context.Context, userID string) ([]model.IssuedBook, error)
	GetAllIssuedBooks(ctx context.Context) ([]model.IssuedBook, error)
	GetOverdueBooks(ctx context.Context, asOf time.Time) ([]model.IssuedBook, error)
}

type issueBookService struct {
	store repository.Store
	now   func() time.Time
}

// NewIssueBookService creates a new loan service.
func NewIssueBookService(store repository.Store) IssueBookService {
	return &issueBookService{store: store, now: time.Now}
}

func (s *issueBookService) today() string {
	return s.now().UTC().Format(model.DateLayout)
}

// IssueBook lends one copy of bookID to userID until returnDate. The loan row
// and the availability decrement are written in one transaction.
func (s *issueBookService) IssueBook(ctx context.Context, userID, bookID, returnDate string) (*model.IssuedBook, error) {
	var issued *model.IssuedBook

	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		book, err := tx.Books().FindByID(ctx, bookID)
		if err != nil {
			return err
		}
		if book == nil {
			return apperrors.ErrBookNotExists
		}
		if book.NumberOfAvailable <= 0 {
			return apperrors.ErrBookUnavailable
		}

		reserved, err := tx.Books().ReserveCopy(ctx, book.ID)
		if err != nil {
			return err
		}
		if !reserved {
			return apperrors.ErrBookUnavailable
		}

		loan := &model.IssuedBook{
			UserID:     userID,
			BookID:     book.ID,
			BorrowDate: s.today(),
			ReturnDate: returnDate,
		}
		if err := tx.IssuedBooks().Create(ctx, loan); err != nil {
			return err
		}
		issued = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issued, nil
}

// ReturnIssueBook closes one loan of bookID held by userID and frees the copy.
func (s *issueBookService) ReturnIssueBook(ctx context.Context, userID, bookID string) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		book, err := tx.Books().FindByID(ctx, bookID)
		if err != nil {
			return err
		}
		if book == nil {
			return apperrors.ErrBookNotExists
		}

		loan, err := tx.IssuedBooks().FindByUserAndBook(ctx, userID, book.ID)
		if err != nil {
			return err
		}
		if loan == nil {
			return apperrors.ErrLoanNotExists
		}

		// a false result means every copy is already on the shelf; the loan is still closed
		if _, err := tx.Books().ReleaseCopy(ctx, book.ID); err != nil {
			return err
		}
		return tx.IssuedBooks().Delete(ctx, loan.ID)
	})
}

func (s *issueBookService) GetIssueBookByUserID(ctx context.Context, userID string) ([]model.IssuedBook, error) {
	return s.store.IssuedBooks().ListByUser(ctx, userID)
}

func (s *issueBookService) GetAllIssuedBooks(ctx context.Context) ([]model.IssuedBook, error) {
	return s.store.IssuedBooks().List(ctx)
}

// GetOverdueBooks lists loans whose return date lies before asOf's day (UTC).
func (s *issueBookService) GetOverdueBooks(ctx context.Context, asOf time.Time) ([]model.IssuedBook, error) {
	return s.store.IssuedBooks().ListOverdue(ctx, asOf.UTC().Format(model.DateLayout))
}

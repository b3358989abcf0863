package service

import (
	"context"

	apperrors "libraryhub/internal/errors"
	"libraryhub/internal/model"
	"libraryhub/internal/repository"
)

// BookService manages the catalogue.
type BookService interface {
	AddBook(ctx context.Context, book *model.Book) (*model.Book, error)
	UpdateBookByID(ctx context.Context, bookID, title, author string) (*model.Book, error)
	RemoveBookByID(ctx context.Context, bookID string) (*model.Book, error)
	RemoveAllBookByID(ctx context.Context, bookID string) error
	GetAllBooks(ctx context.Context) ([]model.Book, error)
	GetBookByTitle(ctx context.Context, title string) (*model.Book, error)
}

type bookService struct {
	repo repository.BookRepository
}

// NewBookService creates a new book service.
func NewBookService(repo repository.BookRepository) BookService {
	return &bookService{repo: repo}
}

// AddBook catalogues a new title, or adds one physical copy when the title
// already exists.
func (s *bookService) AddBook(ctx context.Context, book *model.Book) (*model.Book, error) {
	existing, err := s.repo.FindByTitle(ctx, book.Title)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		if book.NumberOfCopies <= 0 {
			book.NumberOfCopies = 1
			book.NumberOfAvailable = 1
		}
		if err := s.repo.Create(ctx, book); err != nil {
			return nil, err
		}
		return book, nil
	}

	added, err := s.repo.AddCopy(ctx, existing.ID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, apperrors.ErrBookNotExists
	}
	return s.reload(ctx, existing.ID)
}

// UpdateBookByID replaces title and author. Copy counters are left alone.
func (s *bookService) UpdateBookByID(ctx context.Context, bookID, title, author string) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperrors.ErrBookNotExists
	}

	if title != book.Title {
		other, err := s.repo.FindByTitle(ctx, title)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, apperrors.ErrBookExists
		}
	}

	book.Title = title
	book.Author = author
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// RemoveBookByID withdraws one physical copy. Only a copy that is not on
// loan can be withdrawn.
func (s *bookService) RemoveBookByID(ctx context.Context, bookID string) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperrors.ErrBookNotExists
	}
	if book.NumberOfAvailable <= 0 {
		return nil, apperrors.ErrNoCopyToRemove
	}

	// the counters may have moved since the read; the update re-checks them
	withdrawn, err := s.repo.WithdrawCopy(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	if !withdrawn {
		return nil, apperrors.ErrNoCopyToRemove
	}
	return s.reload(ctx, book.ID)
}

// reload returns the stored counters after an in-place update.
func (s *bookService) reload(ctx context.Context, bookID string) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperrors.ErrBookNotExists
	}
	return book, nil
}

// RemoveAllBookByID deletes the title together with its loans.
func (s *bookService) RemoveAllBookByID(ctx context.Context, bookID string) error {
	book, err := s.repo.FindByID(ctx, bookID)
	if err != nil {
		return err
	}
	if book == nil {
		return apperrors.ErrBookNotExists
	}
	return s.repo.Delete(ctx, bookID)
}

func (s *bookService) GetAllBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.List(ctx)
}

func (s *bookService) GetBookByTitle(ctx context.Context, title string) (*model.Book, error) {
	book, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperrors.ErrBookNotExists
	}
	return book, nil
}

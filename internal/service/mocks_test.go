package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"libraryhub/internal/model"
	"libraryhub/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockBookRepository is a mock implementation of BookRepository.
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) AddCopy(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) WithdrawCopy(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) ReserveCopy(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) ReleaseCopy(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepository) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

// MockIssuedBookRepository is a mock implementation of IssuedBookRepository.
type MockIssuedBookRepository struct {
	mock.Mock
}

func (m *MockIssuedBookRepository) Create(ctx context.Context, issued *model.IssuedBook) error {
	args := m.Called(ctx, issued)
	return args.Error(0)
}

func (m *MockIssuedBookRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIssuedBookRepository) FindByUserAndBook(ctx context.Context, userID, bookID string) (*model.IssuedBook, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IssuedBook), args.Error(1)
}

func (m *MockIssuedBookRepository) List(ctx context.Context) ([]model.IssuedBook, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.IssuedBook), args.Error(1)
}

func (m *MockIssuedBookRepository) ListByUser(ctx context.Context, userID string) ([]model.IssuedBook, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.IssuedBook), args.Error(1)
}

func (m *MockIssuedBookRepository) ListOverdue(ctx context.Context, today string) ([]model.IssuedBook, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.IssuedBook), args.Error(1)
}

// MockStore hands out the mock repositories and runs transactions inline.
type MockStore struct {
	users *MockUserRepository
	books *MockBookRepository
	loans *MockIssuedBookRepository
	txns  int
}

func newMockStore() *MockStore {
	return &MockStore{
		users: new(MockUserRepository),
		books: new(MockBookRepository),
		loans: new(MockIssuedBookRepository),
	}
}

func (m *MockStore) Users() repository.UserRepository             { return m.users }
func (m *MockStore) Books() repository.BookRepository             { return m.books }
func (m *MockStore) IssuedBooks() repository.IssuedBookRepository { return m.loans }
func (m *MockStore) Ping(ctx context.Context) error               { return nil }

func (m *MockStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	m.txns++
	return fn(ctx, m)
}

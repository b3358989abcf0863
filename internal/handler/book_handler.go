package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"libraryhub/internal/model"
	"libraryhub/internal/service"
)

// BookHandler handles catalogue endpoints.
type BookHandler struct {
	bookService service.BookService
	log         zerolog.Logger
}

// NewBookHandler creates a new book handler.
func NewBookHandler(bookService service.BookService, log zerolog.Logger) *BookHandler {
	return &BookHandler{bookService: bookService, log: log}
}

// CreateBookRequest represents a request to catalogue a book.
type CreateBookRequest struct {
	Title  string `json:"title" validate:"required,max=255"`
	Author string `json:"author" validate:"required,max=255"`
}

func (r *CreateBookRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
}

// UpdateBookRequest represents a request to rename a book.
type UpdateBookRequest struct {
	BookID string `json:"book_id" validate:"required"`
	Title  string `json:"title" validate:"required,max=255"`
	Author string `json:"author" validate:"required,max=255"`
}

func (r *UpdateBookRequest) normalize() {
	r.BookID = strings.TrimSpace(r.BookID)
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
}

// AddBook godoc
// @Summary Add a book or one more copy of it
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookRequest true "Book data"
// @Success 201 {object} Envelope{data=model.Book}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/book [post]
func (h *BookHandler) AddBook(c echo.Context) error {
	var req CreateBookRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	book, err := h.bookService.AddBook(c.Request().Context(), model.NewBook(req.Title, req.Author))
	if err != nil {
		return err
	}

	h.log.Info().Str("book_id", book.ID).Int("copies", book.NumberOfCopies).Msg("book added")
	return success(c, http.StatusCreated, "book added successfully", book)
}

// UpdateBook godoc
// @Summary Update title and author of a book
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateBookRequest true "Book data"
// @Success 200 {object} Envelope{data=model.Book}
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/book [put]
func (h *BookHandler) UpdateBook(c echo.Context) error {
	var req UpdateBookRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	book, err := h.bookService.UpdateBookByID(c.Request().Context(), req.BookID, req.Title, req.Author)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "book updated successfully", book)
}

// RemoveBook godoc
// @Summary Withdraw one copy of a book
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param book_id path string true "Book ID"
// @Success 200 {object} Envelope{data=model.Book}
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/book/{book_id} [patch]
func (h *BookHandler) RemoveBook(c echo.Context) error {
	book, err := h.bookService.RemoveBookByID(c.Request().Context(), c.Param("book_id"))
	if err != nil {
		return err
	}

	h.log.Info().Str("book_id", book.ID).Int("copies", book.NumberOfCopies).Msg("book copy removed")
	return success(c, http.StatusOK, "book copy removed successfully", book)
}

// RemoveAllBook godoc
// @Summary Delete a book and its loans
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param book_id path string true "Book ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/book/{book_id} [delete]
func (h *BookHandler) RemoveAllBook(c echo.Context) error {
	bookID := c.Param("book_id")
	if err := h.bookService.RemoveAllBookByID(c.Request().Context(), bookID); err != nil {
		return err
	}

	h.log.Info().Str("book_id", bookID).Msg("book removed")
	return success(c, http.StatusOK, "book removed successfully", nil)
}

// GetBooks godoc
// @Summary List books, or look one up by exact title
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param title query string false "Exact title"
// @Success 200 {object} Envelope{data=[]model.Book}
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/book [get]
func (h *BookHandler) GetBooks(c echo.Context) error {
	ctx := c.Request().Context()

	if title := strings.TrimSpace(c.QueryParam("title")); title != "" {
		book, err := h.bookService.GetBookByTitle(ctx, title)
		if err != nil {
			return err
		}
		return success(c, http.StatusOK, "book fetched successfully", book)
	}

	books, err := h.bookService.GetAllBooks(ctx)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "books fetched successfully", books)
}

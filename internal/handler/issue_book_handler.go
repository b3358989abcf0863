package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"libraryhub/internal/auth"
	apperrors "libraryhub/internal/errors"
	"libraryhub/internal/model"
	"libraryhub/internal/service"
)

// IssueBookHandler handles loan endpoints.
type IssueBookHandler struct {
	issueService service.IssueBookService
	log          zerolog.Logger
}

// NewIssueBookHandler creates a new loan handler.
func NewIssueBookHandler(issueService service.IssueBookService, log zerolog.Logger) *IssueBookHandler {
	return &IssueBookHandler{issueService: issueService, log: log}
}

// IssueBookRequest represents a request to borrow a book.
type IssueBookRequest struct {
	BookID     string `json:"book_id" validate:"required"`
	ReturnDate string `json:"return_date" validate:"required,datetime=2006-01-02"`
}

func (r *IssueBookRequest) normalize() {
	r.BookID = strings.TrimSpace(r.BookID)
	r.ReturnDate = strings.TrimSpace(r.ReturnDate)
}

// IssueBook godoc
// @Summary Borrow a book
// @Tags book
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IssueBookRequest true "Loan data"
// @Success 201 {object} Envelope{data=model.IssuedBook}
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /book/issue-book [post]
func (h *IssueBookHandler) IssueBook(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return apperrors.ErrTokenMissing
	}

	var req IssueBookRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	loan, err := h.issueService.IssueBook(c.Request().Context(), principal.UserID, req.BookID, req.ReturnDate)
	if err != nil {
		return err
	}

	h.log.Info().Str("user_id", principal.UserID).Str("book_id", loan.BookID).Str("return_date", loan.ReturnDate).Msg("book issued")
	return success(c, http.StatusCreated, "book issued successfully", loan)
}

// ReturnBook godoc
// @Summary Return a borrowed book
// @Tags book
// @Produce json
// @Security BearerAuth
// @Param book_id path string true "Book ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /book/return-book/{book_id} [patch]
func (h *IssueBookHandler) ReturnBook(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return apperrors.ErrTokenMissing
	}

	bookID := c.Param("book_id")
	if err := h.issueService.ReturnIssueBook(c.Request().Context(), principal.UserID, bookID); err != nil {
		return err
	}

	h.log.Info().Str("user_id", principal.UserID).Str("book_id", bookID).Msg("book returned")
	return success(c, http.StatusOK, "book returned successfully", nil)
}

// GetIssuedBooks godoc
// @Summary List loans
// @Description Users see their own loans. Admins see every loan, or one user's with user_id.
// @Tags book
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "Filter by user (admin only)"
// @Success 200 {object} Envelope{data=[]model.IssuedBook}
// @Router /book/issue-book [get]
func (h *IssueBookHandler) GetIssuedBooks(c echo.Context) error {
	ctx := c.Request().Context()
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return apperrors.ErrTokenMissing
	}

	var (
		loans []model.IssuedBook
		err   error
	)
	switch userID := strings.TrimSpace(c.QueryParam("user_id")); {
	case principal.Role != model.RoleAdmin:
		loans, err = h.issueService.GetIssueBookByUserID(ctx, principal.UserID)
	case userID != "":
		loans, err = h.issueService.GetIssueBookByUserID(ctx, userID)
	default:
		loans, err = h.issueService.GetAllIssuedBooks(ctx)
	}
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "issued books fetched successfully", loans)
}

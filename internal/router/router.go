package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"libraryhub/docs"
	"libraryhub/internal/auth"
	"libraryhub/internal/config"
	"libraryhub/internal/handler"
	"libraryhub/internal/validators"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log zerolog.Logger,
	jwtService *auth.JWTService,
	tokens auth.TokenStoreInterface,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	issueBookHandler *handler.IssueBookHandler,
	healthHandler *handler.HealthHandler,
) error {
	v, err := validators.New()
	if err != nil {
		return err
	}
	e.Validator = &CustomValidator{validator: v}
	e.JSONSerializer = &JSONSerializer{}
	e.HTTPErrorHandler = HTTPErrorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.CORS())

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", healthHandler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authenticate := Authenticate(jwtService, tokens)

	user := e.Group("/user", authenticate)
	user.POST("/signup", userHandler.Signup)
	user.POST("/login", userHandler.Login)
	user.POST("/logout", userHandler.Logout)
	user.GET("/book", bookHandler.GetBooks)

	admin := e.Group("/admin", authenticate, AdminOnly())
	admin.POST("/book", bookHandler.AddBook)
	admin.PUT("/book", bookHandler.UpdateBook)
	admin.PATCH("/book/:book_id", bookHandler.RemoveBook)
	admin.DELETE("/book/:book_id", bookHandler.RemoveAllBook)

	book := e.Group("/book", authenticate)
	book.POST("/issue-book", issueBookHandler.IssueBook, UserOnly())
	book.PATCH("/return-book/:book_id", issueBookHandler.ReturnBook, UserOnly())
	book.GET("/issue-book", issueBookHandler.GetIssuedBooks)

	return nil
}

// publicRoutes are served without a token.
var publicRoutes = map[string]struct{}{
	http.MethodPost + " /user/login":  {},
	http.MethodPost + " /user/signup": {},
}

func isPublic(c echo.Context) bool {
	_, ok := publicRoutes[c.Request().Method+" "+c.Path()]
	return ok
}

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"libraryhub/internal/model"
	"libraryhub/internal/service"
	"libraryhub/internal/validators"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			// the schema is migrated when the command opens the database
			fmt.Fprintf(a.out, "schema up to date (%s)\n", a.cfg.Database.Driver)
			return nil
		},
	}
}

func newCreateAdminCmd(a *app) *cobra.Command {
	var name, email, year, branch string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			name = strings.TrimSpace(name)
			email = strings.ToLower(strings.TrimSpace(email))
			if !validators.IsNameValid(name) {
				return fmt.Errorf("name is not valid")
			}
			if !validators.IsEmailValid(email) {
				return fmt.Errorf("email is not valid")
			}
			if !validators.IsYearValid(year) {
				return fmt.Errorf("year is not valid")
			}
			if !validators.IsBranchValid(branch) {
				return fmt.Errorf("branch is not valid")
			}

			password, err := a.readPassword(fmt.Sprintf("Enter password for %s: ", email))
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			if !validators.IsPasswordValid(password) {
				return fmt.Errorf("password is not valid")
			}

			admin := &model.User{
				Name:     name,
				Email:    email,
				Password: password,
				Year:     year,
				Branch:   strings.ToUpper(branch),
				Role:     model.RoleAdmin,
			}
			if _, err := service.NewUserService(a.store.Users()).SignupUser(cmd.Context(), admin); err != nil {
				return err
			}

			a.log.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("admin created")
			fmt.Fprintf(a.out, "created admin %s (%s)\n", admin.Email, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "institutional email")
	cmd.Flags().StringVar(&year, "year", "4", "year of study")
	cmd.Flags().StringVar(&branch, "branch", "CS", "branch")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newBooksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List the catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := service.NewBookService(a.store.Books()).GetAllBooks(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tCOPIES\tAVAILABLE")
			for _, b := range books {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", b.ID, b.Title, b.Author, b.NumberOfCopies, b.NumberOfAvailable)
			}
			return w.Flush()
		},
	}
}

func newLoansCmd(a *app) *cobra.Command {
	var (
		userID  string
		overdue bool
	)

	cmd := &cobra.Command{
		Use:   "loans",
		Short: "List loans",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewIssueBookService(a.store)

			var (
				loans []model.IssuedBook
				err   error
			)
			switch {
			case overdue:
				loans, err = svc.GetOverdueBooks(cmd.Context(), time.Now())
			case userID != "":
				loans, err = svc.GetIssueBookByUserID(cmd.Context(), userID)
			default:
				loans, err = svc.GetAllIssuedBooks(cmd.Context())
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSER\tBOOK\tBORROWED\tDUE")
			for _, l := range loans {
				if userID != "" && l.UserID != userID {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", l.ID, l.UserID, l.BookID, l.BorrowDate, l.ReturnDate)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "only loans of this user id")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "only loans past their return date")
	return cmd
}

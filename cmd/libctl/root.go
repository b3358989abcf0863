package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"

	"libraryhub/internal/config"
	"libraryhub/internal/db"
	"libraryhub/internal/db/query"
	"libraryhub/internal/logger"
	"libraryhub/internal/repository"
)

// app holds what every subcommand needs once the root command has run.
type app struct {
	in  io.Reader
	out io.Writer

	configPath string
	cfg        *config.Config
	log        zerolog.Logger
	logCloser  io.Closer
	db         *gorm.DB
	store      repository.Store
}

// execute runs libctl with args and releases the database and log file
// whether or not the command succeeds.
func execute(in io.Reader, out io.Writer, args []string) error {
	a := &app{in: in, out: out}
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.Execute()
	if closeErr := a.close(); err == nil {
		err = closeErr
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	in, out := a.in, a.out

	root := &cobra.Command{
		Use:           "libctl",
		Short:         "Operator tasks for the library backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (defaults to CONFIG_FILE)")

	root.AddCommand(
		newMigrateCmd(a),
		newCreateAdminCmd(a),
		newBooksCmd(a),
		newLoansCmd(a),
	)
	return root
}

func (a *app) open() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// command output owns stdout, so logs go to stderr unless LOG_FILE is set
	if cfg.Log.File != "" {
		a.log, a.logCloser, err = logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	} else {
		a.log, err = logger.NewWithWriter(os.Stderr, logger.Config{Level: cfg.Log.Level, Format: "console"})
	}
	if err != nil {
		return err
	}

	a.db, err = db.Open(db.Config{
		Driver:   cfg.Database.Driver,
		Path:     cfg.Database.Path,
		DSN:      cfg.Database.DSN,
		LogLevel: "silent",
	})
	if err != nil {
		return err
	}
	if err := db.Migrate(a.db); err != nil {
		return err
	}

	a.store = repository.NewStore(a.db, query.New(db.Dialect(cfg.Database.Driver)), cfg.BookListLimit)
	return nil
}

func (a *app) close() error {
	if a.logCloser != nil {
		defer a.logCloser.Close()
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	a.db = nil
	return sqlDB.Close()
}

// readPassword reads a password with masking when stdin is a terminal and
// a plain line otherwise.
func (a *app) readPassword(prompt string) (string, error) {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

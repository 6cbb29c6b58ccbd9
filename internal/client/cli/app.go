package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dmitrijs2005/travelrisk/internal/client/api"
	"github.com/dmitrijs2005/travelrisk/internal/client/config"
	"github.com/dmitrijs2005/travelrisk/internal/client/notifications"
	"github.com/dmitrijs2005/travelrisk/internal/client/routegate"
	"github.com/dmitrijs2005/travelrisk/internal/client/services"
	"github.com/dmitrijs2005/travelrisk/internal/client/session"
	"github.com/dmitrijs2005/travelrisk/internal/client/storage"
	"github.com/dmitrijs2005/travelrisk/internal/common"
	"github.com/dmitrijs2005/travelrisk/internal/logging"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	closeLog func() error
	db       *sql.DB

	session      *session.Session
	notes        notifications.Store
	destinations services.DestinationService
	account      services.AccountService
	gate         *routegate.Gate

	reader *bufio.Reader
	out    io.Writer

	closeOnce sync.Once
	closeErr  error
}

// NewApp wires the client for an interactive terminal session.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, closeLog, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}
	a, err := newApp(ctx, c, logger, os.Stdin, os.Stdout)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	a.closeLog = closeLog
	return a, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}
	repo := storage.NewSQLiteRepository(db)

	apiClient := api.New(c.ServerBaseURL, c.RequestTimeout, logger)

	sess, err := session.New(ctx, session.NewTokenStore(repo), apiClient, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	notes, err := notifications.New(ctx, c.NotificationMode, notifications.Deps{
		Repo:    repo,
		Alerts:  apiClient,
		Session: sess,
		Logger:  logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:       c,
		logger:       logger,
		closeLog:     func() error { return nil },
		db:           db,
		session:      sess,
		notes:        notes,
		destinations: services.NewDestinationService(apiClient, sess),
		account:      services.NewAccountService(apiClient, sess),
		gate:         routegate.New(),
		reader:       bufio.NewReader(in),
		out:          out,
	}, nil
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to the Travel Risk Assessment client (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}

// Close stops background work and releases the database and the logger.
// Only the first call does any work.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		a.closeErr = errors.Join(a.notes.Close(), a.db.Close(), a.closeLog())
	})
	return a.closeErr
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	u := a.session.User()
	if u == nil {
		return ""
	}
	name := u.Email
	if name == "" {
		name = "signed in"
	}
	return fmt.Sprintf("(%s)", name)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// prompt reads one line through the getSimpleText seam.
func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

func (a *App) promptPassword(label string) (string, error) {
	pw, err := getPassword(a.reader, label, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

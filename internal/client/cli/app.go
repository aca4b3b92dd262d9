package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/example/uikart/internal/client/api"
	"github.com/example/uikart/internal/client/catalog"
	"github.com/example/uikart/internal/client/checkout"
	"github.com/example/uikart/internal/client/config"
	"github.com/example/uikart/internal/client/notify"
	"github.com/example/uikart/internal/client/purchase"
	"github.com/example/uikart/internal/client/repositories/credentials"
	"github.com/example/uikart/internal/client/session"
	"github.com/example/uikart/internal/filex"
	"github.com/example/uikart/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	api     api.Client
	session *session.Session
	catalog *catalog.Catalog
	buyer   *purchase.Coordinator
	notices *notify.Channel
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer
	close  func() error
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	log := logging.NewZerologLogger(zl)

	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		log.Error(ctx, "error preparing data directory", "error", err)
		return nil, err
	}

	db, err := credentials.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing credential store", "error", err)
		return nil, err
	}

	apiClient := api.New(c.APIBaseURL)
	store := credentials.NewSQLiteRepository(db)
	notices := notify.New(c.NoticeTTL)
	sess := session.New(apiClient, store, notices, log)
	cat := catalog.New(apiClient, sess, log)
	opener := checkout.NewTerminal(os.Stdin, os.Stdout)
	buyer := purchase.NewCoordinator(apiClient, sess, cat, notices, opener, log, c.StoreName, c.Currency)

	a := &App{
		config:  c,
		api:     apiClient,
		session: sess,
		catalog: cat,
		buyer:   buyer,
		notices: notices,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		close:   db.Close,
	}
	notices.SetListener(func(msg string) {
		color.New(color.FgRed).Fprintf(a.out, "! %s\n", msg)
	})
	return a, nil
}

// Run restores the previous session and hands control to the REPL. It blocks
// until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	// The session stays in the loading state until Initialize resolves;
	// no command is accepted before that.
	if err := a.session.Initialize(ctx); err != nil {
		a.log.Error(ctx, "session initialization failed", "error", err)
	}

	printlnFn("Welcome to uikart (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	if user := a.session.User(); user != nil {
		return "(" + user.Email + ")"
	}
	return "(anonymous)"
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

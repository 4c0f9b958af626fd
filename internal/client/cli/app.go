package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/collectivehq/collective/internal/client/api"
	"github.com/collectivehq/collective/internal/client/config"
	"github.com/collectivehq/collective/internal/client/guard"
	"github.com/collectivehq/collective/internal/client/localstore"
	"github.com/collectivehq/collective/internal/client/repositories/metadata"
	"github.com/collectivehq/collective/internal/client/services"
	"github.com/collectivehq/collective/internal/client/session"
	"github.com/collectivehq/collective/internal/client/tokens"
	"github.com/collectivehq/collective/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	client   api.Client
	sessions *session.Store
	guard    *guard.Guard

	profiles    *services.ProfileService
	events      *services.EventService
	benefits    *services.BenefitService
	library     *services.LibraryService
	memberships *services.MembershipService
	admin       *services.AdminService

	Mode   Mode
	reader *bufio.Reader
}

// NewApp wires the whole client together: local database, token store,
// HTTP client, session store and feature services. This is the one place
// that knows the concrete composition; everything else takes interfaces.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	db, err := localstore.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}

	meta := metadata.NewSQLiteRepository(db)
	tokenStore := tokens.NewMetadataStore(meta)

	httpClient := api.NewHTTPClient(c.ServerBaseURL, tokenStore, c.RequestTimeout, log)
	sessions := session.NewStore(meta, tokenStore, httpClient, log)

	// Terminal refresh failure signs the member out everywhere.
	httpClient.SetAuthLostHandler(func(ctx context.Context) {
		_ = sessions.Logout(ctx)
	})

	return &App{
		config:      c,
		log:         log,
		client:      httpClient,
		sessions:    sessions,
		guard:       guard.New(sessions, tokenStore),
		profiles:    services.NewProfileService(httpClient, sessions),
		events:      services.NewEventService(httpClient, sessions),
		benefits:    services.NewBenefitService(httpClient, sessions),
		library:     services.NewLibraryService(httpClient, sessions),
		memberships: services.NewMembershipService(httpClient, sessions),
		admin:       services.NewAdminService(httpClient, sessions),
		Mode:        ModeOnline,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		printlnFn("Switched to " + string(mode) + " mode")
	}
}

func (a *App) isLoggedIn() bool {
	return !a.sessions.Current().IsEmpty()
}

// Run resolves the route guard, starts the background watchers and enters
// the REPL. Blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	a.resolveGuard(ctx)

	go a.sessions.StartWatcher(ctx, a.config.StorageWatchInterval)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.repl(ctx)
}

// resolveGuard drives the session state machine before any screen shows:
// sign-in prompt when unauthorized, blocking profile completion when the
// profile has no name yet.
func (a *App) resolveGuard(ctx context.Context) {
	for {
		state, err := a.guard.Resolve(ctx)
		if err != nil {
			a.log.Warn(ctx, "session initialization failed", "error", err)
			printlnFn("Could not reach the server; sign in to continue.")
		}

		switch state {
		case guard.Unauthorized:
			printlnFn("Welcome to Collective. Please sign in (or type 'exit').")
			if !a.promptLogin(ctx) {
				return
			}
			continue

		case guard.NeedsProfileCompletion:
			printlnFn("Almost there — tell us your name to finish your profile.")
			if err := a.CompleteProfile(ctx); err != nil {
				a.log.Warn(ctx, "profile completion failed", "error", err)
			}
			continue

		default:
			return
		}
	}
}

// StartOnlineStatusWatcher periodically probes server reachability and flips
// the online/offline indicator shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := a.client.Ping(ctx); err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}

package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/theunsaid/draft-keeper/internal/config"
	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/internal/service"
	"github.com/theunsaid/draft-keeper/internal/tui"
)

// App runs the client: the login flow until a session unlocks, then the
// journal main loop, with the cache refresh job alive in between. Logging
// out returns to the login flow; quitting exits the process with the key
// store already cleared by the session service or by process death.
type App struct {
	services        *service.ClientServices
	tui             *tui.TUI
	refreshInterval time.Duration
	logger          *logger.Logger
}

func NewApp(services *service.ClientServices, ui *tui.TUI, cfg config.Client, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app requires services and a ui")
	}
	return &App{
		services:        services,
		tui:             ui,
		refreshInterval: cfg.RefreshInterval,
		logger:          log,
	}, nil
}

func (a *App) Run() error {
	ctx := context.Background()

	for {
		if err := a.tui.LoginFlow(ctx); err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return fmt.Errorf("login flow: %w", err)
		}

		// warm the offline cache; non-fatal when the server is flaky
		if err := a.services.DraftService.RefreshCache(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "cache refresh warning: %v\n", err)
		}

		a.services.CacheRefreshJob.Start(ctx, a.refreshInterval)

		logout, err := a.tui.MainLoop(ctx)
		a.services.CacheRefreshJob.Stop()
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}
		// logged out: the session service has already cleared the key
		// store and purged the cache, go back to the login flow
	}
}

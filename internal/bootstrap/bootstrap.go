package bootstrap

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	authinadapter "logbook/internal/modules/auth/adapter/in"
	authoutadapter "logbook/internal/modules/auth/adapter/out"
	authout "logbook/internal/modules/auth/port/out"
	authservice "logbook/internal/modules/auth/service"
	authusecase "logbook/internal/modules/auth/usecase"
	workloginadapter "logbook/internal/modules/worklog/adapter/in"
	worklogoutadapter "logbook/internal/modules/worklog/adapter/out"
	worklogin "logbook/internal/modules/worklog/port/in"
	worklogservice "logbook/internal/modules/worklog/service"
	worklogusecase "logbook/internal/modules/worklog/usecase"
	"logbook/internal/platform/clock"
	"logbook/internal/platform/config"
	"logbook/internal/platform/httpapi"
	"logbook/internal/platform/id"
	"logbook/internal/platform/logging"
	"logbook/internal/platform/schedule"
	uiapp "logbook/internal/ui/app"
)

// Options tunes the process-level pieces that differ between the TUI, the
// subcommands and tests.
type Options struct {
	Logger *zap.Logger
	// Out receives the login URL when the user is sent to log in. The TUI
	// leaves it nil so the alt screen is not written over.
	Out           io.Writer
	LaunchBrowser bool
	Clock         clock.Clock
	Scheduler     schedule.Scheduler
	// Env looks up the variables seeding the session store.
	Env func(string) (string, bool)
}

type App struct {
	Config     config.Config
	AuthCLI    authinadapter.CLIHandler
	AuthTUI    authinadapter.TUIHandler
	WorklogCLI workloginadapter.CLIHandler
	WorklogTUI workloginadapter.TUIHandler

	worklog   worklogin.Usecase
	scheduler schedule.Scheduler
	logger    *zap.Logger
	local     *authoutadapter.SQLiteLocalStore
}

func New(cfg config.Config, opts Options) (*App, error) {
	logger := logging.OrNop(opts.Logger)
	clk := opts.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = schedule.Real{}
	}
	env := opts.Env
	if env == nil {
		env = os.LookupEnv
	}
	ids := id.UUID{}

	local, err := authoutadapter.NewSQLiteLocalStore(cfg.StoragePath())
	if err != nil {
		return nil, fmt.Errorf("open local credential store: %w", err)
	}
	stores := []authout.CredentialStore{
		local,
		authoutadapter.NewEnvSessionStore(env),
		authoutadapter.NewCookieFileStore(cfg.CookiePath(), logger),
	}

	// /api/auth/config is public, so it is fetched without auth headers.
	plain, err := httpapi.New(cfg.API.BaseURL, cfg.API.Timeout, nil, ids, logger)
	if err != nil {
		_ = local.Close()
		return nil, fmt.Errorf("new api client: %w", err)
	}
	authSvc := authservice.NewAuthService(clk, stores,
		authoutadapter.NewOSNavigator(opts.Out, opts.LaunchBrowser),
		authoutadapter.NewHTTPRemoteConfig(plain),
		authservice.Options{
			LoginURL:            cfg.Auth.LoginURL,
			LogoutURL:           cfg.Auth.LogoutURL,
			DevBypass:           cfg.Auth.DevBypass,
			DevFallbackHeaders:  cfg.Auth.DevFallbackHeaders,
			FallbackInternID:    cfg.Auth.FallbackInternID,
			FallbackInternEmail: cfg.Auth.FallbackInternEmail,
		},
		logger.Named("auth"),
	)
	authUC := authusecase.NewInteractor(authSvc)

	client, err := httpapi.New(cfg.API.BaseURL, cfg.API.Timeout, authUC.AuthHeaders, ids, logger.Named("http"))
	if err != nil {
		_ = local.Close()
		return nil, fmt.Errorf("new api client: %w", err)
	}
	worklogSvc := worklogservice.NewWorklogService(worklogoutadapter.NewHTTPBackend(client), logger.Named("worklog"))
	worklogUC := worklogusecase.NewInteractor(worklogSvc, authUC, logger.Named("worklog"))

	return &App{
		Config:     cfg,
		AuthCLI:    authinadapter.NewCLIHandler(authUC),
		AuthTUI:    authinadapter.NewTUIHandler(authUC),
		WorklogCLI: workloginadapter.NewCLIHandler(worklogUC),
		WorklogTUI: workloginadapter.NewTUIHandler(worklogUC),
		worklog:    worklogUC,
		scheduler:  sched,
		logger:     logger,
		local:      local,
	}, nil
}

// NewController returns a synchronous driver for one submission flow, used
// by the scriptable submit command. Callers Stop it when done.
func (a *App) NewController() *worklogusecase.Controller {
	return worklogusecase.NewController(a.worklog, a.scheduler, a.Config.UI.CompleteDelay)
}

func (a *App) Close() error {
	return a.local.Close()
}

// RunTUI runs the shell until the user quits. The auth re-check ticker lives
// exactly as long as the program.
func RunTUI(app *App) error {
	model := uiapp.NewModel(app.AuthTUI, app.WorklogTUI, app.Config.UI.CompleteDelay)
	program := tea.NewProgram(model, tea.WithAltScreen())
	recheck := app.scheduler.Every(app.Config.Auth.RecheckInterval, func() {
		program.Send(uiapp.RecheckMsg{})
	})
	defer recheck.Cancel()
	app.logger.Info("tui started", zap.Duration("recheck_interval", app.Config.Auth.RecheckInterval))
	_, err := program.Run()
	return err
}

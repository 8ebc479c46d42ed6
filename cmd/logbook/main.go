package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"logbook/internal/bootstrap"
	authdto "logbook/internal/modules/auth/dto"
	"logbook/internal/modules/worklog/domain"
	"logbook/internal/modules/worklog/dto"
	worklogusecase "logbook/internal/modules/worklog/usecase"
	"logbook/internal/platform/config"
	apperrors "logbook/internal/platform/errors"
	"logbook/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, apperrors.UserMessage(err))
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	apiURL     string
	noBrowser  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "logbook",
		Short:         "Daily Activity Log client for LogBook",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "LogBook backend base URL")
	root.PersistentFlags().BoolVar(&flags.noBrowser, "no-browser", false, "print the login URL instead of opening a browser")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newSubmitCmd(flags))
	root.AddCommand(newStacksCmd(flags))
	root.AddCommand(newAuthCmd(flags))
	root.AddCommand(newSessionsCmd(flags))
	root.AddCommand(newHealthCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newCleanupCmd(flags))
	return root
}

func loadConfig(flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.apiURL != "" {
		cfg.API.BaseURL = flags.apiURL
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// loadApp wires the app for a subcommand. Logs go to stderr unless a log
// file is configured.
func loadApp(cmd *cobra.Command, flags *rootFlags) (*bootstrap.App, func(), error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.New(cfg, bootstrap.Options{
		Logger:        logger,
		Out:           cmd.ErrOrStderr(),
		LaunchBrowser: !flags.noBrowser,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return app, func() {
		_ = app.Close()
		_ = logger.Sync()
	}, nil
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the Daily Activity Log terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log.Level, cfg.LogPath())
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			app, err := bootstrap.New(cfg, bootstrap.Options{Logger: logger, LaunchBrowser: !flags.noBrowser})
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := bootstrap.RunTUI(app); err != nil {
				logger.Error("tui exited", zap.Error(err))
				return err
			}
			return nil
		},
	}
}

// ─── submit ──────────────────────────────────────────────────────────────────

func newSubmitCmd(flags *rootFlags) *cobra.Command {
	var input dto.EntryInput
	var answers []string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit today's activity entry and answer the AI follow-up",
		Long: "Submit today's activity entry. Working and WFH entries continue into the\n" +
			"AI follow-up questionnaire; answers come from --answer flags in order, and\n" +
			"any that are missing are read line by line from stdin.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			ctrl := app.NewController()
			defer ctrl.Stop()
			return runSubmit(context.Background(), ctrl, input, answers, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&input.Status, "status", "working", "work status: working|wfh|leave")
	cmd.Flags().StringVar(&input.Stack, "stack", "", "task stack (see `logbook stacks`)")
	cmd.Flags().StringVar(&input.Task, "task", "", "tasks completed today (required unless on leave)")
	cmd.Flags().StringVar(&input.Progress, "progress", "", "progress and challenges")
	cmd.Flags().StringVar(&input.Blockers, "blockers", "", "blockers or plans")
	cmd.Flags().StringArrayVar(&answers, "answer", nil, "follow-up answer, repeat once per question")
	return cmd
}

func runSubmit(ctx context.Context, ctrl *worklogusecase.Controller, input dto.EntryInput, answers []string, in io.Reader, out io.Writer) error {
	if err := ctrl.SubmitEntry(ctx, input); err != nil {
		return err
	}

	if s, ok := ctrl.State().(domain.AwaitingFollowupStart); ok {
		if s.Message != "" {
			_, _ = fmt.Fprintln(out, s.Message)
		}
		_, _ = fmt.Fprintln(out, "AI follow-up required. Starting AI…")
		if err := ctrl.StartFollowup(ctx); err != nil {
			return err
		}
	}

	if q, ok := ctrl.State().(domain.QuestionnaireOpen); ok {
		if err := answerQuestions(ctrl, q, answers, in, out); err != nil {
			_ = ctrl.Cancel()
			return err
		}
		if err := ctrl.SubmitAnswers(ctx); err != nil {
			return err
		}
	}

	done, ok := ctrl.State().(domain.Complete)
	if !ok {
		return fmt.Errorf("submission stopped in state %s", ctrl.State().Name())
	}
	printComplete(out, done)
	return ctrl.Close()
}

func answerQuestions(ctrl *worklogusecase.Controller, q domain.QuestionnaireOpen, answers []string, in io.Reader, out io.Writer) error {
	total := len(q.Session.Questions)
	if len(answers) > total {
		_, _ = fmt.Fprintf(out, "ignoring %d extra answer(s)\n", len(answers)-total)
	}
	scanner := bufio.NewScanner(in)
	for i, question := range q.Session.Questions {
		_, _ = fmt.Fprintf(out, "Question %d of %d: %s\n", i+1, total, question)
		var answer string
		if i < len(answers) {
			answer = answers[i]
			_, _ = fmt.Fprintf(out, "> %s\n", answer)
		} else {
			_, _ = fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read answer %d: %w", i+1, err)
				}
				return apperrors.Invalid("answers", "Please answer all questions before submitting.")
			}
			answer = scanner.Text()
		}
		if err := ctrl.SetAnswer(i, answer); err != nil {
			return err
		}
		if i < total-1 {
			if err := ctrl.Next(); err != nil {
				return err
			}
		}
	}
	return nil
}

func printComplete(out io.Writer, done domain.Complete) {
	_, _ = fmt.Fprintln(out, "Successfully submitted!")
	if done.Message != "" {
		_, _ = fmt.Fprintln(out, done.Message)
	}
	if done.Leave {
		if done.RecordID != "" {
			_, _ = fmt.Fprintf(out, "record: %s\n", done.RecordID)
		}
		if done.IsOverride {
			_, _ = fmt.Fprintln(out, "an existing entry for today was replaced")
		}
		return
	}
	if done.Completion.DailyRecordID != "" {
		_, _ = fmt.Fprintf(out, "daily record: %s\n", done.Completion.DailyRecordID)
	}
}

// ─── stacks ──────────────────────────────────────────────────────────────────

func newStacksCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stacks",
		Short: "List the task stacks an entry can belong to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			for _, s := range app.WorklogCLI.Stacks() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

// ─── auth ────────────────────────────────────────────────────────────────────

func newAuthCmd(flags *rootFlags) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Credential commands"}

	auth.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which credential would be used and whether it is valid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			printStatus(cmd.OutOrStdout(), app.AuthCLI.Status(context.Background()))
			return nil
		},
	})

	var token, store string
	login := &cobra.Command{
		Use:   "login",
		Short: "Store a token, or open the LogBook login page when none is given",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			status, err := app.AuthCLI.Login(context.Background(), strings.TrimSpace(token), store)
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), status)
			return nil
		},
	}
	login.Flags().StringVar(&token, "token", "", "JWT issued by LogBook")
	login.Flags().StringVar(&store, "store", "local", "credential store: local|session|cookie")
	auth.AddCommand(login)

	auth.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := app.AuthCLI.Logout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	})

	auth.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Show the backend's auth configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			rc, err := app.AuthCLI.RemoteConfig(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "method:      %s\n", rc.AuthMethod)
			_, _ = fmt.Fprintf(out, "format:      %s\n", rc.TokenFormat)
			_, _ = fmt.Fprintf(out, "locations:   %s\n", strings.Join(rc.TokenLocations, ", "))
			_, _ = fmt.Fprintf(out, "login url:   %s\n", rc.LoginURL)
			_, _ = fmt.Fprintf(out, "logout url:  %s\n", rc.LogoutURL)
			_, _ = fmt.Fprintf(out, "jwt:         %t\n", rc.JWTConfigured)
			_, _ = fmt.Fprintf(out, "integration: %s\n", rc.IntegrationStatus)
			return nil
		},
	})
	return auth
}

func printStatus(out io.Writer, s authdto.StatusOutput) {
	if s.Bypass {
		_, _ = fmt.Fprintln(out, "warning: authentication bypass is enabled")
	}
	if !s.HasToken {
		_, _ = fmt.Fprintln(out, "not logged in")
		return
	}
	_, _ = fmt.Fprintf(out, "authenticated: %t\n", s.Authenticated)
	_, _ = fmt.Fprintf(out, "source:        %s/%s\n", s.Store, s.Key)
	if s.DecodeError != "" {
		_, _ = fmt.Fprintf(out, "error:         %s\n", s.DecodeError)
		return
	}
	if s.Subject != "" {
		_, _ = fmt.Fprintf(out, "subject:       %s\n", s.Subject)
	}
	if s.Email != "" {
		_, _ = fmt.Fprintf(out, "email:         %s\n", s.Email)
	}
	if !s.ExpiresAt.IsZero() {
		_, _ = fmt.Fprintf(out, "expires:       %s\n", s.ExpiresAt.Local().Format(time.RFC3339))
	}
}

// ─── sessions ────────────────────────────────────────────────────────────────

func newSessionsCmd(flags *rootFlags) *cobra.Command {
	sessions := &cobra.Command{Use: "sessions", Short: "Follow-up session history"}

	var limit, skip int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent follow-up sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			items, err := app.WorklogCLI.ListSessions(context.Background(), limit, skip)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-36s  %-10s  %-10s  %d/%d answered\n",
					s.ID, s.SessionDate, s.Status, s.AnsweredCount, s.QuestionCount)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum sessions to list")
	list.Flags().IntVar(&skip, "skip", 0, "sessions to skip")

	show := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a follow-up session with its questions and answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			d, err := app.WorklogCLI.GetSession(context.Background(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "session: %s\n", d.ID)
			_, _ = fmt.Fprintf(out, "status:  %s\n", d.Status)
			if d.SessionDate != "" {
				_, _ = fmt.Fprintf(out, "date:    %s\n", d.SessionDate)
			}
			if d.WorkUpdateID != "" {
				_, _ = fmt.Fprintf(out, "update:  %s\n", d.WorkUpdateID)
			}
			for i, q := range d.Questions {
				_, _ = fmt.Fprintf(out, "\n%d. %s\n", i+1, q)
				if i < len(d.Answers) && d.Answers[i] != "" {
					_, _ = fmt.Fprintf(out, "   %s\n", d.Answers[i])
				} else {
					_, _ = fmt.Fprintln(out, "   (no answer)")
				}
			}
			return nil
		},
	}

	sessions.AddCommand(list, show)
	return sessions
}

// ─── health ──────────────────────────────────────────────────────────────────

func newHealthCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the LogBook backend is up",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			h, err := app.WorklogCLI.Health(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "status:   %s\n", h.Status)
			if h.Database != "" {
				_, _ = fmt.Fprintf(out, "database: %s\n", h.Database)
			}
			keys := make([]string, 0, len(h.Detail))
			for k := range h.Detail {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				_, _ = fmt.Fprintf(out, "%s: %s\n", k, h.Detail[k])
			}
			if !strings.EqualFold(h.Status, "healthy") && !strings.EqualFold(h.Status, "ok") {
				return errors.New("backend is not healthy")
			}
			return nil
		},
	}
}

func newStatsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show backend follow-up and cleanup counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			s, err := app.WorklogCLI.Stats(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "work updates:      %d (%d with follow-up, %d without)\n", s.WorkUpdates, s.CompletedFollowups, s.IncompleteFollowups)
			_, _ = fmt.Fprintf(out, "temp updates:      %d (%d pending)\n", s.TempUpdates, s.PendingTempUpdates)
			_, _ = fmt.Fprintf(out, "sessions:          %d (%d pending, %d completed)\n", s.Sessions, s.PendingSessions, s.CompletedSessions)
			_, _ = fmt.Fprintf(out, "ttl index:         %s\n", onOff(s.TTLActive))
			_, _ = fmt.Fprintf(out, "cleanup task:      %s\n", onOff(s.CleanupTaskRunning))
			return nil
		},
	}
}

func newCleanupCmd(flags *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Purge abandoned temp updates and pending follow-up sessions on the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("cleanup deletes data on the backend; rerun with --yes")
			}
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			r, err := app.WorklogCLI.Cleanup(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, r.Message)
			_, _ = fmt.Fprintf(out, "deleted temp updates: %d\n", r.DeletedTempUpdates)
			_, _ = fmt.Fprintf(out, "deleted sessions:     %d\n", r.DeletedSessions)
			if r.TTLStatus != "" {
				_, _ = fmt.Fprintf(out, "ttl status:           %s\n", r.TTLStatus)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the purge")
	return cmd
}

func onOff(b bool) string {
	if b {
		return "active"
	}
	return "inactive"
}

// Package app wires configuration, calculators and presentation into the
// rangeprod command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/rangeprod/internal/cli"
	"github.com/agbru/rangeprod/internal/config"
	apperrors "github.com/agbru/rangeprod/internal/errors"
	"github.com/agbru/rangeprod/internal/logging"
	"github.com/agbru/rangeprod/internal/orchestration"
	"github.com/agbru/rangeprod/internal/product"
	"github.com/agbru/rangeprod/internal/progress"
	"github.com/agbru/rangeprod/internal/tui"
	"github.com/agbru/rangeprod/internal/ui"
)

// progressLogStep is the progress increment between two debug log lines.
const progressLogStep = 0.25

// Application is one rangeprod invocation.
type Application struct {
	Config    config.AppConfig
	Factory   product.CalculatorFactory
	Logger    logging.Logger
	In        io.Reader
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory.
func WithFactory(f product.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader used in prompt mode. It defaults to os.Stdin.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New parses args (program name first) and builds the Application. Without
// WithFactory, calculators log to errWriter at the configured level.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	availableAlgos := product.NewDefaultFactory().List()
	if app.Factory != nil {
		availableAlgos = app.Factory.List()
	}

	programName := "rangeprod"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableAlgos)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	level := logging.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)
	app.Logger = logging.NewConsoleLogger(errWriter, "rangeprod", level)
	if app.Factory == nil {
		observer := progress.NewLoggingObserver(logging.NewConsoleZerolog(errWriter, "progress", level), progressLogStep)
		app.Factory = product.NewDefaultFactory(
			product.WithFactoryLogger(app.Logger),
			product.WithFactoryObservers(observer),
		)
	}
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Prompt {
		return a.runPrompt(ctx, out)
	}
	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// runPrompt reads the range interactively, then computes it.
func (a *Application) runPrompt(ctx context.Context, out io.Writer) int {
	in, err := cli.PromptRange(a.In, out)
	if err != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(a.ErrWriter, "Input error:", err)
		return apperrors.ExitErrorConfig
	}
	a.Config.Threads, a.Config.Start, a.Config.End = in.Threads, in.Start, in.End
	a.Config.Prompt = false
	a.Logger.Debug("range read from prompt",
		logging.Int("threads", in.Threads), logging.Int64("start", in.Start), logging.Int64("end", in.End))
	return a.runCalculate(ctx, out)
}

// runTUI launches the dashboard.
func (a *Application) runTUI(ctx context.Context, _ io.Writer) int {
	ctx, cancelTimeout := a.withTimeout(ctx)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculators := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)
	if len(calculators) == 0 {
		fmt.Fprintf(a.ErrWriter, "No calculator available for '%s'.\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}
	return tui.Run(ctx, calculators, a.Config, Version)
}

// withTimeout bounds ctx by -timeout. On expiry the context's cause is an
// apperrors.TimeoutError carrying the limit.
func (a *Application) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeoutCause(ctx, a.Config.Timeout,
		apperrors.TimeoutError{Operation: "range product", Limit: a.Config.Timeout})
}

// IsHelpError reports whether err comes from -h or -help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeFor maps an error returned by New to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	var configErr apperrors.ConfigError
	var validationErr apperrors.ValidationError
	if errors.As(err, &configErr) || errors.As(err, &validationErr) {
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitErrorGeneric
}

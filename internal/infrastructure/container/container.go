// Package container provides dependency injection for the application.
package container

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/reglet-dev/lintgate/internal/application/errors"
	"github.com/reglet-dev/lintgate/internal/application/ports"
	"github.com/reglet-dev/lintgate/internal/application/services"
	"github.com/reglet-dev/lintgate/internal/domain/environment"
	"github.com/reglet-dev/lintgate/internal/infrastructure/activation"
	"github.com/reglet-dev/lintgate/internal/infrastructure/analyzer"
	"github.com/reglet-dev/lintgate/internal/infrastructure/output"
	"github.com/reglet-dev/lintgate/internal/infrastructure/redaction"
	"github.com/reglet-dev/lintgate/internal/infrastructure/system"
)

// Container holds all application dependencies.
type Container struct {
	gateUseCase *services.GateUseCase
	handle      *environment.Handle
	config      *system.Config
	logger      *slog.Logger
}

// Options configure the container.
type Options struct {
	Logger *slog.Logger
	// Config is the effective configuration. Nil means system.DefaultConfig().
	Config *system.Config
	// Dir is the invocation root. Empty means the current directory.
	Dir string
	// BaseEnv is the environment activation starts from. Nil means os.Environ().
	BaseEnv []string
	// Stdout receives reports written to "-".
	Stdout io.Writer
	// Analyzer replaces the exec-based analyzer, for tests.
	Analyzer ports.Analyzer
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Config == nil {
		opts.Config = system.DefaultConfig()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	cfg := opts.Config

	handle := environment.NewHandle(resolveRoot(opts.Dir, cfg.Environment.Root), cfg.Environment.ActivationScript)

	activator, err := activation.New(activation.Kind(cfg.Environment.Activator), activation.Options{
		BaseEnv: opts.BaseEnv,
		Shell:   cfg.Environment.Shell,
	})
	if err != nil {
		return nil, err
	}

	// Redaction is only built when enabled; gitleaks rule loading is not free
	var redactor ports.OutputRedactor
	if cfg.Redaction.Enabled {
		r, err := redaction.New(redaction.Config{
			Patterns:        cfg.Redaction.Patterns,
			HashMode:        cfg.Redaction.HashMode.Enabled,
			Salt:            cfg.Redaction.HashMode.Salt,
			DisableGitleaks: cfg.Redaction.DisableGitleaks,
		})
		if err != nil {
			return nil, apperrors.NewConfigurationError("redaction", "invalid redaction settings", err)
		}
		redactor = r
	}

	reporter, err := newReporter(cfg.Report, opts.Stdout)
	if err != nil {
		return nil, err
	}

	exec := opts.Analyzer
	if exec == nil {
		exec = analyzer.NewExecAnalyzer(opts.Logger)
	}

	deps := services.GateDeps{
		Activator: activator,
		Resolver:  analyzer.NewPathResolver(),
		Prober:    analyzer.NewVersionProbe(""),
		Analyzer:  exec,
		Redactor:  redactor,
		Logger:    opts.Logger,
	}
	if reporter != nil {
		deps.Reporter = reporter
	}

	return &Container{
		gateUseCase: services.NewGateUseCase(cfg.GateConfig(), handle, opts.Dir, deps),
		handle:      handle,
		config:      cfg,
		logger:      opts.Logger,
	}, nil
}

// newReporter builds the report writer. A file without a format infers the
// format from its extension; a format without a file is an error.
func newReporter(cfg system.ReportConfig, stdout io.Writer) (*output.FileReporter, error) {
	format, file := strings.ToLower(cfg.Format), cfg.File
	if format == "" && file == "" {
		return nil, nil
	}

	if file == "" {
		return nil, apperrors.NewConfigurationError("report", "report format set without a report file", nil)
	}
	if format == "" {
		format = formatForExtension(file)
		if format == "" {
			return nil, apperrors.NewConfigurationError("report",
				fmt.Sprintf("cannot infer report format from %q", file), nil)
		}
	}

	reporter, err := output.NewFileReporter(output.NewFormatterFactory(), format, file, stdout)
	if err != nil {
		return nil, apperrors.NewConfigurationError("report", "invalid report settings", err)
	}
	return reporter, nil
}

func formatForExtension(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".xml":
		return "junit"
	case ".sarif":
		return "sarif"
	default:
		return ""
	}
}

func resolveRoot(dir, root string) string {
	if filepath.IsAbs(root) || dir == "" {
		return root
	}
	return filepath.Join(dir, root)
}

// GateUseCase returns the gate use case.
func (c *Container) GateUseCase() *services.GateUseCase {
	return c.gateUseCase
}

// Handle returns the environment handle shared by every run of this container.
func (c *Container) Handle() *environment.Handle {
	return c.handle
}

// Config returns the effective configuration.
func (c *Container) Config() *system.Config {
	return c.config
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

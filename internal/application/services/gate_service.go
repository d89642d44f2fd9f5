// Package services contains application use cases.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/reglet-dev/lintgate/internal/application/dto"
	apperrors "github.com/reglet-dev/lintgate/internal/application/errors"
	"github.com/reglet-dev/lintgate/internal/application/ports"
	"github.com/reglet-dev/lintgate/internal/domain/entities"
	"github.com/reglet-dev/lintgate/internal/domain/environment"
	"github.com/reglet-dev/lintgate/internal/domain/execution"
	domainservices "github.com/reglet-dev/lintgate/internal/domain/services"
	"github.com/reglet-dev/lintgate/internal/domain/values"
)

// GateUseCase orchestrates one quality-gate run: activate the environment,
// resolve the analyzer, invoke it, and map its status to an outcome.
// This is a pure application layer component that depends only on ports.
type GateUseCase struct {
	activator ports.Activator
	resolver  ports.ToolResolver
	prober    ports.VersionProber
	analyzer  ports.Analyzer
	redactor  ports.OutputRedactor
	reporter  ports.Reporter
	handle    *environment.Handle
	logger    *slog.Logger
	config    entities.GateConfig
	dir       string
}

// GateDeps are the collaborators of a GateUseCase. Prober, Redactor and
// Reporter are optional.
type GateDeps struct {
	Activator ports.Activator
	Resolver  ports.ToolResolver
	Prober    ports.VersionProber
	Analyzer  ports.Analyzer
	Redactor  ports.OutputRedactor
	Reporter  ports.Reporter
	Logger    *slog.Logger
}

// NewGateUseCase creates a new gate use case bound to one environment handle.
// dir is the invocation root the analyzer runs in; empty means the current
// directory.
func NewGateUseCase(cfg entities.GateConfig, handle *environment.Handle, dir string, deps GateDeps) *GateUseCase {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &GateUseCase{
		activator: deps.Activator,
		resolver:  deps.Resolver,
		prober:    deps.Prober,
		analyzer:  deps.Analyzer,
		redactor:  deps.Redactor,
		reporter:  deps.Reporter,
		handle:    handle,
		logger:    logger,
		config:    cfg,
		dir:       dir,
	}
}

// Execute runs the gate once.
//
// A non-zero analyzer status is not an error: it is returned in the
// response's ExitCode. Errors are returned for provisioning, tool
// resolution, version and invocation failures, and carry their own exit
// code. When the invocation succeeded but the report could not be written,
// both a response and an error are returned.
func (uc *GateUseCase) Execute(ctx context.Context, req dto.GateRequest) (*dto.GateResponse, error) {
	startTime := time.Now()
	runID := values.NewRunID()
	logger := uc.logger.With("run_id", runID.String(), "tool", uc.config.Tool)

	if err := uc.config.Validate(); err != nil {
		return nil, apperrors.NewConfigurationError("gate", "invalid gate configuration", err)
	}

	// 1. Activation is a precondition for everything else
	if err := uc.ensureActive(ctx, logger); err != nil {
		return nil, err
	}

	// 2. Resolve the analyzer on the activated search path
	toolPath, err := uc.resolveTool(logger)
	if err != nil {
		return nil, err
	}

	// 3. Scoped invocation environment
	vars := domainservices.AugmentSearchPath(uc.handle.Vars(), uc.config.SearchPathVar, uc.config.SearchPathExtra)
	env := environment.Environ(vars)

	// 4. Optional version gate
	toolVersion, err := uc.checkVersion(ctx, toolPath, env, logger)
	if err != nil {
		return nil, err
	}

	inv := execution.Invocation{
		RunID:          runID,
		Tool:           uc.config.Tool,
		Path:           toolPath,
		Args:           domainservices.BuildArgs(uc.config, req.Targets),
		Env:            env,
		Dir:            uc.dir,
		MaxOutputBytes: uc.config.MaxOutputBytes,
	}

	// 5. Single synchronous invocation
	result, err := uc.invoke(ctx, inv, req.Timeout, logger)
	if err != nil {
		return nil, err
	}

	if uc.config.RedactOutput && uc.redactor != nil {
		result = result.WithOutput(uc.redactor.ScrubString(result.Output()))
	}

	outcome := result.Outcome()
	resp := &dto.GateResponse{
		Result:   result,
		Banner:   outcome.Banner(uc.config.Tool),
		ExitCode: result.ExitCode(),
		Metadata: dto.ResponseMetadata{
			RunID:       runID,
			ToolPath:    toolPath,
			ToolVersion: toolVersion,
			ProcessedAt: time.Now(),
			Duration:    time.Since(startTime),
		},
	}

	logger.Info("analysis complete",
		"outcome", string(outcome),
		"exit_code", result.ExitCode().Int(),
		"duration", result.Duration(),
		"truncated", result.Truncated())

	if uc.reporter != nil {
		if err := uc.reporter.Report(result); err != nil {
			return resp, apperrors.NewConfigurationError("report", "failed to write report", err)
		}
	}

	return resp, nil
}

// Inspect activates the environment and resolves the analyzer without
// invoking it.
func (uc *GateUseCase) Inspect(ctx context.Context) (*dto.EnvironmentReport, error) {
	logger := uc.logger.With("tool", uc.config.Tool)

	report := &dto.EnvironmentReport{
		Root:             uc.handle.Root(),
		ActivationScript: uc.handle.ActivationScript(),
		State:            uc.handle.State(),
		Tool:             uc.config.Tool,
		SearchPathVar:    uc.config.SearchPathVar,
		ConfigPath:       uc.config.ConfigPath,
	}

	if err := uc.ensureActive(ctx, logger); err != nil {
		return report, err
	}
	report.State = uc.handle.State()

	vars := domainservices.AugmentSearchPath(uc.handle.Vars(), uc.config.SearchPathVar, uc.config.SearchPathExtra)
	report.SearchPath = vars[uc.config.SearchPathVar]

	toolPath, err := uc.resolveTool(logger)
	if err != nil {
		return report, err
	}
	report.ToolPath = toolPath

	version, err := uc.checkVersion(ctx, toolPath, environment.Environ(vars), logger)
	if err != nil {
		return report, err
	}
	report.ToolVersion = version

	return report, nil
}

// ensureActive activates the handle once; later calls reuse the activation.
func (uc *GateUseCase) ensureActive(ctx context.Context, logger *slog.Logger) error {
	if uc.handle.IsActive() {
		return nil
	}

	logger.Debug("activating environment", "script", uc.handle.ActivationScript())
	if err := uc.activator.Activate(ctx, uc.handle); err != nil {
		var provErr *apperrors.ProvisioningError
		if errors.As(err, &provErr) {
			return err
		}
		var cfgErr *apperrors.ConfigurationError
		if errors.As(err, &cfgErr) {
			return err
		}
		return apperrors.NewProvisioningError(uc.handle.ActivationScript(), err)
	}
	logger.Debug("environment active", "root", uc.handle.Root())
	return nil
}

func (uc *GateUseCase) resolveTool(logger *slog.Logger) (string, error) {
	pathList, _ := uc.handle.Lookup("PATH")

	toolPath, err := uc.resolver.Resolve(uc.config.Tool, pathList)
	if err != nil {
		logger.Debug("tool resolution failed", "path", pathList, "error", err)
		return "", apperrors.NewToolNotFoundError(uc.config.Tool, pathList)
	}

	logger.Debug("resolved tool", "path", toolPath)
	return toolPath, nil
}

// checkVersion enforces MinToolVersion. It returns the detected version,
// or "" when no minimum is configured.
func (uc *GateUseCase) checkVersion(ctx context.Context, toolPath string, env []string, logger *slog.Logger) (string, error) {
	if uc.config.MinToolVersion == "" || uc.prober == nil {
		return "", nil
	}

	constraint, err := ParseMinVersion(uc.config.MinToolVersion)
	if err != nil {
		return "", apperrors.NewConfigurationError("min_tool_version", "invalid constraint", err)
	}

	raw, err := uc.prober.Probe(ctx, toolPath, env)
	if err != nil {
		return "", apperrors.NewToolVersionError(uc.config.Tool, "", uc.config.MinToolVersion, err)
	}

	version, err := ExtractVersion(raw)
	if err != nil {
		return "", apperrors.NewToolVersionError(uc.config.Tool, "", uc.config.MinToolVersion, err)
	}

	if !constraint.Check(version) {
		return version.String(), apperrors.NewToolVersionError(uc.config.Tool, version.String(), uc.config.MinToolVersion, nil)
	}

	logger.Debug("tool version accepted", "version", version.String(), "constraint", uc.config.MinToolVersion)
	return version.String(), nil
}

func (uc *GateUseCase) invoke(ctx context.Context, inv execution.Invocation, timeout time.Duration, logger *slog.Logger) (*execution.InvocationResult, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger.Info("running analyzer", "path", inv.Path, "args", inv.Args)

	result, err := uc.analyzer.Run(ctx, inv)
	if err != nil {
		var coder apperrors.ExitCoder
		if errors.As(err, &coder) {
			return nil, err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewInvocationError(inv.Tool, "timed out", values.ExitTimeout, err)
		}
		return nil, apperrors.NewInvocationError(inv.Tool, "could not start analyzer", values.ExitCannotExecute, err)
	}
	return result, nil
}

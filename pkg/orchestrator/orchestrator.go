package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/cperrin88/aptbridge/internal/logger"
	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/cperrin88/aptbridge/pkg/model"
	"github.com/cperrin88/aptbridge/pkg/progress"
	"github.com/cperrin88/aptbridge/pkg/supervisor"
	"github.com/cperrin88/aptbridge/pkg/validation"
)

// NoninteractiveEnv keeps apt-get and dpkg from prompting.
const NoninteractiveEnv = "DEBIAN_FRONTEND=noninteractive"

const (
	defaultAptGet    = "apt-get"
	defaultDpkgQuery = "dpkg-query"
)

// New creates an Orchestrator. Empty tool paths select the defaults.
func New(runner Runner, tools Tools) *Orchestrator {
	return &Orchestrator{Runner: runner, Tools: tools}
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

func statusFdArg() string {
	return fmt.Sprintf("APT::Status-Fd=%d", supervisor.StatusFd)
}

// InstallArgs returns the apt-get arguments for installing name.
func InstallArgs(name string) []string {
	return []string{
		"install", "-y",
		"-o", statusFdArg(),
		"-o", "Dpkg::Options::=--force-confdef",
		"-o", "Dpkg::Options::=--force-confold",
		name,
	}
}

// RemoveArgs returns the apt-get arguments for removing name.
func RemoveArgs(name string) []string {
	return []string{"remove", "-y", "-o", statusFdArg(), name}
}

func (o *Orchestrator) spec(path string, args ...string) supervisor.Spec {
	return supervisor.Spec{Path: path, Args: args, Env: []string{NoninteractiveEnv}}
}

func (o *Orchestrator) tools() Tools {
	t := o.Tools
	if t.AptGet == "" {
		t.AptGet = defaultAptGet
	}
	if t.DpkgQuery == "" {
		t.DpkgQuery = defaultDpkgQuery
	}
	return t
}

func (o *Orchestrator) runner() (Runner, error) {
	if o.Runner == nil {
		return nil, errors.Internal("process runner is not configured", nil)
	}
	return o.Runner, nil
}

// Install installs name with apt-get, streaming progress through Hooks.
func (o *Orchestrator) Install(ctx context.Context, name string) (*model.OperationResult, error) {
	if err := validation.PackageName(name); err != nil {
		return nil, err
	}
	return o.runStatusFd(ctx, supervisor.OpInstall, name, PhaseInstalling,
		InstallArgs(name), "Installation complete", fmt.Sprintf("Successfully installed %s", name))
}

// Remove removes name with apt-get. Essential packages are refused before
// anything runs.
func (o *Orchestrator) Remove(ctx context.Context, name string) (*model.OperationResult, error) {
	if err := validation.PackageName(name); err != nil {
		return nil, err
	}
	if err := validation.NotEssential(name); err != nil {
		return nil, err
	}
	return o.runStatusFd(ctx, supervisor.OpRemove, name, PhaseRemoving,
		RemoveArgs(name), "Removal complete", fmt.Sprintf("Successfully removed %s", name))
}

func (o *Orchestrator) runStatusFd(ctx context.Context, op supervisor.Operation, name, phase string,
	args []string, doneMsg, resultMsg string) (*model.OperationResult, error) {
	runner, err := o.runner()
	if err != nil {
		return nil, err
	}

	spec := o.spec(o.tools().AptGet, args...)
	logger.Debug("Running package operation", logger.Fields{"operation": string(op), "package": name})

	result, err := runner.RunWithStatusFd(ctx, spec, func(e model.ProgressEvent) {
		emit(o.Hooks, Event{Phase: phase, Package: name, Percentage: e.Percentage, Msg: e.Message})
	})
	if err != nil {
		return nil, runFailure(spec, err)
	}
	if err := supervisor.Classify(op, name, result); err != nil {
		logger.Debug("Package operation failed", logger.Fields{"operation": string(op), "exit_code": result.ExitCode})
		return nil, err
	}

	emit(o.Hooks, Event{Phase: PhaseDone, Package: name, Percentage: 100, Msg: doneMsg})
	return &model.OperationResult{Success: true, Message: resultMsg, PackageName: name}, nil
}

// runFailure reports a process that could not be started or supervised.
// Non-zero exits are left to supervisor.Classify.
func runFailure(spec supervisor.Spec, err error) error {
	return errors.Internal(fmt.Sprintf("Failed to run %s", spec.Path), err)
}

// Update refreshes the package lists. apt-get update has no status channel,
// so progress is estimated from its output.
func (o *Orchestrator) Update(ctx context.Context) (*model.OperationResult, error) {
	runner, err := o.runner()
	if err != nil {
		return nil, err
	}

	var parser progress.UpdateParser
	tracker := progress.NewTracker(func(e model.ProgressEvent) {
		emit(o.Hooks, Event{Phase: PhaseUpdating, Percentage: e.Percentage, Msg: e.Message})
	})

	spec := o.spec(o.tools().AptGet, "update")
	result, err := runner.RunWithOutput(ctx, spec, func(line string) {
		if e, ok := parser.ParseLine(line); ok {
			tracker.Offer(e)
		}
	})
	if err != nil {
		return nil, runFailure(spec, err)
	}
	if err := supervisor.Classify(supervisor.OpUpdate, "", result); err != nil {
		return nil, err
	}

	emit(o.Hooks, Event{Phase: PhaseDone, Percentage: 100, Msg: "Package lists updated"})
	return &model.OperationResult{Success: true, Message: "Successfully updated package lists"}, nil
}

// Files lists the paths installed by name.
func (o *Orchestrator) Files(ctx context.Context, name string) ([]string, error) {
	if err := validation.PackageName(name); err != nil {
		return nil, err
	}
	runner, err := o.runner()
	if err != nil {
		return nil, err
	}

	spec := supervisor.Spec{Path: o.tools().DpkgQuery, Args: []string{"-L", name}}
	result, err := runner.RunWithOutput(ctx, spec, nil)
	if err != nil {
		return nil, runFailure(spec, err)
	}
	if !result.Success() {
		if strings.Contains(result.Stderr, "not installed") {
			return nil, errors.PackageNotFound(name)
		}
		return nil, errors.ExternalTool(errors.CodeCommandFailed,
			fmt.Sprintf("dpkg-query failed for package '%s'", name), result.Stderr)
	}

	files := []string{}
	for _, line := range strings.Split(result.Stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

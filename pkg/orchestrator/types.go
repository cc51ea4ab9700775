//go:generate mockgen -destination=./mocks/orchestrator.go . Runner

package orchestrator

import (
	"context"

	"github.com/cperrin88/aptbridge/pkg/model"
	"github.com/cperrin88/aptbridge/pkg/supervisor"
)

// Runner is the subset of the process supervisor used by the orchestrator.
type Runner interface {
	RunWithStatusFd(ctx context.Context, spec supervisor.Spec, onEvent func(model.ProgressEvent)) (*supervisor.Result, error)
	RunWithOutput(ctx context.Context, spec supervisor.Spec, onLine func(string)) (*supervisor.Result, error)
}

// Tools holds the executables the orchestrator drives.
type Tools struct {
	AptGet    string
	DpkgQuery string
}

// Orchestrator runs package manager operations through a Runner.
type Orchestrator struct {
	Runner Runner
	Tools  Tools
	Hooks  Hooks // Hooks for progress notifications
}

// Event represents a progress notification.
type Event struct {
	Phase      string // installing|removing|updating|done
	Package    string
	Percentage int
	Msg        string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Event phases.
const (
	PhaseInstalling = "installing"
	PhaseRemoving   = "removing"
	PhaseUpdating   = "updating"
	PhaseDone       = "done"
)

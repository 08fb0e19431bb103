package router

import (
	"context"
	"fmt"
	"io"

	"github.com/aiden/nedots/pkg/install"
	"github.com/aiden/nedots/pkg/logging"
)

// NothingMessage is printed when the command line selects no operation
const NothingMessage = "Got nuffin' to do!"

// Selector is everything the command line decided. It is built once by the
// CLI and passed by value.
type Selector struct {
	Verb        Verb
	InstallVerb InstallVerb
	Group       Group
	Distro      string
	Extras      bool
	WM          Group
}

// Op is the single operation a Selector resolves to
type Op int

const (
	OpNothing Op = iota
	OpCapture
	OpApplyConfigs
	OpApplyPackages
	OpApplyFlatpaks
)

func (o Op) String() string {
	switch o {
	case OpCapture:
		return "capture"
	case OpApplyConfigs:
		return "apply-configs"
	case OpApplyPackages:
		return "apply-packages"
	case OpApplyFlatpaks:
		return "apply-flatpaks"
	}
	return "nothing"
}

// Plan is a resolved operation and its package selection
type Plan struct {
	Op     Op
	Distro string
	Extras bool
	Group  Group
}

// PackageRequest is the install request for an OpApplyPackages plan
func (p Plan) PackageRequest() install.PackageRequest {
	return install.PackageRequest{
		Distro: p.Distro,
		Extras: p.Extras,
		Group:  p.Group.String(),
	}
}

// Resolve maps a Selector to a Plan
func Resolve(sel Selector) Plan {
	switch sel.Verb {
	case VerbAddChanges:
		return Plan{Op: OpCapture}
	case VerbInstall:
		return resolveInstall(sel)
	}
	return Plan{Op: OpNothing}
}

func resolveInstall(sel Selector) Plan {
	switch sel.InstallVerb {
	case InstallConfigs:
		return Plan{Op: OpApplyConfigs}
	case InstallFlatpaks:
		return Plan{Op: OpApplyFlatpaks}
	case InstallPkgs:
		if sel.Group == GroupUnknown {
			return Plan{Op: OpNothing}
		}
		return Plan{Op: OpApplyPackages, Distro: sel.Distro, Extras: sel.Extras, Group: sel.Group}
	case InstallWM:
		if sel.WM != GroupBspwm && sel.WM != GroupSway {
			return Plan{Op: OpNothing}
		}
		return Plan{Op: OpApplyPackages, Distro: sel.Distro, Extras: sel.Extras, Group: sel.WM}
	}
	return Plan{Op: OpNothing}
}

// Engines carry out resolved plans. Implementations load the manifest
// themselves so an OpNothing plan never reads it.
type Engines interface {
	Capture(ctx context.Context) error
	ApplyConfigs(ctx context.Context) error
	ApplyPackages(ctx context.Context, req install.PackageRequest) error
	ApplyFlatpaks(ctx context.Context) error
}

// Dispatch runs plan against engines
func Dispatch(ctx context.Context, plan Plan, engines Engines, out io.Writer) error {
	logger := logging.GetLogger("router")
	logger.Debug().
		Str("op", plan.Op.String()).
		Str("distro", plan.Distro).
		Bool("extras", plan.Extras).
		Str("group", plan.Group.String()).
		Msg("Dispatching")

	switch plan.Op {
	case OpCapture:
		return engines.Capture(ctx)
	case OpApplyConfigs:
		return engines.ApplyConfigs(ctx)
	case OpApplyPackages:
		return engines.ApplyPackages(ctx, plan.PackageRequest())
	case OpApplyFlatpaks:
		return engines.ApplyFlatpaks(ctx)
	case OpNothing:
		_, err := fmt.Fprintln(out, NothingMessage)
		return err
	}
	return fmt.Errorf("unhandled operation %d", plan.Op)
}

// Route resolves sel and dispatches it. Engines are only built for a plan
// that has something to do, so the Nothing path loads no settings or
// manifest.
func Route(ctx context.Context, sel Selector, newEngines func() (Engines, error), out io.Writer) error {
	plan := Resolve(sel)
	if plan.Op == OpNothing {
		return Dispatch(ctx, plan, nil, out)
	}

	engines, err := newEngines()
	if err != nil {
		return err
	}
	return Dispatch(ctx, plan, engines, out)
}

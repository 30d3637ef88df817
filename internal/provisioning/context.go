package provisioning

import (
	"context"

	"github.com/imamik/djazure-bootstrap/internal/config"
	"github.com/imamik/djazure-bootstrap/internal/toolexec"
	"github.com/imamik/djazure-bootstrap/internal/util/naming"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Params   config.BootstrapParameters
	Names    naming.ResourceNames
	Session  toolexec.SessionContext
	Cloud    CloudProvisioner
	State    *State
	Observer Observer
	Metrics  *Metrics
}

// NewContext creates a new provisioning context.
func NewContext(
	ctx context.Context,
	params config.BootstrapParameters,
	names naming.ResourceNames,
	session toolexec.SessionContext,
	cloud CloudProvisioner,
) *Context {
	return &Context{
		Context:  ctx,
		Params:   params,
		Names:    names,
		Session:  session,
		Cloud:    cloud,
		State:    NewState(),
		Observer: NewConsoleObserver(),
		Metrics:  NewMetrics(),
	}
}

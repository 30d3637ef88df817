package provisioning

import (
	"context"

	"github.com/imamik/djazure-bootstrap/internal/azure"
	"github.com/imamik/djazure-bootstrap/internal/toolexec"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// CloudProvisioner performs the mutating cloud calls.
// Implemented by azure.CLI.
type CloudProvisioner interface {
	CreateServicePrincipal(ctx context.Context, s toolexec.SessionContext, name string) (*azure.ServicePrincipalCredential, error)
	SetSubscription(ctx context.Context, s toolexec.SessionContext) error
	CreateResourceGroup(ctx context.Context, s toolexec.SessionContext, name, region string) error
	CreateStorageAccount(ctx context.Context, s toolexec.SessionContext, name, resourceGroup, region string) error
	CreateStorageContainer(ctx context.Context, s toolexec.SessionContext, account, name string) error
}

var _ CloudProvisioner = (*azure.CLI)(nil)

// Logger is the minimal logging interface used by phases.
type Logger interface {
	Printf(format string, v ...interface{})
}

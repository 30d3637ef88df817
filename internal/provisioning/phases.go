package provisioning

import (
	"errors"
	"fmt"
)

const (
	phaseServicePrincipal = "service-principal"
	phaseSubscription     = "subscription"
	phaseResourceGroup    = "resource-group"
	phaseStorageAccount   = "storage-account"
	phaseContainer        = "container"
)

// ServicePrincipalPhase creates the Contributor service principal used by CI.
type ServicePrincipalPhase struct{}

// Name implements Phase.
func (p *ServicePrincipalPhase) Name() string { return phaseServicePrincipal }

// Provision implements Phase.
func (p *ServicePrincipalPhase) Provision(ctx *Context) error {
	name := ctx.Names.ServicePrincipal
	LogResourceCreating(ctx.Observer, p.Name(), "service principal", name)

	cred, err := ctx.Cloud.CreateServicePrincipal(ctx, ctx.Session, name)
	if err != nil {
		return err
	}

	ctx.State.ServicePrincipal = name
	ctx.State.Credential = cred
	LogResourceCreated(ctx.Observer, p.Name(), "service principal", name)
	ctx.Observer.Printf("[ServicePrincipal] appId: %s, tenant: %s", cred.ClientID, cred.TenantID)
	return nil
}

// SubscriptionPhase re-asserts the selected subscription before the
// resource calls.
type SubscriptionPhase struct{}

// Name implements Phase.
func (p *SubscriptionPhase) Name() string { return phaseSubscription }

// Provision implements Phase.
func (p *SubscriptionPhase) Provision(ctx *Context) error {
	if ctx.Session.SubscriptionID == "" {
		return errors.New("no subscription selected")
	}
	ctx.Observer.Printf("[Subscription] Using subscription %s", ctx.Session.SubscriptionID)
	return ctx.Cloud.SetSubscription(ctx, ctx.Session)
}

// ResourceGroupPhase creates the resource group holding Terraform state.
type ResourceGroupPhase struct{}

// Name implements Phase.
func (p *ResourceGroupPhase) Name() string { return phaseResourceGroup }

// Provision implements Phase.
func (p *ResourceGroupPhase) Provision(ctx *Context) error {
	name := ctx.Names.ResourceGroup
	LogResourceCreating(ctx.Observer, p.Name(), "resource group", name)

	if err := ctx.Cloud.CreateResourceGroup(ctx, ctx.Session, name, ctx.Params.Region); err != nil {
		return err
	}

	ctx.State.ResourceGroup = name
	LogResourceCreated(ctx.Observer, p.Name(), "resource group", name)
	return nil
}

// StorageAccountPhase creates the storage account inside the state group.
type StorageAccountPhase struct{}

// Name implements Phase.
func (p *StorageAccountPhase) Name() string { return phaseStorageAccount }

// Provision implements Phase.
func (p *StorageAccountPhase) Provision(ctx *Context) error {
	if ctx.State.ResourceGroup == "" {
		return fmt.Errorf("resource group not created")
	}

	name := ctx.Names.StorageAccount
	LogResourceCreating(ctx.Observer, p.Name(), "storage account", name)

	if err := ctx.Cloud.CreateStorageAccount(ctx, ctx.Session, name, ctx.State.ResourceGroup, ctx.Params.Region); err != nil {
		return err
	}

	ctx.State.StorageAccount = name
	LogResourceCreated(ctx.Observer, p.Name(), "storage account", name)
	return nil
}

// ContainerPhase creates the blob container for Terraform state.
type ContainerPhase struct{}

// Name implements Phase.
func (p *ContainerPhase) Name() string { return phaseContainer }

// Provision implements Phase.
func (p *ContainerPhase) Provision(ctx *Context) error {
	if ctx.State.StorageAccount == "" {
		return fmt.Errorf("storage account not created")
	}

	name := ctx.Names.Container
	LogResourceCreating(ctx.Observer, p.Name(), "blob container", name)

	if err := ctx.Cloud.CreateStorageContainer(ctx, ctx.Session, ctx.State.StorageAccount, name); err != nil {
		return err
	}

	ctx.State.Container = name
	LogResourceCreated(ctx.Observer, p.Name(), "blob container", name)
	return nil
}

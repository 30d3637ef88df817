package azure

import (
	"context"
	"fmt"

	"github.com/imamik/djazure-bootstrap/internal/toolexec"
)

// StorageSKU is the replication tier for the state storage account.
const StorageSKU = "Standard_LRS"

// ContributorRole is the role assigned to the bootstrap service principal.
const ContributorRole = "Contributor"

// CLI runs az commands.
type CLI struct {
	Bin     string
	Invoker toolexec.Invoker
}

// NewCLI creates a CLI for the given binary.
func NewCLI(bin string, inv toolexec.Invoker) *CLI {
	return &CLI{Bin: bin, Invoker: inv}
}

func (c *CLI) command(args ...string) toolexec.Command {
	return toolexec.Command{Name: c.Bin, Args: args}
}

func (c *CLI) run(ctx context.Context, step string, args ...string) (*toolexec.Result, error) {
	return toolexec.RunChecked(ctx, c.Invoker, step, c.command(args...))
}

// CreateServicePrincipal creates a Contributor service principal scoped to
// the session's subscription and returns its SDK-auth credential.
func (c *CLI) CreateServicePrincipal(ctx context.Context, s toolexec.SessionContext, name string) (*ServicePrincipalCredential, error) {
	res, err := c.run(ctx, "create service principal",
		"ad", "sp", "create-for-rbac",
		"--name", name,
		"--role", ContributorRole,
		"--scopes", s.SubscriptionScope(),
		"--sdk-auth",
		"-o", "json",
	)
	if err != nil {
		return nil, err
	}

	cred, err := ParseCredential(res.Stdout)
	if err != nil {
		return nil, fmt.Errorf("create service principal: %w", err)
	}
	return cred, nil
}

// SetSubscription makes the session's subscription the CLI's active one.
func (c *CLI) SetSubscription(ctx context.Context, s toolexec.SessionContext) error {
	_, err := c.run(ctx, "set subscription", "account", "set", "--subscription", s.SubscriptionID)
	return err
}

// CreateResourceGroup creates a resource group in region.
func (c *CLI) CreateResourceGroup(ctx context.Context, s toolexec.SessionContext, name, region string) error {
	_, err := c.run(ctx, "create resource group",
		s.AzureArgs("group", "create", "-l", region, "-n", name)...)
	return err
}

// CreateStorageAccount creates a locally redundant storage account.
func (c *CLI) CreateStorageAccount(ctx context.Context, s toolexec.SessionContext, name, resourceGroup, region string) error {
	_, err := c.run(ctx, "create storage account",
		s.AzureArgs(
			"storage", "account", "create",
			"--name", name,
			"--resource-group", resourceGroup,
			"--location", region,
			"--sku", StorageSKU,
		)...)
	return err
}

// CreateStorageContainer creates a blob container in a storage account.
func (c *CLI) CreateStorageContainer(ctx context.Context, s toolexec.SessionContext, account, name string) error {
	_, err := c.run(ctx, "create storage container",
		s.AzureArgs(
			"storage", "container", "create",
			"--account-name", account,
			"--name", name,
		)...)
	return err
}

package azure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/imamik/djazure-bootstrap/internal/toolexec"
)

// ErrDeclined is returned when the operator chooses not to continue.
// It ends the run cleanly and is not a failure.
var ErrDeclined = errors.New("bootstrap declined by operator")

// ResourceGroupLister finds resource groups whose name contains a project name.
type ResourceGroupLister interface {
	FindResourceGroups(ctx context.Context, projectName string) ([]string, error)
}

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// CLILister lists resource groups with az group list.
type CLILister struct {
	CLI     *CLI
	Session toolexec.SessionContext
}

// FindResourceGroups implements ResourceGroupLister.
func (l *CLILister) FindResourceGroups(ctx context.Context, projectName string) ([]string, error) {
	query := fmt.Sprintf("[?contains(name, '%s')].name", projectName)
	res, err := l.CLI.run(ctx, "list resource groups",
		l.Session.AzureArgs("group", "list", "--query", query, "-o", "tsv")...)
	if err != nil {
		return nil, err
	}
	return parseTSVNames(string(res.Stdout)), nil
}

func parseTSVNames(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// SDKLister lists resource groups through the ARM API. It authenticates with
// the az CLI's login, so it needs no credentials of its own.
type SDKLister struct {
	listNames func(ctx context.Context) ([]string, error)
}

// NewSDKLister creates a lister for subscriptionID using the az login.
func NewSDKLister(subscriptionID string) (*SDKLister, error) {
	cred, err := azidentity.NewAzureCLICredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure CLI credential: %w", err)
	}
	return NewSDKListerWithCredential(subscriptionID, cred, nil)
}

// NewSDKListerWithCredential creates a lister with an explicit credential.
// opts may be nil.
func NewSDKListerWithCredential(subscriptionID string, cred azcore.TokenCredential, opts *arm.ClientOptions) (*SDKLister, error) {
	client, err := armresources.NewResourceGroupsClient(subscriptionID, cred, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}

	return &SDKLister{
		listNames: func(ctx context.Context) ([]string, error) {
			var names []string
			pager := client.NewListPager(nil)
			for pager.More() {
				page, err := pager.NextPage(ctx)
				if err != nil {
					return nil, fmt.Errorf("failed to list resource groups: %w", err)
				}
				for _, rg := range page.Value {
					if rg != nil && rg.Name != nil {
						names = append(names, *rg.Name)
					}
				}
			}
			return names, nil
		},
	}, nil
}

// FindResourceGroups implements ResourceGroupLister.
func (l *SDKLister) FindResourceGroups(ctx context.Context, projectName string) ([]string, error) {
	all, err := l.listNames(ctx)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, name := range all {
		if strings.Contains(name, projectName) {
			matches = append(matches, name)
		}
	}
	return matches, nil
}

// Guard refuses to provision over an existing project without confirmation.
type Guard struct {
	Lister    ResourceGroupLister
	Confirmer Confirmer
	Out       io.Writer

	// AssumeYes confirms without asking.
	AssumeYes bool
}

// Check looks for resource groups containing projectName. With no match it
// returns nil silently. Otherwise it lists them and asks the operator; a
// "no" returns ErrDeclined.
func (g *Guard) Check(ctx context.Context, projectName string) error {
	existing, err := g.Lister.FindResourceGroups(ctx, projectName)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return nil
	}

	fmt.Fprintf(g.Out, "Found %d existing resource group(s) matching %q:\n", len(existing), projectName)
	for _, name := range existing {
		fmt.Fprintf(g.Out, "  - %s\n", name)
	}

	if g.AssumeYes {
		log.Printf("[Guard] Continuing past %d existing resource group(s) (--yes)", len(existing))
		return nil
	}

	ok, err := g.Confirmer.Confirm(ctx, "This project may already be bootstrapped. Continue anyway?")
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return ErrDeclined
	}
	return nil
}

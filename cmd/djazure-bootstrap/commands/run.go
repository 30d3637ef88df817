package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/djazure-bootstrap/cmd/djazure-bootstrap/handlers"
)

// Run returns the command that performs the bootstrap.
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: djazure.yaml if present)
//	--project, --subscription, --region, --admin-username: skip the matching prompt
//	--repo: OWNER/REPO receiving the secrets (default: the checkout's remote)
//	--yes, -y: continue without asking when the project already exists
//	--skip-personalize: leave the template files untouched
//	--guard: how existing resource groups are found (cli or sdk)
//	--metrics-file: write run metrics in Prometheus text format
func Run() *cobra.Command {
	var opts handlers.RunOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Provision Terraform state storage and publish deployment secrets",
		Long: `Bootstrap a freshly cloned djazure project.

The run asks for the project name, Azure subscription, region and Django
superuser, personalizes the template, logs in to Azure and creates:

  - a Contributor service principal <project>-sp
  - a resource group <project>-tf-state-rg
  - a storage account and a "state" blob container for Terraform state

It then logs in to GitHub and publishes the credentials as repository
secrets. The password is never echoed or logged. The secrets file used for
the upload is deleted when the run ends.

If resource groups containing the project name already exist you are asked
before anything is created. Nothing is rolled back after a failure; the
resources created so far are listed instead.

Examples:
  # Interactive bootstrap
  djazure-bootstrap run

  # Skip most prompts
  djazure-bootstrap run --project myapp --subscription 0000-... --region westeurope

  # Publish to a specific repository
  djazure-bootstrap run --repo acme/myapp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: djazure.yaml)")
	f.StringVar(&opts.Preset.ProjectName, "project", "", "Project name")
	f.StringVar(&opts.Preset.SubscriptionID, "subscription", "", "Azure subscription id")
	f.StringVar(&opts.Preset.Region, "region", "", "Azure region")
	f.StringVar(&opts.Preset.AdminUsername, "admin-username", "", "Django superuser name")
	f.StringVar(&opts.Repo, "repo", "", "GitHub repository (OWNER/REPO) receiving the secrets")
	f.BoolVarP(&opts.AssumeYes, "yes", "y", false, "Continue without asking when the project already exists")
	f.BoolVar(&opts.SkipPersonalize, "skip-personalize", false, "Do not rewrite the template files")
	f.StringVar(&opts.GuardBackend, "guard", "", "Existing resource group lookup: cli or sdk")
	f.StringVar(&opts.MetricsFile, "metrics-file", "", "Write run metrics to this file")

	return cmd
}

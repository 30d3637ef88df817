// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/imamik/djazure-bootstrap/internal/azure"
	"github.com/imamik/djazure-bootstrap/internal/config"
	"github.com/imamik/djazure-bootstrap/internal/github"
	"github.com/imamik/djazure-bootstrap/internal/input"
	"github.com/imamik/djazure-bootstrap/internal/personalize"
	"github.com/imamik/djazure-bootstrap/internal/provisioning"
	"github.com/imamik/djazure-bootstrap/internal/toolexec"
	"github.com/imamik/djazure-bootstrap/internal/util/naming"
	"github.com/imamik/djazure-bootstrap/internal/util/prerequisites"
)

// RunOptions are the command-line overrides for a bootstrap run.
type RunOptions struct {
	ConfigPath string

	// Preset answers skip their prompt.
	Preset input.Preset

	// Repo overrides github.repo from the config file.
	Repo string

	// MetricsFile overrides metrics.file from the config file.
	MetricsFile string

	// GuardBackend overrides guard.backend from the config file.
	GuardBackend string

	AssumeYes       bool
	SkipPersonalize bool
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig loads the optional configuration file.
	loadConfig = config.Load

	// newInvoker creates the subprocess runner for az and gh.
	newInvoker = func() toolexec.Invoker {
		return toolexec.NewExecInvoker()
	}

	// newPrompter creates the operator prompter.
	newPrompter = func() input.Prompter {
		return input.NewTerminalPrompter()
	}

	// newSDKLister creates the ARM-backed resource group lister.
	newSDKLister = func(subscriptionID string) (azure.ResourceGroupLister, error) {
		return azure.NewSDKLister(subscriptionID)
	}

	// checkPrereqs verifies that az and gh are installed.
	checkPrereqs = func(cfg *config.Config) error {
		return prerequisites.Check(prerequisites.BootstrapTools(cfg.Tools.Azure, cfg.Tools.GitHub)).Error()
	}

	// getwd returns the directory receiving the transport file.
	getwd = os.Getwd

	// now stamps the storage account name.
	now = time.Now

	// output receives operator-facing results.
	output io.Writer = os.Stdout
)

// Run bootstraps a project checkout: it collects the parameters, personalizes
// the template, logs in to Azure, checks for an earlier bootstrap, provisions
// the Terraform state storage and service principal, and publishes the
// resulting secrets to GitHub.
//
// Declining the existing-project confirmation ends the run with a nil error.
// After a provisioning failure the resources created so far are listed; they
// are not removed.
func Run(ctx context.Context, opts RunOptions) error {
	cfg, err := loadRunConfig(opts)
	if err != nil {
		return err
	}

	if err := checkPrereqs(cfg); err != nil {
		return err
	}

	prompter := newPrompter()
	collector := input.NewCollector(prompter, os.Stderr, cfg.Defaults)
	collector.Preset = opts.Preset

	params, err := collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect parameters: %w", err)
	}
	log.Printf("[Bootstrap] Parameters: %s", params)

	if !opts.SkipPersonalize {
		if err := personalizeProject(cfg, params.ProjectName); err != nil {
			return err
		}
	}

	inv := newInvoker()
	cli := azure.NewCLI(cfg.Tools.Azure, inv)

	session := azure.NewSession(cli)
	if err := session.Login(ctx); err != nil {
		return err
	}
	if err := session.SelectSubscription(ctx, params.SubscriptionID); err != nil {
		return err
	}

	lister, err := newLister(cfg, cli, session.Context())
	if err != nil {
		return err
	}
	guard := &azure.Guard{
		Lister:    lister,
		Confirmer: prompter,
		Out:       output,
		AssumeYes: opts.AssumeYes,
	}
	if err := guard.Check(ctx, params.ProjectName); err != nil {
		if errors.Is(err, azure.ErrDeclined) {
			fmt.Fprintln(output, "Bootstrap cancelled, nothing was created.")
			return nil
		}
		return fmt.Errorf("failed to check for existing resources: %w", err)
	}

	names := naming.ForProject(params.ProjectName, naming.Timestamp(now()))
	pctx := provisioning.NewContext(ctx, params, names, session.Context(), cli)
	pctx.Observer = pctx.Observer.WithFields(map[string]string{"project": params.ProjectName})

	runErr := provisioning.RunPhases(pctx, provisioning.DefaultPhases())
	if runErr == nil {
		runErr = publishSecrets(ctx, cfg, inv, params, pctx)
	}

	pctx.Metrics.ObserveRun(runErr == nil)
	if err := pctx.Metrics.WriteTextfile(cfg.Metrics.File); err != nil {
		log.Printf("[Bootstrap] Warning: failed to write metrics: %v", err)
	}

	if runErr != nil {
		fmt.Fprint(output, renderFailure(pctx.State.Created()))
		return runErr
	}

	fmt.Fprint(output, renderSummary(params, names, pctx.State, cfg.GitHub.Repo))
	return nil
}

// loadRunConfig loads the config file and applies flag overrides.
func loadRunConfig(opts RunOptions) (*config.Config, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.Repo != "" {
		cfg.GitHub.Repo = opts.Repo
	}
	if opts.MetricsFile != "" {
		cfg.Metrics.File = opts.MetricsFile
	}
	if opts.GuardBackend != "" {
		cfg.Guard.Backend = opts.GuardBackend
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func personalizeProject(cfg *config.Config, name string) error {
	p := &personalize.Personalizer{
		Root:  cfg.Personalize.Root,
		Token: cfg.Personalize.Token,
		Files: cfg.Personalize.Files,
	}
	res, err := p.Apply(name)
	if err != nil {
		return fmt.Errorf("failed to personalize project: %w", err)
	}
	if res.AlreadyApplied {
		log.Printf("[Bootstrap] Project already personalized as %s", name)
		return nil
	}
	log.Printf("[Bootstrap] Personalized %d file(s)", len(res.Rewritten))
	return nil
}

// newLister picks the resource group lister for the configured guard backend.
func newLister(cfg *config.Config, cli *azure.CLI, sc toolexec.SessionContext) (azure.ResourceGroupLister, error) {
	switch cfg.Guard.Backend {
	case config.GuardBackendSDK:
		lister, err := newSDKLister(sc.SubscriptionID)
		if err != nil {
			return nil, fmt.Errorf("failed to create resource group lister: %w", err)
		}
		return lister, nil
	default:
		return &azure.CLILister{CLI: cli, Session: sc}, nil
	}
}

func publishSecrets(ctx context.Context, cfg *config.Config, inv toolexec.Invoker, params config.BootstrapParameters, pctx *provisioning.Context) error {
	bundle, err := github.NewSecretBundle(params, pctx.Names, pctx.State.Credential)
	if err != nil {
		return fmt.Errorf("failed to build secret bundle: %w", err)
	}

	dir, err := getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	publisher := github.NewPublisher(cfg.Tools.GitHub, inv, dir, cfg.GitHub.SecretsFile, cfg.GitHub.Repo)
	if err := publisher.Login(ctx); err != nil {
		return err
	}
	return publisher.Publish(ctx, bundle)
}

// Package github publishes bootstrap secrets to a repository through the gh CLI.
package github

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/imamik/djazure-bootstrap/internal/toolexec"
)

// Publisher drives gh.
type Publisher struct {
	Bin     string
	Invoker toolexec.Invoker

	// Repo is an optional OWNER/REPO target.
	Repo string

	// Dir and File locate the transport file.
	Dir  string
	File string
}

// NewPublisher creates a publisher writing the transport file into dir.
func NewPublisher(bin string, inv toolexec.Invoker, dir, file, repo string) *Publisher {
	return &Publisher{Bin: bin, Invoker: inv, Dir: dir, File: file, Repo: repo}
}

// Login authenticates gh unless it already holds a session.
func (p *Publisher) Login(ctx context.Context) error {
	res, err := p.Invoker.Run(ctx, toolexec.Command{Name: p.Bin, Args: []string{"auth", "status"}})
	if err != nil {
		return fmt.Errorf("gh auth status: %w", err)
	}
	if res.Success() {
		log.Printf("[Publisher] gh already authenticated")
		return nil
	}

	_, err = toolexec.RunChecked(ctx, p.Invoker, "gh auth login", toolexec.Command{
		Name:        p.Bin,
		Args:        []string{"auth", "login"},
		Interactive: true,
	})
	return err
}

// TransportPath is where Publish writes the secrets file.
func (p *Publisher) TransportPath() string {
	return filepath.Join(p.Dir, p.File)
}

// Publish writes the bundle to the transport file, imports it with
// gh secret set -f and removes the file whatever the outcome.
func (p *Publisher) Publish(ctx context.Context, bundle *SecretBundle) (err error) {
	if err := bundle.Validate(); err != nil {
		return err
	}

	path := p.TransportPath()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = errors.Join(err, fmt.Errorf("failed to remove %s: %w", path, rmErr))
		}
	}()

	if err := writeTransportFile(path, bundle.Encode()); err != nil {
		return err
	}

	args := []string{"secret", "set", "-f", path}
	if p.Repo != "" {
		args = append(args, "--repo", p.Repo)
	}

	log.Printf("[Publisher] Publishing %d secrets", len(bundle.Keys()))
	if _, err := toolexec.RunChecked(ctx, p.Invoker, "gh secret set", toolexec.Command{Name: p.Bin, Args: args}); err != nil {
		return err
	}
	log.Printf("[Publisher] Secrets published")
	return nil
}

func writeTransportFile(path string, data []byte) error {
	// A stale entry may be a symlink; replace it instead of writing through it.
	if _, err := os.Lstat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove stale secrets file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to inspect secrets file: %w", err)
	}

	// #nosec G304 - path is built from config validated to a plain file name
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create secrets file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write secrets file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close secrets file: %w", err)
	}
	return nil
}

package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/imamik/djazure-bootstrap/internal/toolexec"
)

// Session manages the az login and the run's subscription context.
type Session struct {
	cli *CLI
	sc  toolexec.SessionContext
}

// NewSession creates a session manager over cli.
func NewSession(cli *CLI) *Session {
	return &Session{cli: cli}
}

// Context returns the current subscription context.
func (s *Session) Context() toolexec.SessionContext {
	return s.sc
}

// Login runs the interactive az login.
func (s *Session) Login(ctx context.Context) error {
	log.Printf("[Session] Logging in to Azure")
	cmd := s.cli.command("login")
	cmd.Interactive = true
	_, err := toolexec.RunChecked(ctx, s.cli.Invoker, "az login", cmd)
	return err
}

// SelectSubscription sets the active subscription and records it, with its
// tenant, in the session context.
func (s *Session) SelectSubscription(ctx context.Context, id string) error {
	log.Printf("[Session] Selecting subscription %s", id)
	next := toolexec.SessionContext{SubscriptionID: id}
	if err := s.cli.SetSubscription(ctx, next); err != nil {
		return err
	}

	tenant, err := s.tenant(ctx, next)
	if err != nil {
		return err
	}
	next.TenantID = tenant
	s.sc = next
	return nil
}

type accountInfo struct {
	ID       string `json:"id"`
	TenantID string `json:"tenantId"`
}

func (s *Session) tenant(ctx context.Context, sc toolexec.SessionContext) (string, error) {
	res, err := s.cli.run(ctx, "show account", sc.AzureArgs("account", "show", "-o", "json")...)
	if err != nil {
		return "", err
	}

	var info accountInfo
	if err := json.Unmarshal(res.Stdout, &info); err != nil {
		return "", fmt.Errorf("show account: failed to parse output: %w", err)
	}
	return info.TenantID, nil
}

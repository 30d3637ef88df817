package provisioning

import (
	"fmt"

	"github.com/imamik/djazure-bootstrap/internal/azure"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Service principal results (populated by ServicePrincipalPhase)
	ServicePrincipal string
	Credential       *azure.ServicePrincipalCredential

	// Storage results (populated by the resource phases)
	ResourceGroup  string
	StorageAccount string
	Container      string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Created lists the resources that exist because of this run, in creation
// order. After a failure these are left in place.
func (s *State) Created() []string {
	var out []string
	if s.Credential != nil {
		out = append(out, fmt.Sprintf("service principal %s (appId %s)", s.ServicePrincipal, s.Credential.ClientID))
	}
	if s.ResourceGroup != "" {
		out = append(out, fmt.Sprintf("resource group %s", s.ResourceGroup))
	}
	if s.StorageAccount != "" {
		out = append(out, fmt.Sprintf("storage account %s", s.StorageAccount))
	}
	if s.Container != "" {
		out = append(out, fmt.Sprintf("blob container %s", s.Container))
	}
	return out
}

package azure

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ServicePrincipalCredential is the SDK-auth output of az ad sp create-for-rbac.
type ServicePrincipalCredential struct {
	ClientID       string `json:"clientId"`
	ClientSecret   string `json:"clientSecret"`
	SubscriptionID string `json:"subscriptionId"`
	TenantID       string `json:"tenantId"`

	// RawJSON is the full document compacted onto one line.
	RawJSON string `json:"-"`
}

// String keeps the client secret out of logs.
func (c ServicePrincipalCredential) String() string {
	return fmt.Sprintf("clientId=%s tenantId=%s subscriptionId=%s", c.ClientID, c.TenantID, c.SubscriptionID)
}

// GoString keeps %#v from printing the secret.
func (c ServicePrincipalCredential) GoString() string {
	return "azure.ServicePrincipalCredential{" + c.String() + "}"
}

// Validate checks that every field needed downstream is present.
func (c *ServicePrincipalCredential) Validate() error {
	var errs []error
	if c.ClientID == "" {
		errs = append(errs, errors.New("clientId is required"))
	}
	if c.ClientSecret == "" {
		errs = append(errs, errors.New("clientSecret is required"))
	}
	if c.SubscriptionID == "" {
		errs = append(errs, errors.New("subscriptionId is required"))
	}
	if c.TenantID == "" {
		errs = append(errs, errors.New("tenantId is required"))
	}
	return errors.Join(errs...)
}

// CredentialParseError reports unusable service principal output.
type CredentialParseError struct {
	Err error
}

func (e *CredentialParseError) Error() string {
	return fmt.Sprintf("failed to parse service principal credential: %v", e.Err)
}

func (e *CredentialParseError) Unwrap() error {
	return e.Err
}

// ParseCredential parses and validates SDK-auth JSON.
// The raw document is kept, compacted, for consumers that need all of it.
func ParseCredential(data []byte) (*ServicePrincipalCredential, error) {
	var cred ServicePrincipalCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, &CredentialParseError{Err: err}
	}
	if err := cred.Validate(); err != nil {
		return nil, &CredentialParseError{Err: err}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return nil, &CredentialParseError{Err: err}
	}
	cred.RawJSON = compact.String()

	return &cred, nil
}

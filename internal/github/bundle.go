package github

import (
	"fmt"
	"strings"

	"github.com/imamik/djazure-bootstrap/internal/azure"
	"github.com/imamik/djazure-bootstrap/internal/config"
	"github.com/imamik/djazure-bootstrap/internal/util/naming"
)

// Secret keys published to the repository, in file order.
const (
	KeyStateResourceGroup  = "STATE_RG"
	KeyStateStorageAccount = "STATE_STORAGE_ACCOUNT"
	KeyClientID            = "ARM_CLIENT_ID"
	KeyClientSecret        = "ARM_CLIENT_SECRET"
	KeySubscriptionID      = "ARM_SUBSCRIPTION_ID"
	KeyTenantID            = "ARM_TENANT_ID"
	KeyAzureCredentials    = "AZURE_CREDENTIALS"
	KeyProjectName         = "PROJECT_NAME"
	KeySuperuserUser       = "DJANGO_SUPERUSER_USER"
	KeySuperuserPassword   = "DJANGO_SUPERUSER_PASSWORD"
)

// Secret is one repository secret.
type Secret struct {
	Key   string
	Value string
}

// SecretBundle is the ordered set of secrets for one run.
type SecretBundle struct {
	secrets []Secret
}

// NewSecretBundle assembles the bundle from the run inputs and the service
// principal credential.
func NewSecretBundle(params config.BootstrapParameters, names naming.ResourceNames, cred *azure.ServicePrincipalCredential) (*SecretBundle, error) {
	if cred == nil {
		return nil, fmt.Errorf("service principal credential is required")
	}
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	return &SecretBundle{secrets: []Secret{
		{KeyStateResourceGroup, names.ResourceGroup},
		{KeyStateStorageAccount, names.StorageAccount},
		{KeyClientID, cred.ClientID},
		{KeyClientSecret, cred.ClientSecret},
		{KeySubscriptionID, cred.SubscriptionID},
		{KeyTenantID, cred.TenantID},
		{KeyAzureCredentials, cred.RawJSON},
		{KeyProjectName, params.ProjectName},
		{KeySuperuserUser, params.AdminUsername},
		{KeySuperuserPassword, params.AdminPassword},
	}}, nil
}

// Keys returns the secret names in order.
func (b *SecretBundle) Keys() []string {
	keys := make([]string, 0, len(b.secrets))
	for _, s := range b.secrets {
		keys = append(keys, s.Key)
	}
	return keys
}

// Validate rejects empty values and values that cannot be represented on a
// single dotenv line.
func (b *SecretBundle) Validate() error {
	for _, s := range b.secrets {
		if s.Value == "" {
			return fmt.Errorf("secret %s is empty", s.Key)
		}
		if strings.ContainsAny(s.Value, "\r\n") {
			return fmt.Errorf("secret %s contains a line break", s.Key)
		}
	}
	return nil
}

// Encode renders the bundle as KEY=VALUE lines.
func (b *SecretBundle) Encode() []byte {
	var sb strings.Builder
	for _, s := range b.secrets {
		sb.WriteString(s.Key)
		sb.WriteByte('=')
		sb.WriteString(s.Value)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// String lists the keys only.
func (b *SecretBundle) String() string {
	return strings.Join(b.Keys(), ",")
}

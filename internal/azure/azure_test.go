package azure

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/djazure-bootstrap/internal/toolexec"
)

const sdkAuthJSON = `{
  "clientId": "11111111-1111-1111-1111-111111111111",
  "clientSecret": "s3cr3t",
  "subscriptionId": "sub-1",
  "tenantId": "tenant-1",
  "activeDirectoryEndpointUrl": "https://login.microsoftonline.com",
  "resourceManagerEndpointUrl": "https://management.azure.com/"
}`

var testSession = toolexec.SessionContext{SubscriptionID: "sub-1", TenantID: "tenant-1"}

func TestParseCredential(t *testing.T) {
	t.Parallel()

	cred, err := ParseCredential([]byte(sdkAuthJSON))
	require.NoError(t, err)

	assert.Equal(t, "11111111-1111-1111-1111-111111111111", cred.ClientID)
	assert.Equal(t, "s3cr3t", cred.ClientSecret)
	assert.Equal(t, "sub-1", cred.SubscriptionID)
	assert.Equal(t, "tenant-1", cred.TenantID)
	assert.NotContains(t, cred.RawJSON, "\n")
	assert.Contains(t, cred.RawJSON, `"resourceManagerEndpointUrl":"https://management.azure.com/"`)
	assert.NotContains(t, cred.String(), "s3cr3t")
}

func TestParseCredential_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "not json", input: "ERROR: something", wantErr: "invalid character"},
		{name: "empty", input: "", wantErr: "unexpected end of JSON input"},
		{name: "missing secret", input: `{"clientId":"a","subscriptionId":"b","tenantId":"c"}`, wantErr: "clientSecret is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCredential([]byte(tt.input))
			require.Error(t, err)

			var parseErr *CredentialParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCLI_CommandLines(t *testing.T) {
	t.Parallel()

	fake := toolexec.NewFake().On("az ad sp create-for-rbac", toolexec.FakeResponse{Stdout: sdkAuthJSON})
	cli := NewCLI("az", fake)
	ctx := context.Background()

	_, err := cli.CreateServicePrincipal(ctx, testSession, "myapp-sp")
	require.NoError(t, err)
	require.NoError(t, cli.SetSubscription(ctx, testSession))
	require.NoError(t, cli.CreateResourceGroup(ctx, testSession, "myapp-tf-state-rg", "eastus"))
	require.NoError(t, cli.CreateStorageAccount(ctx, testSession, "myappstorage202401011200", "myapp-tf-state-rg", "eastus"))
	require.NoError(t, cli.CreateStorageContainer(ctx, testSession, "myappstorage202401011200", "state"))

	assert.Equal(t, []string{
		"az ad sp create-for-rbac --name myapp-sp --role Contributor --scopes /subscriptions/sub-1 --sdk-auth -o json",
		"az account set --subscription sub-1",
		"az group create -l eastus -n myapp-tf-state-rg --subscription sub-1",
		"az storage account create --name myappstorage202401011200 --resource-group myapp-tf-state-rg --location eastus --sku Standard_LRS --subscription sub-1",
		"az storage container create --account-name myappstorage202401011200 --name state --subscription sub-1",
	}, fake.CommandLines())
}

func TestCLI_CreateServicePrincipal_Failures(t *testing.T) {
	t.Parallel()

	t.Run("non-zero exit", func(t *testing.T) {
		t.Parallel()
		fake := toolexec.NewFake().On("az ad sp", toolexec.FakeResponse{Stderr: "Insufficient privileges", ExitCode: 1})

		_, err := NewCLI("az", fake).CreateServicePrincipal(context.Background(), testSession, "x-sp")

		var toolErr *toolexec.ToolError
		require.True(t, errors.As(err, &toolErr))
		assert.Equal(t, "create service principal: az exited with status 1: Insufficient privileges", err.Error())
	})

	t.Run("unparseable output", func(t *testing.T) {
		t.Parallel()
		fake := toolexec.NewFake().On("az ad sp", toolexec.FakeResponse{Stdout: "WARNING: not json"})

		_, err := NewCLI("az", fake).CreateServicePrincipal(context.Background(), testSession, "x-sp")

		var parseErr *CredentialParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Contains(t, err.Error(), "create service principal: failed to parse service principal credential")
	})
}

func TestSession_LoginAndSelect(t *testing.T) {
	t.Parallel()

	fake := toolexec.NewFake().
		On("az account show", toolexec.FakeResponse{Stdout: `{"id":"sub-1","tenantId":"tenant-9"}`})
	s := NewSession(NewCLI("az", fake))
	ctx := context.Background()

	require.NoError(t, s.Login(ctx))
	require.NoError(t, s.SelectSubscription(ctx, "sub-1"))

	assert.Equal(t, toolexec.SessionContext{SubscriptionID: "sub-1", TenantID: "tenant-9"}, s.Context())
	require.Len(t, fake.Calls, 3)
	assert.True(t, fake.Calls[0].Interactive, "login is interactive")
	assert.Equal(t, "az login", fake.Calls[0].String())
	assert.Equal(t, "az account set --subscription sub-1", fake.Calls[1].String())
	assert.Equal(t, "az account show -o json --subscription sub-1", fake.Calls[2].String())
}

func TestSession_LoginFailure(t *testing.T) {
	t.Parallel()

	fake := toolexec.NewFake().On("az login", toolexec.FakeResponse{Stderr: "AADSTS50020: user not found", ExitCode: 1})
	s := NewSession(NewCLI("az", fake))

	err := s.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "az login")
	assert.Contains(t, err.Error(), "AADSTS50020")
}

func TestSession_SelectSubscriptionFailure(t *testing.T) {
	t.Parallel()

	fake := toolexec.NewFake().On("az account set", toolexec.FakeResponse{Stderr: "subscription not found", ExitCode: 1})
	s := NewSession(NewCLI("az", fake))

	err := s.SelectSubscription(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscription not found")
	assert.Empty(t, s.Context().SubscriptionID, "context unchanged on failure")
	assert.Len(t, fake.Calls, 1)
}

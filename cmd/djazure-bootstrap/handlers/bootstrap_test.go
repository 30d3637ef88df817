package handlers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/djazure-bootstrap/internal/azure"
	"github.com/imamik/djazure-bootstrap/internal/config"
	"github.com/imamik/djazure-bootstrap/internal/input"
	"github.com/imamik/djazure-bootstrap/internal/toolexec"
)

const (
	accountJSON = `{"id":"sub-1","tenantId":"tenant-1"}`
	sdkAuthJSON = `{"clientId":"app-1","clientSecret":"s3cr3t","subscriptionId":"sub-1","tenantId":"tenant-1"}`

	// project, subscription, region (default), username (default), password twice
	standardAnswers = "demo\nsub-1\n\n\nPassw0rd\nPassw0rd\n"
)

type testEnv struct {
	fake    *toolexec.Fake
	out     *bytes.Buffer
	workDir string
	cfg     *config.Config
}

// saveAndRestoreFactories swaps every factory for a test double and restores
// the originals when the test ends.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origLoadConfig := loadConfig
	origNewInvoker := newInvoker
	origNewPrompter := newPrompter
	origNewSDKLister := newSDKLister
	origCheckPrereqs := checkPrereqs
	origGetwd := getwd
	origNow := now
	origOutput := output
	origNewChecker := newChecker
	origSaveConfig := saveConfig

	t.Cleanup(func() {
		loadConfig = origLoadConfig
		newInvoker = origNewInvoker
		newPrompter = origNewPrompter
		newSDKLister = origNewSDKLister
		checkPrereqs = origCheckPrereqs
		getwd = origGetwd
		now = origNow
		output = origOutput
		newChecker = origNewChecker
		saveConfig = origSaveConfig
	})
}

func setupRun(t *testing.T, answers string) *testEnv {
	t.Helper()
	saveAndRestoreFactories(t)

	env := &testEnv{
		fake:    toolexec.NewFake(),
		out:     &bytes.Buffer{},
		workDir: t.TempDir(),
		cfg:     config.Default(),
	}
	env.fake.
		On("az account show", toolexec.FakeResponse{Stdout: accountJSON}).
		On("az ad sp create-for-rbac", toolexec.FakeResponse{Stdout: sdkAuthJSON})

	loadConfig = func(string) (*config.Config, error) { return env.cfg, nil }
	newInvoker = func() toolexec.Invoker { return env.fake }
	newPrompter = func() input.Prompter {
		return input.NewReaderPrompter(strings.NewReader(answers), &bytes.Buffer{})
	}
	checkPrereqs = func(*config.Config) error { return nil }
	getwd = func() (string, error) { return env.workDir, nil }
	now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	output = env.out

	return env
}

func (e *testEnv) transportFile() string {
	return filepath.Join(e.workDir, config.DefaultSecretsFile)
}

func TestRun_HappyPath(t *testing.T) {
	env := setupRun(t, standardAnswers)

	var published string
	env.fake.OnRun = func(cmd toolexec.Command) {
		if strings.HasPrefix(cmd.String(), "gh secret set") {
			data, err := os.ReadFile(env.transportFile())
			require.NoError(t, err)
			published = string(data)
		}
	}

	err := Run(context.Background(), RunOptions{SkipPersonalize: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"az login",
		"az account set --subscription sub-1",
		"az account show -o json --subscription sub-1",
		"az group list --query [?contains(name, 'demo')].name -o tsv --subscription sub-1",
		"az ad sp create-for-rbac --name demo-sp --role Contributor --scopes /subscriptions/sub-1 --sdk-auth -o json",
		"az account set --subscription sub-1",
		"az group create -l eastus -n demo-tf-state-rg --subscription sub-1",
		"az storage account create --name demostorage2024010112000 --resource-group demo-tf-state-rg --location eastus --sku Standard_LRS --subscription sub-1",
		"az storage container create --account-name demostorage2024010112000 --name state --subscription sub-1",
		"gh auth status",
		"gh secret set -f " + env.transportFile(),
	}, env.fake.CommandLines())

	lines := strings.Split(strings.TrimSuffix(published, "\n"), "\n")
	assert.Len(t, lines, 10)
	assert.Contains(t, published, "DJANGO_SUPERUSER_USER=admin\n")
	assert.Contains(t, published, "PROJECT_NAME=demo\n")

	_, err = os.Stat(env.transportFile())
	assert.True(t, errors.Is(err, os.ErrNotExist), "transport file must be removed")

	summary := env.out.String()
	assert.Contains(t, summary, "demostorage2024010112000")
	assert.Contains(t, summary, "app-1")
	assert.NotContains(t, summary, "s3cr3t")
	assert.NotContains(t, summary, "Passw0rd")
}

func TestRun_ExistingProjectDeclined(t *testing.T) {
	env := setupRun(t, standardAnswers+"n\n")
	env.fake.On("az group list", toolexec.FakeResponse{Stdout: "demo-tf-state-rg\n"})

	err := Run(context.Background(), RunOptions{SkipPersonalize: true})
	require.NoError(t, err)

	assert.Empty(t, env.fake.CallsMatching("az ad sp"))
	assert.Empty(t, env.fake.CallsMatching("az group create"))
	assert.Empty(t, env.fake.CallsMatching("az storage"))
	assert.Empty(t, env.fake.CallsMatching("gh"))
	assert.Contains(t, env.out.String(), "demo-tf-state-rg")
	assert.Contains(t, env.out.String(), "Bootstrap cancelled")
}

func TestRun_ExistingProjectConfirmed(t *testing.T) {
	env := setupRun(t, standardAnswers+"yes\n")
	env.fake.On("az group list", toolexec.FakeResponse{Stdout: "demo-tf-state-rg\n"})

	require.NoError(t, Run(context.Background(), RunOptions{SkipPersonalize: true}))
	assert.Len(t, env.fake.CallsMatching("az storage container create"), 1)
	assert.Len(t, env.fake.CallsMatching("gh secret set"), 1)
}

func TestRun_AssumeYesSkipsConfirmation(t *testing.T) {
	// No confirmation answer is available; a prompt would hit EOF.
	env := setupRun(t, standardAnswers)
	env.fake.On("az group list", toolexec.FakeResponse{Stdout: "demo-tf-state-rg\n"})

	require.NoError(t, Run(context.Background(), RunOptions{SkipPersonalize: true, AssumeYes: true}))
	assert.Len(t, env.fake.CallsMatching("gh secret set"), 1)
}

func TestRun_ServicePrincipalFailure(t *testing.T) {
	env := setupRun(t, standardAnswers)
	env.fake.On("az ad sp create-for-rbac", toolexec.FakeResponse{Stderr: "Insufficient privileges", ExitCode: 1})

	metricsFile := filepath.Join(t.TempDir(), "bootstrap.prom")
	err := Run(context.Background(), RunOptions{SkipPersonalize: true, MetricsFile: metricsFile})
	require.Error(t, err)

	var toolErr *toolexec.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Contains(t, err.Error(), "Insufficient privileges")

	assert.Empty(t, env.fake.CallsMatching("az group create"))
	assert.Empty(t, env.fake.CallsMatching("az storage"))
	assert.Empty(t, env.fake.CallsMatching("gh"))
	assert.Contains(t, env.out.String(), "No Azure resources were created")

	data, readErr := os.ReadFile(metricsFile)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "djazure_bootstrap_run_success 0")
}

func TestRun_StorageFailureReportsCreatedResources(t *testing.T) {
	env := setupRun(t, standardAnswers)
	env.fake.On("az storage account create", toolexec.FakeResponse{Stderr: "StorageAccountAlreadyTaken", ExitCode: 1})

	err := Run(context.Background(), RunOptions{SkipPersonalize: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage-account phase failed")

	report := env.out.String()
	assert.Contains(t, report, "demo-sp")
	assert.Contains(t, report, "demo-tf-state-rg")
	assert.Empty(t, env.fake.CallsMatching("gh"))
}

func TestRun_PublishFailureRemovesTransportFile(t *testing.T) {
	env := setupRun(t, standardAnswers)
	env.fake.On("gh secret set", toolexec.FakeResponse{Stderr: "HTTP 403", ExitCode: 1})

	err := Run(context.Background(), RunOptions{SkipPersonalize: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")

	_, statErr := os.Stat(env.transportFile())
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestRun_LoginFailureStopsBeforeGuard(t *testing.T) {
	env := setupRun(t, standardAnswers)
	env.fake.On("az login", toolexec.FakeResponse{Stderr: "login cancelled", ExitCode: 1})

	err := Run(context.Background(), RunOptions{SkipPersonalize: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "az login")
	assert.Equal(t, []string{"az login"}, env.fake.CommandLines())
}

func TestRun_PresetsAndRepo(t *testing.T) {
	env := setupRun(t, "Passw0rd\nPassw0rd\n")

	err := Run(context.Background(), RunOptions{
		SkipPersonalize: true,
		Repo:            "owner/repo",
		Preset: input.Preset{
			ProjectName:    "My App",
			SubscriptionID: "sub-1",
			Region:         "WestEurope",
			AdminUsername:  "root_user",
		},
	})
	require.NoError(t, err)

	assert.Len(t, env.fake.CallsMatching("az group create -l westeurope -n myapp-tf-state-rg"), 1)
	calls := env.fake.CallsMatching("gh secret set")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"--repo", "owner/repo"}, calls[0].Args[4:])
}

func TestRun_SDKGuardBackend(t *testing.T) {
	env := setupRun(t, standardAnswers+"n\n")

	var gotSubscription string
	newSDKLister = func(subscriptionID string) (azure.ResourceGroupLister, error) {
		gotSubscription = subscriptionID
		return staticLister{"demo-tf-state-rg"}, nil
	}

	require.NoError(t, Run(context.Background(), RunOptions{SkipPersonalize: true, GuardBackend: config.GuardBackendSDK}))
	assert.Equal(t, "sub-1", gotSubscription)
	assert.Empty(t, env.fake.CallsMatching("az group list"))
	assert.Empty(t, env.fake.CallsMatching("az ad sp"))
}

func TestRun_Personalizes(t *testing.T) {
	env := setupRun(t, standardAnswers)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "manage.py"), []byte("os.environ['DJANGO_SETTINGS_MODULE'] = 'djazure.settings'\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "djazure"), 0o755))
	env.cfg.Personalize.Root = root
	env.cfg.Personalize.Files = []string{"manage.py"}

	require.NoError(t, Run(context.Background(), RunOptions{}))

	data, err := os.ReadFile(filepath.Join(root, "manage.py"))
	require.NoError(t, err)
	assert.Equal(t, "os.environ['DJANGO_SETTINGS_MODULE'] = 'demo.settings'\n", string(data))
	assert.DirExists(t, filepath.Join(root, "demo"))
}

// writeDjazureTemplate lays out the template files the default list names.
func writeDjazureTemplate(t *testing.T, root string) {
	t.Helper()
	files := map[string]string{
		"manage.py":                      "os.environ.setdefault('DJANGO_SETTINGS_MODULE', 'djazure.settings.base')\n",
		"djazure/__init__.py":            "",
		"djazure/settings/__init__.py":   "",
		"djazure/settings/base.py":       "ROOT_URLCONF = 'djazure.urls'\nWSGI_APPLICATION = 'djazure.wsgi.application'\n",
		"djazure/settings/production.py": "from .base import *\n\nDEBUG = False\n",
		"djazure/urls.py":                "urlpatterns = []\n",
		"djazure/asgi.py":                "os.environ.setdefault('DJANGO_SETTINGS_MODULE', 'djazure.settings.production')\n",
		"djazure/wsgi.py":                "os.environ.setdefault('DJANGO_SETTINGS_MODULE', 'djazure.settings.production')\n",
		"utilities/urls.py":              "urlpatterns = []\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestRun_PersonalizesDefaultTemplateLayout(t *testing.T) {
	env := setupRun(t, standardAnswers)

	root := t.TempDir()
	writeDjazureTemplate(t, root)
	env.cfg.Personalize.Root = root

	require.NoError(t, Run(context.Background(), RunOptions{}))

	assert.NoDirExists(t, filepath.Join(root, "djazure"))
	base, err := os.ReadFile(filepath.Join(root, "demo", "settings", "base.py"))
	require.NoError(t, err)
	assert.Equal(t, "ROOT_URLCONF = 'demo.urls'\nWSGI_APPLICATION = 'demo.wsgi.application'\n", string(base))
	wsgi, err := os.ReadFile(filepath.Join(root, "demo", "wsgi.py"))
	require.NoError(t, err)
	assert.Contains(t, string(wsgi), "'demo.settings.production'")
	assert.Len(t, env.fake.CallsMatching("gh secret set"), 1)
}

func TestRun_RerunAfterPersonalizeReachesGuard(t *testing.T) {
	env := setupRun(t, standardAnswers+"n\n")

	root := t.TempDir()
	writeDjazureTemplate(t, root)
	env.cfg.Personalize.Root = root

	// The first run personalizes the checkout and then fails at gh.
	env.fake.On("gh secret set", toolexec.FakeResponse{Stderr: "HTTP 403", ExitCode: 1})
	require.Error(t, Run(context.Background(), RunOptions{}))
	require.DirExists(t, filepath.Join(root, "demo"))

	// The second run must get as far as the existing-project check.
	env.fake.On("az group list", toolexec.FakeResponse{Stdout: "demo-tf-state-rg\n"})
	env.fake.Calls = nil
	env.out.Reset()

	require.NoError(t, Run(context.Background(), RunOptions{}))
	assert.Len(t, env.fake.CallsMatching("az group list"), 1)
	assert.Empty(t, env.fake.CallsMatching("az ad sp"))
	assert.Contains(t, env.out.String(), "Bootstrap cancelled")
}

func TestRun_PersonalizeFailureTouchesNoCloud(t *testing.T) {
	env := setupRun(t, standardAnswers)
	env.cfg.Personalize.Root = t.TempDir()
	env.cfg.Personalize.Files = []string{"missing.py"}

	err := Run(context.Background(), RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to personalize project")
	assert.Empty(t, env.fake.Calls)
}

func TestRun_ClosedInput(t *testing.T) {
	env := setupRun(t, "demo\n")

	err := Run(context.Background(), RunOptions{SkipPersonalize: true})
	require.Error(t, err)
	assert.True(t, input.IsClosed(err))
	assert.Empty(t, env.fake.Calls)
}

func TestRun_PrerequisitesMissing(t *testing.T) {
	env := setupRun(t, standardAnswers)
	checkPrereqs = func(*config.Config) error { return errors.New("missing required tools: az") }

	err := Run(context.Background(), RunOptions{SkipPersonalize: true})
	assert.EqualError(t, err, "missing required tools: az")
	assert.Empty(t, env.fake.Calls)
}

func TestLoadRunConfig_RejectsInvalidRepo(t *testing.T) {
	saveAndRestoreFactories(t)
	loadConfig = func(string) (*config.Config, error) { return config.Default(), nil }

	_, err := loadRunConfig(RunOptions{Repo: "not-a-repo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid options")
}

type staticLister []string

func (s staticLister) FindResourceGroups(context.Context, string) ([]string, error) {
	return s, nil
}

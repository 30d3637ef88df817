package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "djazure-bootstrap", cmd.Use)
	assert.NotNil(t, cmd.RunE, "root runs the bootstrap by default")
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	for _, expected := range []string{"run", "doctor", "init", "version"} {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
}

func TestRoot_SharesRunFlags(t *testing.T) {
	cmd := Root()

	for _, name := range []string{"config", "project", "subscription", "region", "admin-username", "repo", "yes", "skip-personalize", "guard", "metrics-file"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "root is missing flag %s", name)
	}
}

func TestRun_Flags(t *testing.T) {
	cmd := Run()

	assert.Equal(t, "run", cmd.Use)
	assert.Equal(t, "c", cmd.Flags().Lookup("config").Shorthand)
	assert.Equal(t, "y", cmd.Flags().Lookup("yes").Shorthand)
	assert.Equal(t, "false", cmd.Flags().Lookup("skip-personalize").DefValue)
}

func TestRun_RejectsArgs(t *testing.T) {
	cmd := Run()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}

func TestDoctor_Flags(t *testing.T) {
	cmd := Doctor()

	assert.Equal(t, "doctor", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("config"))
}

func TestInit_Flags(t *testing.T) {
	cmd := Init()

	assert.Equal(t, "init", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("output"))
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}

func TestSetVersionInfo(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = origVersion, origCommit, origDate
	})

	SetVersionInfo("1.2.3", "abc123", "2024-01-01")

	assert.Equal(t, "1.2.3", version)
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2024-01-01", date)
}

func TestVersion_Output(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = origVersion, origCommit, origDate
	})
	SetVersionInfo("test-version", "test-commit", "test-date")

	var out bytes.Buffer
	cmd := Version()
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "djazure-bootstrap test-version\n  commit: test-commit\n  built:  test-date\n", out.String())
}

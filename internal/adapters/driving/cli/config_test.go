package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_Registered(t *testing.T) {
	cmd := findCommand("config")
	require.NotNil(t, cmd)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["show"])
	assert.True(t, names["model"])
}

func TestConfigShow_PrintsResolvedSettings(t *testing.T) {
	originalDir := flagConfigDir
	flagConfigDir = t.TempDir()
	defer func() { flagConfigDir = originalDir }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "api_url:")
	assert.Contains(t, buf.String(), "default_model:")
}

func TestConfigModel_PersistsValidModel(t *testing.T) {
	originalDir := flagConfigDir
	flagConfigDir = t.TempDir()
	defer func() { flagConfigDir = originalDir }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "model", "gpt-4o-mini"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "gpt-4o-mini")
}

func TestConfigModel_RejectsUnknownModel(t *testing.T) {
	originalDir := flagConfigDir
	flagConfigDir = t.TempDir()
	defer func() { flagConfigDir = originalDir }()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"config", "model", "gpt-99"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

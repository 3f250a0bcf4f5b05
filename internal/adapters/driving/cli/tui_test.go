package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Registered(t *testing.T) {
	cmd := findCommand("tui")
	require.NotNil(t, cmd)
	assert.Equal(t, "tui", cmd.Use)
	assert.Equal(t, "Launch the interactive terminal UI", cmd.Short)
}

func TestTUICmd_InboxFlag(t *testing.T) {
	assert.NotNil(t, tuiCmd.Flags().Lookup("inbox"))
}

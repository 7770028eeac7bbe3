package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"parse", "validate"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "client-info-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.True(t, rootCmd.SilenceErrors, "file-level messages are printed verbatim by main")
}

func TestParseCommand_Flags(t *testing.T) {
	for _, name := range []string{"provider", "fixtures", "rejects", "country", "no-progress"} {
		flag := parseCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "parse should have --%s flag", name)
	}
	assert.Equal(t, "false", parseCmd.Flags().Lookup("no-progress").DefValue)
}

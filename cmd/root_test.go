package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/plot-geojson/internal/config"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"convert", "check", "variants", "serve"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "plot-geojson", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_InputFlags(t *testing.T) {
	for _, name := range []string{"sheet", "delimiter", "encoding"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "root should have --%s flag", name)
	}
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestServeCommand_InvalidConfig(t *testing.T) {
	cfg = &config.Config{Server: config.ServerConfig{Port: 0, MaxUploadMB: 0}}
	serveCmd.SetContext(context.Background())
	defer serveCmd.SetContext(context.TODO())

	err := serveCmd.RunE(serveCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestLoadRegistry(t *testing.T) {
	cfg = &config.Config{}
	r, err := loadRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy", "eudr", "ice-cot"}, r.IDs())

	cfg = &config.Config{Convert: config.ConvertConfig{VariantsFile: "does-not-exist.yaml"}}
	_, err = loadRegistry()
	require.Error(t, err)
}

func TestTableOptions(t *testing.T) {
	cfg = &config.Config{Input: config.InputConfig{Delimiter: ";", Encoding: "windows-1252", Sheet: "Plots"}}

	opts := tableOptions()
	assert.Equal(t, ';', opts.CSV.Delimiter)
	assert.Equal(t, "windows-1252", opts.CSV.Encoding)
	assert.Equal(t, "Plots", opts.Sheet)
}

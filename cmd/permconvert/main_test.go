package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const groupManagerConfig = `groups:
  Default:
    default: true
    permissions:
    - essentials.spawn
    inheritance: []
    info:
      prefix: '&7[Member] '
  Admin:
    permissions:
    - essentials.ban
    inheritance:
    - default
    info:
      prefix: '&c[Admin] '
`

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-i", "groups.yml", "--to", "luckperms", "-p", "essentialsx,worldedit"})
	require.NoError(t, err)
	assert.Equal(t, "groups.yml", opts.input)
	assert.Equal(t, "luckperms", opts.target)
	assert.Equal(t, "yaml", opts.format)
	assert.Equal(t, []string{"essentialsx", "worldedit"}, opts.plugins)

	_, err = parseFlags(nil)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-i", "groups.yml", "--template", "survival"})
	assert.Error(t, err)
}

func TestRun_Convert(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "groups.yml")
	require.NoError(t, os.WriteFile(input, []byte(groupManagerConfig), 0o644))

	var stdout bytes.Buffer
	err := run(zap.NewNop().Sugar(), options{input: input, target: "luckperms", format: "commands"}, &stdout)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "/lp creategroup default\n")
	assert.Contains(t, out, "/lp group admin permission set essentials.ban true\n")
	assert.Contains(t, out, "/lp group admin parent add default\n")
}

func TestRun_WritesFile(t *testing.T) {
	dir := t.TempDir()

	var stdout bytes.Buffer
	err := run(zap.NewNop().Sugar(), options{template: "network", target: "groupmanager", format: "yaml", outDir: dir}, &stdout)
	require.NoError(t, err)

	dest := strings.TrimSpace(stdout.String())
	assert.Equal(t, filepath.Join(dir, "plugins/GroupManager/worlds/world/groups.yml"), dest)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(content), "groups:")
	assert.Contains(t, string(content), "elite:")
}

func TestRun_Errors(t *testing.T) {
	logger := zap.NewNop().Sugar()
	var stdout bytes.Buffer

	assert.Error(t, run(logger, options{template: "moon", format: "yaml"}, &stdout))
	assert.Error(t, run(logger, options{template: "survival", format: "xml"}, &stdout))
	assert.Error(t, run(logger, options{template: "survival", target: "bukkit", format: "yaml"}, &stdout))
	assert.Error(t, run(logger, options{template: "survival", serverType: "moon", format: "yaml"}, &stdout))
	assert.Error(t, run(logger, options{input: filepath.Join(t.TempDir(), "missing.yml"), format: "yaml"}, &stdout))
}

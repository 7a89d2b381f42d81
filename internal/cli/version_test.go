package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc1234", "2024-06-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	stdout := new(bytes.Buffer)
	cmd := versionCmd
	cmd.SetOut(stdout)
	cmd.Run(cmd, nil)

	require.NotEmpty(t, stdout.String())
	assert.Contains(t, stdout.String(), "acessos 1.2.3")
	assert.Contains(t, stdout.String(), "abc1234")
}

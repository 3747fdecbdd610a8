package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := findCommand(t, rootCmd, "version")

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	require.NotEmpty(t, out.String())
	assert.Contains(t, out.String(), "relnotes")
	assert.Contains(t, out.String(), "commit")
}

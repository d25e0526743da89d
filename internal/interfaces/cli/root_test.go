package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reconfigurable records the options passed by the root command
type reconfigurable struct {
	received []GlobalOptions
	err      error
}

func (r *reconfigurable) Reconfigure(opts GlobalOptions) error {
	r.received = append(r.received, opts)
	return r.err
}

func TestRootCommand_AppliesGlobalOptions(t *testing.T) {
	mc := &reconfigurable{}
	container := &CLIContainer{MainContainer: mc}

	_, err := execute(t, container, "--log-level", "debug", "--config", "/etc/km/edit.yaml", "version")

	require.NoError(t, err)
	assert.Equal(t, []GlobalOptions{{ConfigPath: "/etc/km/edit.yaml", LogLevel: "debug"}}, mc.received)
}

func TestRootCommand_SkipsReconfigureWithoutFlags(t *testing.T) {
	mc := &reconfigurable{}

	_, err := execute(t, &CLIContainer{MainContainer: mc}, "version")

	require.NoError(t, err)
	assert.Empty(t, mc.received)
}

func TestRootCommand_ReconfigureFailure(t *testing.T) {
	mc := &reconfigurable{err: errors.New("invalid log_level")}

	_, err := execute(t, &CLIContainer{MainContainer: mc}, "--log-level", "loud", "version")

	assert.ErrorContains(t, err, "failed to apply global options")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, &CLIContainer{}, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "km-edit version "+Version)
	assert.Contains(t, out, "Platform: ")
}

func TestGlobalOptions_IsZero(t *testing.T) {
	assert.True(t, GlobalOptions{}.IsZero())
	assert.False(t, GlobalOptions{LogFormat: "json"}.IsZero())
}

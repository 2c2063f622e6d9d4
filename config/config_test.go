package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 2.0, cfg.Agent.Radius)
	assert.Equal(t, 5.0, cfg.Agent.Height)
	assert.True(t, cfg.Agent.CanJump)
	assert.False(t, cfg.Agent.CanClimb)
	assert.Equal(t, 4.0, cfg.Agent.WaypointSpacing)
	assert.Equal(t, 16.0, cfg.Motion.WalkSpeed)
	assert.Equal(t, 1.0, cfg.Motion.ArrivalEpsilon)
	assert.Equal(t, 5.0, cfg.Motion.ArrivalRadius)
	assert.Equal(t, RootRigidBody, cfg.Motion.RootSelector)
}

func TestParseAppliesDefaultsForOmittedFields(t *testing.T) {
	cfg, err := Parse([]byte(`
agent:
  radius: 3.5
motion:
  walkSpeed: 24
`))
	require.NoError(t, err)

	assert.Equal(t, 3.5, cfg.Agent.Radius)
	assert.Equal(t, 5.0, cfg.Agent.Height) // defaulted
	assert.True(t, cfg.Agent.CanJump)      // defaulted
	assert.Equal(t, 24.0, cfg.Motion.WalkSpeed)
	assert.Equal(t, 5.0, cfg.Motion.ArrivalRadius) // defaulted
}

func TestParseExplicitValuesKept(t *testing.T) {
	cfg, err := Parse([]byte(`
agent:
  canJump: false
  canClimb: true
  costs:
    Water: 10
    Road: 0.5
motion:
  rootSelector: Attachment
  arrivalEpsilon: 0.25
`))
	require.NoError(t, err)

	assert.False(t, cfg.Agent.CanJump)
	assert.True(t, cfg.Agent.CanClimb)
	assert.Equal(t, 10.0, cfg.Agent.Costs["Water"])
	assert.Equal(t, 0.5, cfg.Agent.Costs["Road"])
	assert.Equal(t, RootAttachment, cfg.Motion.RootSelector)
	assert.Equal(t, 0.25, cfg.Motion.ArrivalEpsilon)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("agent: ["))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/navsim.yaml")
	assert.Error(t, err)
}

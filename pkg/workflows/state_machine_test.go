package workflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPendingTransitions(t *testing.T) {
	sm := NewStateMachine()

	assert.True(t, sm.CanTransition("PENDING", "ACCEPTED"))
	assert.True(t, sm.CanTransition("PENDING", "REJECTED"))
	assert.False(t, sm.CanTransition("PENDING", "PENDING"))
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	sm := NewStateMachine()

	for _, terminal := range []string{"ACCEPTED", "REJECTED"} {
		assert.True(t, sm.IsTerminal(terminal))
		for _, to := range []string{"PENDING", "ACCEPTED", "REJECTED"} {
			assert.False(t, sm.CanTransition(terminal, to))
		}
		assert.Empty(t, sm.GetAllowedTransitions(terminal))
	}
}

func TestUnknownStatus(t *testing.T) {
	sm := NewStateMachine()

	assert.False(t, sm.CanTransition("CANCELLED", "ACCEPTED"))
	assert.False(t, sm.IsTerminal("CANCELLED"))
	assert.Empty(t, sm.GetAllowedTransitions("CANCELLED"))
}

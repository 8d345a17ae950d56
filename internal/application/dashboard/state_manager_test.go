package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
)

func TestStateManagerMergesLoadingState(t *testing.T) {
	sm := NewStateManager()
	assert.Nil(t, sm.GetController())
	assert.True(t, sm.GetLastDataUpdate().IsZero())

	sm.SetLoadingState(true, "Loading media records...")
	sm.UpdateInteractionState(func(s *model.InteractionState) {
		s.IsPaused = true
		s.IsLoading = false // overwritten by the loading state
	})
	sm.SetStatusMessage("hello")

	state := sm.GetInteractionState()
	assert.True(t, state.IsLoading)
	assert.Equal(t, "Loading media records...", state.LoadingMessage)
	assert.True(t, state.IsPaused)
	assert.Equal(t, "hello", state.StatusMessage)

	loading, msg := sm.GetLoadingState()
	assert.True(t, loading)
	assert.Equal(t, "Loading media records...", msg)

	sm.SetLoadingState(false, "")
	assert.False(t, sm.GetInteractionState().IsLoading)
}

func TestConfigValidateDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.DataPath = "media.json"
	cfg.RefreshInterval = -1

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "Media Dashboard", cfg.Title)
	assert.Equal(t, float64(1), cfg.UIRefreshRate)
	assert.Zero(t, cfg.RefreshInterval)

	assert.Error(t, (&Config{}).Validate())
}

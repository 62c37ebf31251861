package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("steamId", "is required")
	assert.Equal(t, "steamId is required", err.Error())
	assert.True(t, IsValidationError(err))
	assert.False(t, IsNotFoundError(err))
	assert.False(t, IsUpstreamError(err))
}

func TestNotFoundErrorMessages(t *testing.T) {
	err := NewNotFoundError("game details")
	err.AppID = 440
	assert.Equal(t, "game details not found for appid 440", err.Error())

	err = NewNotFoundError("player")
	err.SteamID = "76561197960287930"
	assert.Equal(t, "player not found for 76561197960287930", err.Error())

	err = NewNotFoundError("player")
	assert.Equal(t, "player not found", err.Error())
}

func TestIsNotFoundErrorSeesWrapped(t *testing.T) {
	inner := NewNotFoundError("game details")
	wrapped := fmt.Errorf("enrichment failed: %w", inner)

	assert.True(t, IsNotFoundError(wrapped))

	var nferr *NotFoundError
	assert.True(t, errors.As(wrapped, &nferr))
	assert.Equal(t, "game details", nferr.What)
}

func TestUpstreamErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamError("playersummaries", cause)

	assert.True(t, IsUpstreamError(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "playersummaries")
}

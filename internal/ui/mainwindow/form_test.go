package mainwindow

import (
	"testing"
	"time"

	"longautotyper/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesRoundTrip(t *testing.T) {
	settings := model.DefaultSettings()
	settings.ManualText = "hello"
	settings.KeyDelay = 250 * time.Millisecond
	settings.CountdownSeconds = 7

	values := valuesFromSettings(settings)
	assert.Equal(t, "0.25", values.Delay)
	assert.Equal(t, "7", values.Countdown)

	applied, err := values.apply(model.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, settings, applied)
}

func TestApplyClampsNumbers(t *testing.T) {
	applied, err := formValues{Delay: " 5 ", Countdown: "99"}.apply(model.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, model.MaxKeyDelay, applied.KeyDelay)
	assert.Equal(t, model.MaxCountdownSeconds, applied.CountdownSeconds)

	applied, err = formValues{Delay: "-1", Countdown: "-3"}.apply(model.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), applied.KeyDelay)
	assert.Equal(t, 0, applied.CountdownSeconds)
}

func TestApplyRejectsGarbage(t *testing.T) {
	base := model.DefaultSettings()

	applied, err := formValues{Delay: "fast", Countdown: "3"}.apply(base)
	require.ErrorIs(t, err, errInvalidDelay)
	assert.Equal(t, base, applied)

	_, err = formValues{Delay: "0.1", Countdown: "2.5"}.apply(base)
	require.ErrorIs(t, err, errInvalidCountdown)

	_, err = formValues{Delay: "NaN", Countdown: "1"}.apply(base)
	require.ErrorIs(t, err, errInvalidDelay)
}

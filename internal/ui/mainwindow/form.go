package mainwindow

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"longautotyper/internal/core/model"
)

var (
	errInvalidDelay     = errors.New("delay must be a number of seconds")
	errInvalidCountdown = errors.New("countdown must be a whole number of seconds")
)

// formValues are the raw texts of the editable fields.
type formValues struct {
	ManualText string
	Delay      string
	Countdown  string
}

func valuesFromSettings(settings model.Settings) formValues {
	return formValues{
		ManualText: settings.ManualText,
		Delay:      formatDelay(settings.KeyDelay),
		Countdown:  strconv.Itoa(settings.CountdownSeconds),
	}
}

// apply parses values over base. Out-of-range numbers are clamped.
func (values formValues) apply(base model.Settings) (model.Settings, error) {
	settings := base
	settings.ManualText = values.ManualText

	delay, err := strconv.ParseFloat(strings.TrimSpace(values.Delay), 64)
	if err != nil || math.IsNaN(delay) || math.IsInf(delay, 0) {
		return base, fmt.Errorf("%w: %q", errInvalidDelay, values.Delay)
	}
	settings.KeyDelay = time.Duration(math.Round(math.Max(delay, 0)*1000)) * time.Millisecond

	countdown, err := strconv.Atoi(strings.TrimSpace(values.Countdown))
	if err != nil {
		return base, fmt.Errorf("%w: %q", errInvalidCountdown, values.Countdown)
	}
	settings.CountdownSeconds = countdown

	return settings.Clamped(), nil
}

func formatDelay(delay time.Duration) string {
	return strconv.FormatFloat(delay.Seconds(), 'f', -1, 64)
}

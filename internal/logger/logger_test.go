package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerParsesLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"bogus", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := NewLogger(tt.level)
			assert.Equal(t, tt.expected, log.GetLevel())
		})
	}
}

func TestPredictionLoggerFields(t *testing.T) {
	base := logrus.New()
	var buf bytes.Buffer
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	pl := NewPredictionLogger(base)
	pl.LogGamePrediction("g1", "BOS", "MIA", "BOS", 0.62, -4.5, 0.78)

	out := buf.String()
	assert.Contains(t, out, `"component":"prediction"`)
	assert.Contains(t, out, `"predicted_winner":"BOS"`)
	assert.Contains(t, out, `"game_id":"g1"`)
}

func TestValueSignalLogging(t *testing.T) {
	base := logrus.New()
	var buf bytes.Buffer
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	pl := NewPredictionLogger(base)
	pl.LogValueSignal("g2", "pinnacle", "home_moneyline", 110, 0.12, 0.08, 0.05)

	out := buf.String()
	assert.Contains(t, out, `"bet_type":"home_moneyline"`)
	assert.Contains(t, out, `"bookmaker":"pinnacle"`)
}

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor/models"

	"github.com/zephyrtronium/syntacalc/internal/config"
)

func TestCreateWriterConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	wc := createWriterConfig(cfg, models.LogWriterTypeConsole)
	assert.Equal(t, models.LogWriterTypeConsole, wc.Type)
	assert.Equal(t, models.OutputFormatLogfmt, wc.OutputType)
	assert.Equal(t, "15:04:05.000", wc.TimeFormat)

	cfg.Logging.Format = "json"
	cfg.Logging.TimeFormat = ""
	wc = createWriterConfig(cfg, models.LogWriterTypeConsole)
	assert.Equal(t, models.OutputFormatJSON, wc.OutputType)
	assert.Equal(t, "15:04:05.000", wc.TimeFormat, "empty time format falls back to the default")
}

func TestSetupLoggerSetsGlobal(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.Level = "error"
	l := SetupLogger(cfg)
	assert.NotNil(t, l)
	assert.Equal(t, l, GetLogger())

	d := Discard()
	InitLogger(d)
	assert.Equal(t, d, GetLogger())
}

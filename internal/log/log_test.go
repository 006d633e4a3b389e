package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestHandlerFormatsFields(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf)

	entry := &log.Entry{
		Level:     log.WarnLevel,
		Message:   "skipping malformed row",
		Timestamp: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Fields:    log.Fields{"line": 3, "path": "registros.txt"},
	}
	assert.NoError(t, h.HandleLog(entry))
	assert.Equal(t, "2024-03-01 09:30:00 W skipping malformed row line=3 path=registros.txt\n", buf.String())
}

func TestInitLoggerEnvOverride(t *testing.T) {
	t.Setenv("GREENCALC_LOG", "debug")
	InitLogger("error")
	assert.Equal(t, log.DebugLevel, log.Log.(*log.Logger).Level)

	t.Setenv("GREENCALC_LOG", "")
	InitLogger("")
	assert.Equal(t, log.WarnLevel, log.Log.(*log.Logger).Level)
}

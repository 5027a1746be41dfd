package logutils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiLineIndentHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiLineIndentHandler(&buf, "")

	err := h.HandleLog(&log.Entry{
		Level:     log.InfoLevel,
		Message:   "Line one\nLine two sits directly beneath line one",
		Timestamp: stamp,
		Fields:    log.Fields{"zeta": 1, "alpha": "a"},
	})
	require.NoError(t, err)

	want := "2010-09-08 07:06:05 I Line one\n" +
		"                      Line two sits directly beneath line one alpha=a zeta=1\n"
	assert.Equal(t, want, buf.String())
}

func TestMultiLineIndentHandler_WithApexLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := &log.Logger{Handler: NewMultiLineIndentHandler(&buf, "15:04"), Level: log.WarnLevel}

	logger.Info("dropped")
	logger.WithField("file", "a.zip").Error("bad\narchive")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], " E bad")
	assert.Equal(t, strings.Repeat(" ", len("15:04 E ")), lines[1][:len("15:04 E ")])
	assert.True(t, strings.HasSuffix(lines[1], "archive file=a.zip"))
}

package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openf1db/openf1-ingest-go/log"
)

func TestErrorSinkSuppression(t *testing.T) {
	var buf bytes.Buffer
	sink := newErrorSink(log.New(&buf, log.DebugLevel), "laps")
	for i := 0; i < 5; i++ {
		sink.record(errors.New("field lap_number: required attribute missing"))
	}
	assert.Equal(t, 5, sink.errors())
	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "skipping invalid record"))
	assert.Equal(t, 1, strings.Count(out, "more invalid records"))
}

func TestErrorSinkBelowLimit(t *testing.T) {
	var buf bytes.Buffer
	sink := newErrorSink(log.New(&buf, log.DebugLevel), "laps")
	sink.record(errors.New("field date: invalid timestamp \"soon\""))
	sink.record(errors.New("field position: unexpected type string"))
	assert.Equal(t, 2, sink.errors())
	assert.Equal(t, 2, strings.Count(buf.String(), "skipping invalid record"))
	assert.NotContains(t, buf.String(), "more invalid records")
}

package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventValid(t *testing.T) {
	payload := []byte(`{"table":"leads","action":"INSERT","record":{"id":"abc","nome":"Maria"}}`)

	ev, err := ParseEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "leads", ev.Table)
	assert.Equal(t, ActionInsert, ev.Action)
	assert.NotEmpty(t, ev.Record)
}

func TestParseEventRejectsBadJSON(t *testing.T) {
	_, err := ParseEvent([]byte(`{truncado`))
	assert.Error(t, err)
}

func TestParseEventRejectsMissingTable(t *testing.T) {
	_, err := ParseEvent([]byte(`{"action":"INSERT","record":{}}`))
	assert.Error(t, err)
}

func TestParseEventRejectsUnknownAction(t *testing.T) {
	_, err := ParseEvent([]byte(`{"table":"leads","action":"TRUNCATE"}`))
	assert.Error(t, err)
}

func TestOldIDFromDelete(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"table":"leads","action":"DELETE","old_record":{"id":"abc"}}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", ev.OldID())
}

func TestOldIDMissing(t *testing.T) {
	ev := Event{}
	assert.Empty(t, ev.OldID())
}

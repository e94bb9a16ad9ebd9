package manager_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfoliopro/folio/internal/async"
	"github.com/portfoliopro/folio/internal/async/tasks"
	"github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/manager"
)

func TestSendReleaseNote(t *testing.T) {
	client := &async.MockClient{}
	m := manager.NewBroadcastManager(client)

	err := m.SendReleaseNote(t.Context(), "New themes!", "<p>Check out the <b>new</b> presets.</p>")
	require.NoError(t, err)
	require.Equal(t, 1, client.CallCount)

	assert.Equal(t, config.TypeBroadcastReleaseNote, client.LastTask.Type())

	var payload tasks.ReleaseNotePayload

	require.NoError(t, json.Unmarshal(client.LastTask.Payload(), &payload))
	assert.Equal(t, "New themes!", payload.Subject)
	assert.Equal(t, "<p>Check out the <b>new</b> presets.</p>", payload.Body)
}

func TestSendReleaseNoteValidation(t *testing.T) {
	client := &async.MockClient{}
	m := manager.NewBroadcastManager(client)

	err := m.SendReleaseNote(t.Context(), "   ", "body")
	assert.ErrorIs(t, err, manager.ErrEmptyTitle)
	assert.Zero(t, client.CallCount)
}

func TestSendReleaseNoteEnqueueFailure(t *testing.T) {
	client := &async.MockClient{Error: assert.AnError}
	m := manager.NewBroadcastManager(client)

	err := m.SendReleaseNote(t.Context(), "Subject", "body")
	assert.ErrorIs(t, err, async.ErrEnqueueingTask)
}

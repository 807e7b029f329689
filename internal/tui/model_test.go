// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-delta-sync/internal/service"
	"github.com/MKhiriev/go-delta-sync/models"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSyncService struct {
	calls int
	err   error
}

func (s *stubSyncService) Sync(context.Context) error {
	s.calls++
	return s.err
}

var fixedNow = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func newTestModel(t *testing.T, entries map[string]string) (replicaModel, *stubSyncService) {
	t.Helper()

	client := service.NewKVClient("c-1")
	if len(entries) > 0 {
		server := service.NewKVServer(entries, nil)
		require.NoError(t, client.ApplyUpdate(server.GetClientDiff(client.UpdateRequest())))
	}

	syncSvc := &stubSyncService{}
	m := newReplicaModel(context.Background(), client, syncSvc, models.NewAppBuildInfo("1.0.0", "", ""))
	m.now = func() time.Time { return fixedNow }
	return m, syncSvc
}

func update(t *testing.T, m replicaModel, msg tea.Msg) (replicaModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(replicaModel)
	require.True(t, ok)
	return rm, cmd
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRefresh_ShowsEntriesInKeyOrder(t *testing.T) {
	m, _ := newTestModel(t, map[string]string{"b": "2", "a": "1", "c": "3"})

	m, cmd := update(t, m, refreshMsg(fixedNow))

	assert.NotNil(t, cmd, "refresh schedules the next tick")
	assert.Equal(t, []table.Row{{"a", "1"}, {"b", "2"}, {"c", "3"}}, m.table.Rows())
}

func TestSyncKey_RunsSyncOnce(t *testing.T) {
	m, syncSvc := newTestModel(t, nil)

	m, cmd := update(t, m, keyMsg("s"))
	require.NotNil(t, cmd)
	assert.True(t, m.syncing)

	// a second press while syncing is ignored
	_, again := update(t, m, keyMsg("s"))
	assert.Nil(t, again)

	msg := m.cmdSync()()
	assert.Equal(t, 1, syncSvc.calls)
	assert.Equal(t, syncDoneMsg{at: fixedNow}, msg)
}

func TestSyncDone(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.syncing = true

	m, _ = update(t, m, syncDoneMsg{at: fixedNow})
	assert.False(t, m.syncing)
	assert.Equal(t, fixedNow, m.lastSync)
	assert.Equal(t, "synchronized", m.status)

	boom := errors.New("unreachable")
	m, _ = update(t, m, syncDoneMsg{err: boom, at: fixedNow.Add(time.Minute)})
	assert.Equal(t, boom, m.lastErr)
	assert.Equal(t, fixedNow, m.lastSync, "failed sync keeps the last success")
	assert.Contains(t, m.View(), "error: unreachable")
}

func TestCopyKey_CopiesFingerprint(t *testing.T) {
	m, _ := newTestModel(t, map[string]string{"k": "v"})
	var copied string
	m.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	m, cmd := update(t, m, keyMsg("c"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.NotEmpty(t, copied)
	assert.Equal(t, "fingerprint copied", m.status)
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t, nil)

	_, cmd := update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)

	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t, map[string]string{"k": "v"})
	m, _ = update(t, m, refreshMsg(fixedNow))

	view := m.View()

	assert.Contains(t, view, "c-1")
	assert.Contains(t, view, "never")
	assert.Contains(t, view, "q quit")
}

func TestNew_RequiresReplica(t *testing.T) {
	_, err := New(nil, models.AppBuildInfo{}, nil)

	assert.ErrorIs(t, err, ErrNoReplica)
}

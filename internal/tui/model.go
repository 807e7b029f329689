// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/MKhiriev/go-delta-sync/internal/service"
	"github.com/MKhiriev/go-delta-sync/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	refreshInterval = time.Second
	minTableHeight  = 3
	// title, info lines, borders and help
	chromeHeight = 14
)

type refreshMsg time.Time

type syncDoneMsg struct {
	err error
	at  time.Time
}

type copyDoneMsg struct {
	err error
}

type replicaModel struct {
	ctx         context.Context
	client      *service.KVClient
	syncService service.ClientSyncService
	build       models.AppBuildInfo

	table   table.Model
	spinner spinner.Model

	syncing  bool
	lastSync time.Time
	lastErr  error
	status   string

	copyToClipboard func(string) error
	now             func() time.Time
}

func newReplicaModel(ctx context.Context, client *service.KVClient, syncService service.ClientSyncService, build models.AppBuildInfo) replicaModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Key", Width: 24},
			{Title: "Value", Width: 40},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	return replicaModel{
		ctx:             ctx,
		client:          client,
		syncService:     syncService,
		build:           build,
		table:           t,
		spinner:         s,
		copyToClipboard: clipboard.WriteAll,
		now:             time.Now,
	}
}

func (m replicaModel) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg(m.now()) }
}

func (m replicaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-chromeHeight, minTableHeight))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.sync):
			if m.syncing {
				return m, nil
			}
			m.syncing = true
			m.status = ""
			return m, tea.Batch(m.spinner.Tick, m.cmdSync())
		case key.Matches(msg, keys.copy):
			return m, m.cmdCopy(strconv.FormatUint(m.client.Fingerprint(), 10))
		}

	case refreshMsg:
		m.refresh()
		return m, tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return refreshMsg(t) })

	case syncDoneMsg:
		m.syncing = false
		m.lastErr = msg.err
		if msg.err == nil {
			m.lastSync = msg.at
			m.status = "synchronized"
		}
		m.refresh()
		return m, nil

	case copyDoneMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.status = "fingerprint copied"
		return m, nil

	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// refresh reloads the table rows from the replica in key order.
func (m *replicaModel) refresh() {
	entries := m.client.State().Snapshot()

	rows := make([]table.Row, 0, len(entries))
	for _, k := range slices.Sorted(maps.Keys(entries)) {
		rows = append(rows, table.Row{k, entries[k]})
	}
	m.table.SetRows(rows)
}

func (m replicaModel) cmdSync() tea.Cmd {
	return func() tea.Msg {
		err := m.syncService.Sync(m.ctx)
		return syncDoneMsg{err: err, at: m.now()}
	}
}

func (m replicaModel) cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		return copyDoneMsg{err: m.copyToClipboard(text)}
	}
}

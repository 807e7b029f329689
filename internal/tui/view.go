// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strconv"
	"strings"
	"time"
)

func (m replicaModel) View() string {
	var b strings.Builder

	title := "go-delta-sync replica " + m.build.BuildVersion()
	if m.syncing {
		title += "  " + m.spinner.View()
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	writeInfo(&b, "client id", m.client.ID())
	writeInfo(&b, "fingerprint", strconv.FormatUint(m.client.Fingerprint(), 10))
	writeInfo(&b, "entries", strconv.Itoa(len(m.table.Rows())))
	writeInfo(&b, "last sync", lastSyncText(m.lastSync))

	b.WriteString("\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("error: " + m.lastErr.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	help := make([]string, 0, len(keys.help()))
	for _, binding := range keys.help() {
		h := binding.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(helpStyle.Render(strings.Join(help, "  ")))

	return appStyle.Render(b.String())
}

func writeInfo(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}

func lastSyncText(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format(time.TimeOnly)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	sync key.Binding
	copy key.Binding
	quit key.Binding
}

var keys = keyMap{
	sync: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync now")),
	copy: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy fingerprint")),
	quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.sync, k.copy, k.quit}
}

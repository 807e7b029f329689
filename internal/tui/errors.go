// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "errors"

// ErrNoReplica is returned by New without a replica to display.
var ErrNoReplica = errors.New("no replica to display")

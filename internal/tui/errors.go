// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Unsaid Authors

package tui

import "strings"

// transportErrorMarkers are substrings of Go net errors that mean "the
// server cannot be reached", as opposed to a server-side failure.
var transportErrorMarkers = []string{
	"connection refused",
	"dial tcp",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"context deadline exceeded",
}

// humanizeServerUnavailableError collapses low-level transport errors into
// one calm message; anything else is shown as-is.
func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transportErrorMarkers {
		if strings.Contains(msg, marker) {
			return "no network, or the server is unreachable"
		}
	}

	return err.Error()
}

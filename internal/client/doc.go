// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Unsaid Authors

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI flows, client services, and the background cache
// refresh job into a single process lifecycle.
package client

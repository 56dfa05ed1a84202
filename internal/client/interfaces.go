// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Unsaid Authors

package client

// Client is a runnable terminal application. Run blocks through the
// whole login/edit/logout cycle and returns when the user quits.
type Client interface {
	Run() error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Unsaid Authors

package server

import "errors"

// errNoServersAreCreated is returned when the configuration yields no
// transport to listen on.
var errNoServersAreCreated = errors.New("no transport servers configured")

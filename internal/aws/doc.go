// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package aws contains AWS-related helpers and adapters used by sources
// that interact with AWS resources.
package aws

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package driller resolves dotted paths (with optional [n] array indexes)
// into JSON documents, drilling through single-element arrays along the way.
// The filtering and output packages use it to pull attribute values out of
// row records.
package driller

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cmd implements the dyscover command line: serve, score, keygen
// and version.
package cmd

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists assessments and their sub-test results.

Results are kept as raw JSON payloads keyed by test type, one row per test
per assessment. Saving a test again replaces the earlier payload:

	st := store.New(conn, driver)
	payload, err := st.UpsertResult(ctx, id, risk.TestPhoneme, raw, time.Now())

Risk is never stored. Callers read the raw map with Results and score it
with risk.Collect.
*/
package store

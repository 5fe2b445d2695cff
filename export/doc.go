// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export flattens stored assessments into an analysis dataset.

Each assessment becomes one Row: demographics, the normalized 0-100 score
of every sub-test taken, reading speed, the composite score and the risk
tier. Absent sub-tests are left blank rather than written as zero.

	rows := export.BuildRows(records, risk.DefaultProfile())
	err := export.WriteCSV(w, rows)

WriteXLSX produces the same table as a workbook. A Scheduler writes
dataset.csv and dataset.xlsx into a directory on a fixed interval.
*/
package export

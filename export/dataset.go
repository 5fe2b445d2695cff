// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/dyscover/risk"
	"github.com/danielhkuo/dyscover/store"
)

// sheetName is the worksheet every new excelize file starts with.
const sheetName = "Sheet1"

// Columns is the dataset header, in row order.
var Columns = []string{
	"id",
	"age",
	"age_group",
	"sex",
	"questionnaire",
	"pretest",
	"phoneme",
	"pattern",
	"nonsense",
	"reading_wpm",
	"reading_score",
	"composite",
	"risk_level",
	"assessment_type",
	"completed_at",
}

// Row is one assessment flattened for analysis. Sub-test scores are on the
// 0-100 scale; nil means the test was not taken.
type Row struct {
	ID             string
	Age            int
	AgeGroup       string
	Sex            string
	Questionnaire  *float64
	Pretest        *float64
	Phoneme        *float64
	Pattern        *float64
	Nonsense       *float64
	ReadingWPM     *float64
	ReadingScore   *float64
	Composite      *float64
	RiskLevel      string
	AssessmentType string
	CompletedAt    *time.Time
}

// BuildRows scores every record with the given profile. A record that
// cannot be scored keeps its demographic columns and leaves the rest blank.
func BuildRows(records []store.Record, profile *risk.Profile) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := Row{
			ID:          rec.ID,
			Age:         rec.Age,
			AgeGroup:    rec.AgeGroup,
			Sex:         rec.Sex,
			CompletedAt: rec.CompletedAt,
		}

		results := risk.Collect(rec.Results)
		a, err := profile.Evaluate(results, rec.Demographics())
		if err != nil {
			slog.Warn("skipping scores for export row", "assessment_id", rec.ID, "error", err)
			rows = append(rows, row)
			continue
		}

		score := func(id risk.TestID) *float64 {
			if !results.Has(id) {
				return nil
			}
			return ptr(a.Breakdown[id])
		}
		row.Questionnaire = score(risk.TestQuestionnaire)
		row.Pretest = score(risk.TestPretest)
		row.Phoneme = score(risk.TestPhoneme)
		row.Pattern = score(risk.TestPattern)
		row.Nonsense = score(risk.TestNonsense)
		row.ReadingScore = score(risk.TestReading)
		if results.Reading != nil {
			row.ReadingWPM = ptr(results.Reading.WPM)
		}
		if len(a.CompletedTests) > 0 {
			row.Composite = ptr(a.CompositeScore)
			row.RiskLevel = string(a.RiskLevel)
			row.AssessmentType = a.AssessmentType
		}
		rows = append(rows, row)
	}
	return rows
}

func ptr(v float64) *float64 {
	r := math.Round(v*100) / 100
	return &r
}

// strings renders the row for CSV.
func (r Row) strings() []string {
	completed := ""
	if r.CompletedAt != nil {
		completed = r.CompletedAt.UTC().Format(time.RFC3339)
	}
	return []string{
		r.ID,
		strconv.Itoa(r.Age),
		r.AgeGroup,
		r.Sex,
		formatScore(r.Questionnaire),
		formatScore(r.Pretest),
		formatScore(r.Phoneme),
		formatScore(r.Pattern),
		formatScore(r.Nonsense),
		formatScore(r.ReadingWPM),
		formatScore(r.ReadingScore),
		formatScore(r.Composite),
		r.RiskLevel,
		r.AssessmentType,
		completed,
	}
}

// cells renders the row for a spreadsheet, keeping numbers numeric and
// leaving absent values empty.
func (r Row) cells() []interface{} {
	cell := func(v *float64) interface{} {
		if v == nil {
			return nil
		}
		return *v
	}
	var completed interface{}
	if r.CompletedAt != nil {
		completed = r.CompletedAt.UTC().Format(time.RFC3339)
	}
	return []interface{}{
		r.ID,
		r.Age,
		r.AgeGroup,
		r.Sex,
		cell(r.Questionnaire),
		cell(r.Pretest),
		cell(r.Phoneme),
		cell(r.Pattern),
		cell(r.Nonsense),
		cell(r.ReadingWPM),
		cell(r.ReadingScore),
		cell(r.Composite),
		r.RiskLevel,
		r.AssessmentType,
		completed,
	}
}

func formatScore(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// WriteCSV writes the header and rows as CSV.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.strings()); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the header and rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("style xlsx header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := r.cells()
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write xlsx row %s: %w", r.ID, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 34); err != nil {
		return fmt.Errorf("size xlsx columns: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/dyscover/recommend"
	"github.com/danielhkuo/dyscover/risk"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(14)
	levelStyle = map[risk.Level]lipgloss.Style{
		risk.LevelLow:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		risk.LevelMedium: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		risk.LevelHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
	indicatorStyle = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

type scoreOptions struct {
	age     int
	profile string
	asJSON  bool
}

var scoreOpts scoreOptions

// scoreCmd scores a file of saved results, keyed by sub-test the same way
// the results endpoint returns them.
var scoreCmd = &cobra.Command{
	Use:   "score <results.json>",
	Short: "Score saved sub-test results without a server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScore(cmd.OutOrStdout(), args[0], scoreOpts)
	},
}

func init() {
	scoreCmd.Flags().IntVar(&scoreOpts.age, "age", 0, "child's age in years (3-12)")
	scoreCmd.Flags().StringVar(&scoreOpts.profile, "profile", "", "YAML scoring profile (default built in)")
	scoreCmd.Flags().BoolVar(&scoreOpts.asJSON, "json", false, "print the assessment as JSON")
	_ = scoreCmd.MarkFlagRequired("age")
}

func runScore(w io.Writer, path string, opts scoreOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	profile := risk.DefaultProfile()
	if opts.profile != "" {
		if profile, err = risk.LoadProfile(opts.profile); err != nil {
			return err
		}
	}

	results := risk.Collect(entries)
	a, err := profile.Evaluate(results, risk.Demographics{Age: opts.age})
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}

	_, err = io.WriteString(w, renderAssessment(a, recommend.Analyze(results, a.Breakdown)))
	return err
}

func renderAssessment(a *risk.Assessment, areas recommend.Areas) string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}

	b.WriteString(titleStyle.Render("Dyslexia risk screening") + "\n\n")
	row("Age group", string(a.AgeGroup))
	row("Assessment", a.AssessmentType)
	row("Risk level", levelStyle[a.RiskLevel].Render(string(a.RiskLevel))+" ("+string(a.Confidence)+" confidence)")
	row("Composite", fmt.Sprintf("%.2f / 100", a.CompositeScore))

	b.WriteString("\n" + titleStyle.Render("Sub-tests") + "\n")
	for _, id := range a.CompletedTests {
		row(string(id), fmt.Sprintf("%.2f (weight %.2f)", a.Breakdown[id], a.Weights[id]))
	}

	indicators := []struct {
		name  string
		items []string
	}{
		{"high", a.Indicators.High},
		{"medium", a.Indicators.Medium},
		{"low", a.Indicators.Low},
	}
	for _, ind := range indicators {
		for _, item := range ind.items {
			b.WriteString(indicatorStyle[ind.name].Render("  ["+ind.name+"] ") + item + "\n")
		}
	}

	if len(areas.Strong) > 0 || len(areas.Weak) > 0 {
		b.WriteString("\n")
		if len(areas.Strong) > 0 {
			row("Strengths", strings.Join(areas.Strong, "; "))
		}
		if len(areas.Weak) > 0 {
			row("Weaknesses", strings.Join(areas.Weak, "; "))
		}
	}

	b.WriteString("\n" + titleStyle.Render("Recommendations") + "\n")
	for i, rec := range a.Recommendations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
	}
	return b.String()
}

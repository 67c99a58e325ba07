package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vic/ivm/internal/runner"
	"github.com/vic/ivm/pkg/inet"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorMuted  = lipgloss.Color("#2C4A54")
	colorError  = lipgloss.Color("#E74C3C")
)

var styles = struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
}{
	Title:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Muted:  lipgloss.NewStyle().Foreground(colorMuted),
	Error:  lipgloss.NewStyle().Bold(true).Foreground(colorError),
	Header: lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1),
	Cell:   lipgloss.NewStyle().Padding(0, 1),
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return styles.Cell
		}).
		Headers(headers...)
}

// statsTable lists the interactions of a run by rule.
func statsTable(s inet.Stats) string {
	t := newTable("RULE", "COUNT")
	for _, rule := range inet.Rules() {
		t.Row(rule.String(), fmt.Sprint(s.Rules[rule]))
	}
	t.Row("total", fmt.Sprint(s.Rewrites))
	return t.String() + "\n" + styles.Muted.Render(
		fmt.Sprintf("live %d / %d agents, %d pending", s.Live, s.Capacity, s.Pending))
}

// benchTable summarizes bench runs, one row per run.
func benchTable(results []*runner.Result) string {
	t := newTable("ENTRY", "RUN", "RWTS", "DREF", "TIME", "RPS")
	var rwts uint64
	for i, res := range results {
		if res == nil {
			continue
		}
		rwts += res.Stats.Rewrites
		t.Row(res.Entry, fmt.Sprint(i),
			fmt.Sprint(res.Stats.Rewrites), fmt.Sprint(res.Stats.Dereferences),
			fmt.Sprintf("%.3fs", res.Elapsed.Seconds()), fmt.Sprintf("%.3fM", res.RPS()))
	}
	t.Row("total", fmt.Sprint(len(results)), fmt.Sprint(rwts), "", "", "")
	return t.String()
}

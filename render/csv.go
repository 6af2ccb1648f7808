// Package render turns a solved schedule into caller-facing output
// formats. CSV is grounded on
// original_source/src/scheduler/schedule.py's export_to_csv: one row
// per time slot, one column per candidate, each cell holding the
// panel name occupying that slot (or blank).
package render

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/candidateflow/interviewsched/problem"
	"github.com/candidateflow/interviewsched/solve"
)

// CSV renders sol against its originating problem as a time-by-slot,
// candidate-by-column grid, with date used as the header cell's
// caption (matching the original's "DATE" default when date is
// empty).
func CSV(sol *solve.Solution, date string) (string, error) {
	if date == "" {
		date = "DATE"
	}

	p := sol.Problem()
	grid := buildGrid(p, sol)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, p.NumCandidates+1)
	header = append(header, date)
	for c := 0; c < p.NumCandidates; c++ {
		header = append(header, fmt.Sprintf("CANDIDATE %d", c+1))
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("render: write header: %w", err)
	}

	for slot := 0; slot < p.Timeline.Slots; slot++ {
		startH, startM, err := p.Timeline.FromSlot(slot)
		if err != nil {
			return "", fmt.Errorf("render: slot %d: %w", slot, err)
		}
		endH, endM, err := p.Timeline.FromSlot(slot + 1)
		if err != nil {
			return "", fmt.Errorf("render: slot %d: %w", slot, err)
		}
		row := make([]string, 0, p.NumCandidates+1)
		row = append(row, fmt.Sprintf("%02d:%02d-%02d:%02d", startH, startM, endH, endM))
		for c := 0; c < p.NumCandidates; c++ {
			row = append(row, grid[slot][c])
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("render: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("render: flush: %w", err)
	}
	return buf.String(), nil
}

// buildGrid fills grid[slot][candidate] with the panel name occupying
// that slot, or "" if the candidate is idle.
func buildGrid(p *problem.Validated, sol *solve.Solution) [][]string {
	grid := make([][]string, p.Timeline.Slots)
	for slot := range grid {
		grid[slot] = make([]string, p.NumCandidates)
	}

	for c := 0; c < p.NumCandidates; c++ {
		for pi, panel := range p.Panels {
			start := sol.StartSlot(c, pi)
			end := start + panel.Duration
			for slot := start; slot < end && slot < p.Timeline.Slots; slot++ {
				grid[slot][c] = panel.Name
			}
		}
	}
	return grid
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokertourney/internal/tournament"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	winnerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	bustedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	faultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func renderStandings(r *tournament.Result) string {
	var b strings.Builder
	status := "complete"
	if !r.Completed {
		status = "hand limit reached"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("Tournament %s  seed %d  %d hands  %s",
		r.ID, r.Seed, r.Hands, status)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %-24s %-16s %8s %8s", "Place", "Seat", "Agent", "Stack", "Busted")))
	b.WriteString("\n")

	for _, s := range r.Standings {
		busted := "-"
		if s.BustedRound > 0 {
			busted = fmt.Sprintf("r%d", s.BustedRound)
		}
		line := fmt.Sprintf("%-6d %-24s %-16s %8d %8s", s.Place, s.Name, s.Agent, s.Stack, busted)
		switch {
		case s.Place == 1:
			line = winnerStyle.Render(line)
		case s.Stack == 0:
			line = bustedStyle.Render(line)
		}
		b.WriteString(line)
		if stats, ok := r.Sandbox[s.Seat]; ok && stats.Faults() > 0 {
			b.WriteString(faultStyle.Render(fmt.Sprintf("  %d faults (%d timeouts, %d memory, %d crashes, %d broken)",
				stats.Faults(), stats.Timeouts, stats.MemoryBreaches, stats.Crashes, stats.BrokenChannels)))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderBatch(batch *tournament.BatchResult) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d tournaments from seed %d in %s",
		len(batch.Results), batch.BaseSeed, batch.Elapsed.Round(time.Millisecond))))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-16s %6s %8s %8s %17s %8s %8s",
		"Agent", "Runs", "Win%", "Place", "95% CI", "StdDev", "Hands")))
	b.WriteString("\n")

	for i, name := range batch.Agents.Ranked() {
		s := batch.Agents[name]
		low, high := s.ConfidenceInterval95()
		line := fmt.Sprintf("%-16s %6d %7.1f%% %8.2f %8.2f-%-8.2f %8.2f %8.1f",
			name, s.Runs, 100*s.WinRate(), s.Mean(), low, high, s.StdDev(), s.MeanHands())
		if i == 0 {
			line = winnerStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

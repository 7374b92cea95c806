// Package view renders controller state as plain text. Renderers only read what they are
// given; they never fetch or mutate.
package view

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/isdelr/ecolearn/internal/apiclient"
	"github.com/isdelr/ecolearn/internal/models"
	"github.com/isdelr/ecolearn/internal/validation"
)

const barWidth = 24

// ProgressBar draws "[######------] 2 / 3 (67%)".
func ProgressBar(current, total int) string {
	if total <= 0 {
		return fmt.Sprintf("[%s] 0 / 0 (0%%)", strings.Repeat("-", barWidth))
	}
	percent := int(math.Round(float64(current) / float64(total) * 100))
	return fmt.Sprintf("%s %d / %d (%d%%)", Bar(percent), current, total, percent)
}

// Bar draws a bar filled to percent.
func Bar(percent int) string {
	percent = max(0, min(100, percent))
	filled := barWidth * percent / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}

// BarChart draws one horizontal bar per value, scaled to the largest.
func BarChart(w io.Writer, title string, labels []string, values []float64, unit string) {
	fmt.Fprintln(w, title)
	var peak float64
	width := 0
	for i, v := range values {
		peak = math.Max(peak, v)
		width = max(width, len(labels[i]))
	}
	for i, v := range values {
		n := 0
		if peak > 0 {
			n = int(math.Round(v / peak * barWidth))
		}
		fmt.Fprintf(w, "  %-*s %s %s %s\n", width, labels[i], strings.Repeat("█", n), humanize.Ftoa(v), unit)
	}
}

// Card draws a titled key figure.
func Card(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-22s %s\n", label+":", value)
}

// Kg formats a mass of CO2.
func Kg(kg float64) string {
	return humanize.FtoaWithDigits(kg, 2) + " kg CO₂"
}

// PlantationSummaryLine is the one-line summary under the plantation history.
func PlantationSummaryLine(s models.PlantationSummary) string {
	return fmt.Sprintf("%d trees, %.1f kg CO₂, %d contributions", s.Trees, s.CarbonOffset, s.Contributions)
}

// LearningPathCard draws one learning path entry.
func LearningPathCard(w io.Writer, p models.LearningPath) {
	fmt.Fprintf(w, "%s  %s [%s]\n", p.Icon, p.Title, p.ID)
	if p.Description != "" {
		fmt.Fprintf(w, "    %s\n", p.Description)
	}
	level := p.Level
	if level == "" {
		level = "-"
	}
	fmt.Fprintf(w, "    %s %d%%  ·  %d min  ·  %s saved  ·  %s\n", Bar(p.Progress), p.Progress, p.Duration, Kg(p.CarbonSaved), level)
}

// ErrorBanner explains a failure and how to recover from it.
func ErrorBanner(w io.Writer, err error) {
	var vErr *validation.ValidationError
	if errors.As(err, &vErr) {
		fmt.Fprintln(w, "✗ Please fix the following:")
		for _, f := range vErr.Fields {
			fmt.Fprintf(w, "    %s: %s\n", f.Field, f.Message)
		}
		return
	}

	fmt.Fprintf(w, "✗ %s\n", err)
	if hint := retryHint(apiclient.Kind(err)); hint != "" {
		fmt.Fprintf(w, "  %s\n", hint)
	}
}

func retryHint(kind apiclient.ErrorKind) string {
	switch kind {
	case apiclient.KindNetwork:
		return "The server could not be reached. Check your connection and try again."
	case apiclient.KindTimeout:
		return "The server took too long to answer. Try again in a moment."
	case apiclient.KindHTTP:
		return "The server could not complete the request. Try again later."
	case apiclient.KindInvalidCredentials:
		return "Check your email and password."
	default:
		return ""
	}
}

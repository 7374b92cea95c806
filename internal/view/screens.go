package view

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/isdelr/ecolearn/internal/models"
	"github.com/isdelr/ecolearn/internal/pages"
)

// Status draws the non-ready states shared by every screen. It reports whether the
// caller should go on to draw data.
func Status[T any](w io.Writer, snap pages.Snapshot[T]) bool {
	switch snap.Status {
	case pages.Idle, pages.Loading:
		fmt.Fprintln(w, "Loading…")
		return false
	case pages.Failed:
		ErrorBanner(w, snap.Err)
		return false
	default:
		return true
	}
}

// Dashboard draws the dashboard.
func Dashboard(w io.Writer, d pages.DashboardData) {
	fmt.Fprintf(w, "Welcome, %s! 👋\n\n", d.Greeting)
	Card(w, "CO₂ saved", Kg(d.TotalCarbon))
	Card(w, "Trees planted", humanize.Comma(int64(d.Metrics.TreesPlanted)))
	Card(w, "Completed paths", humanize.Comma(int64(d.Metrics.CompletedPaths)))
	fmt.Fprintln(w)

	labels := make([]string, len(d.Timeline.Carbon))
	values := make([]float64, len(d.Timeline.Carbon))
	for i, p := range d.Timeline.Carbon {
		labels[i], values[i] = p.Date, p.Carbon
	}
	BarChart(w, "Carbon saved over time", labels, values, "kg")
	fmt.Fprintln(w)

	labels = make([]string, len(d.Timeline.Trees))
	values = make([]float64, len(d.Timeline.Trees))
	for i, p := range d.Timeline.Trees {
		labels[i], values[i] = p.Month, float64(p.Trees)
	}
	BarChart(w, "Trees planted per month", labels, values, "trees")
}

// Impact draws the carbon metrics screen.
func Impact(w io.Writer, d pages.ImpactData) {
	fmt.Fprintln(w, "🌍 Carbon impact")
	fmt.Fprintln(w)
	Card(w, "Total CO₂ saved", Kg(d.Metrics.TotalCarbon))
	Card(w, "This month", Kg(d.Metrics.ThisMonth))
	Card(w, "Average per session", Kg(d.Metrics.AvgPerSession))
	Card(w, "Trend", fmt.Sprintf("%s vs %s", d.Metrics.Trend, d.Metrics.ComparedTo))
	fmt.Fprintln(w)

	labels := make([]string, len(d.Carbon))
	values := make([]float64, len(d.Carbon))
	for i, p := range d.Carbon {
		labels[i], values[i] = p.Date, p.Carbon
	}
	BarChart(w, "Carbon saved over time", labels, values, "kg")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "That is the same as avoiding:")
	fmt.Fprintf(w, "  ✈️  %s km by plane\n", humanize.Comma(int64(d.Equivalences.PlaneKm)))
	fmt.Fprintf(w, "  🚗 %s km by car\n", humanize.Comma(int64(d.Equivalences.CarKm)))
	fmt.Fprintf(w, "  🏠 %s days of household electricity\n", humanize.Comma(int64(d.Equivalences.HouseholdDays)))
}

// LearningPaths draws the path list.
func LearningPaths(w io.Writer, paths []models.LearningPath) {
	fmt.Fprintln(w, "📚 My learning paths")
	fmt.Fprintln(w)
	if len(paths) == 0 {
		fmt.Fprintln(w, "No learning paths yet. Generate one to get started.")
		return
	}
	for _, p := range paths {
		LearningPathCard(w, p)
		fmt.Fprintln(w)
	}
}

// LessonSection draws the section being read with the lesson's progress.
func LessonSection(w io.Writer, title string, section models.LessonSection, position, total int) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, ProgressBar(position, total))
	fmt.Fprintln(w)
	fmt.Fprintln(w, section.Title)
	fmt.Fprintln(w)
	fmt.Fprintln(w, section.Content)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "🌱 This section saves %s\n", Kg(section.CarbonImpact))
}

// PlantationHistory draws the history list and its summary line.
func PlantationHistory(w io.Writer, records []models.PlantationRecord, summary models.PlantationSummary) {
	fmt.Fprintln(w, "🌳 Plantation history")
	fmt.Fprintln(w)
	fmt.Fprintln(w, PlantationSummaryLine(summary))
	if len(records) == 0 {
		return
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTREES\tOFFSET\tLOCATION\tSTATUS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", r.Date, r.Trees, Kg(r.CarbonOffset), r.Location, statusLabel(r.Status))
	}
	tw.Flush()
}

func statusLabel(s models.PlantationStatus) string {
	if s == models.StatusInProgress {
		return "⏳ In progress"
	}
	return "✓ Planted"
}

// Profile draws the user's account and stats.
func Profile(w io.Writer, user models.User, metrics models.CarbonMetrics, rank string) {
	fmt.Fprintln(w, "👤 My profile")
	fmt.Fprintln(w)
	Card(w, "Name", user.Name)
	Card(w, "Email", user.Email)
	if !user.CreatedAt.IsZero() {
		Card(w, "Member since", humanize.Time(user.CreatedAt))
	}
	fmt.Fprintln(w)
	Card(w, "Learning time", fmt.Sprintf("%d h", metrics.LearningHours))
	Card(w, "Paths completed", humanize.Comma(int64(metrics.CompletedPaths)))
	Card(w, "CO₂ saved", Kg(metrics.TotalCarbon))
	Card(w, "Trees planted", humanize.Comma(int64(metrics.TreesPlanted)))
	Card(w, "Rank", "🏆 "+rank)
}

// User draws a one-line identity.
func User(w io.Writer, user models.User) {
	fmt.Fprintf(w, "%s <%s>\n", user.Name, user.Email)
}

// Calculation draws the result of a footprint calculation.
func Calculation(w io.Writer, c models.CarbonCalculation) {
	Card(w, "This session", Kg(c.SessionCarbon))
	Card(w, "Running total", Kg(c.TotalCarbon))
	Card(w, "Trees to offset", humanize.Comma(int64(c.TreesNeeded)))
}

// Offset draws the result of an offset.
func Offset(w io.Writer, r models.OffsetResult) {
	fmt.Fprintf(w, "🌳 %d trees ordered in %s (%s) - %s\n", r.Record.Trees, r.Record.Location, Kg(r.Record.CarbonOffset), statusLabel(r.Record.Status))
	Card(w, "Total trees planted", humanize.Comma(int64(r.TotalTrees)))
}

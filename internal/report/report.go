// Package report derives the figures shown on the summary and performance tabs.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/BerylCAtieno/client-dashboard/internal/dashboard"
	"github.com/BerylCAtieno/client-dashboard/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type KPICard struct {
	models.KPI
	Progress float64 `json:"progress"`
	Display  string  `json:"display"`
}

type StatusCounts struct {
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	NotStarted int `json:"notStarted"`
}

type ActivityRow struct {
	Key                string  `json:"key"`
	Title              string  `json:"title"`
	MonthlyAchievement int     `json:"monthlyAchievement"`
	Growth             float64 `json:"growth"`
	GrowthBar          float64 `json:"growthBar"`
	Status             string  `json:"status"`
}

type PlanningProgress struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

type Report struct {
	Customer string             `json:"customer"`
	Package  string             `json:"package"`
	KPIs     []KPICard          `json:"kpis"`
	Status   StatusCounts       `json:"status"`
	Activity []ActivityRow      `json:"activity"`
	Planning []PlanningProgress `json:"planning"`
}

// Build derives the report for a dashboard state.
func Build(s dashboard.State) Report {
	r := Report{
		Customer: s.Subscription.CustomerName,
		Package:  s.Subscription.PackageName,
		KPIs:     make([]KPICard, 0, len(s.KPIs)),
		Activity: make([]ActivityRow, 0, len(s.Activity)),
		Planning: make([]PlanningProgress, 0, len(s.Planning)),
	}

	for _, k := range s.KPIs {
		r.KPIs = append(r.KPIs, KPICard{
			KPI:      k,
			Progress: Ratio(k.CurrentValue, k.TargetValue),
			Display:  FormatNumber(k.CurrentValue),
		})
	}

	r.Status = CountStatuses(s.Analysis.Sections)

	for _, a := range s.Activity {
		r.Activity = append(r.Activity, ActivityRow{
			Key:                a.Key,
			Title:              a.Title,
			MonthlyAchievement: int(math.Round(Ratio(a.Monthly.Achieved, a.Monthly.Target))),
			Growth:             a.Overall.Growth,
			GrowthBar:          math.Max(0, math.Min(a.Overall.Growth, 100)),
			Status:             a.Monthly.Status,
		})
	}

	for _, p := range s.Planning {
		done := 0
		for _, item := range p.Items {
			if item.Completed {
				done++
			}
		}
		r.Planning = append(r.Planning, PlanningProgress{
			ID:        p.ID,
			Title:     p.Title,
			Completed: done,
			Total:     len(p.Items),
			Percent:   Ratio(float64(done), float64(len(p.Items))),
		})
	}
	return r
}

// Ratio returns value/target as a percentage, 0 when target is not positive.
func Ratio(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return value / target * 100
}

func CountStatuses(sections []models.AnalysisSection) StatusCounts {
	var c StatusCounts
	for _, s := range sections {
		switch s.Status {
		case models.StatusCompleted:
			c.Completed++
		case models.StatusInProgress:
			c.InProgress++
		default:
			c.NotStarted++
		}
	}
	return c
}

var printer = message.NewPrinter(language.Turkish)

// FormatNumber formats v with Turkish grouping and decimal marks: 2.450, 3,2.
func FormatNumber(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Text renders the report as plain text for the CLI.
func (r Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s | %s\n\n", r.Customer, r.Package)

	b.WriteString("KPIs:\n")
	for _, k := range r.KPIs {
		fmt.Fprintf(&b, "- %s: %s / %s %s (%%%s)\n",
			k.Name, k.Display, FormatNumber(k.TargetValue), k.Unit, FormatNumber(math.Round(k.Progress)))
	}

	fmt.Fprintf(&b, "\nProje Durumu: %d tamamlanan, %d devam eden, %d bekleyen\n",
		r.Status.Completed, r.Status.InProgress, r.Status.NotStarted)

	b.WriteString("\nFaaliyet Raporu:\n")
	for _, a := range r.Activity {
		fmt.Fprintf(&b, "- %s: aylık %%%d, büyüme %%%s (%s)\n",
			a.Title, a.MonthlyAchievement, FormatNumber(a.Growth), a.Status)
	}

	b.WriteString("\nPlanlama:\n")
	for _, p := range r.Planning {
		fmt.Fprintf(&b, "- %s: %d/%d\n", p.Title, p.Completed, p.Total)
	}
	return b.String()
}

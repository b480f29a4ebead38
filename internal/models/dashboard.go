package models

import (
	"time"

	"github.com/google/uuid"
)

// Section statuses
const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// KPI trends
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

type Competitor struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	SocialMedia string    `json:"socialMedia"`
	LinkedIn    string    `json:"linkedin"`
	Website     string    `json:"website"`
}

type KPI struct {
	Name         string  `json:"name" yaml:"name"`
	CurrentValue float64 `json:"currentValue" yaml:"currentValue"`
	TargetValue  float64 `json:"targetValue" yaml:"targetValue"`
	Unit         string  `json:"unit" yaml:"unit"`
	Trend        string  `json:"trend" yaml:"trend"`
}

type Subscription struct {
	CustomerName string   `json:"customerName" yaml:"customerName"`
	PackageName  string   `json:"packageName" yaml:"packageName"`
	Features     []string `json:"features" yaml:"features"`
	StartDate    string   `json:"startDate" yaml:"startDate"`
	Duration     string   `json:"duration" yaml:"duration"`
}

type MonthlyFigures struct {
	Target   float64 `json:"target" yaml:"target"`
	Achieved float64 `json:"achieved" yaml:"achieved"`
	Status   string  `json:"status" yaml:"status"`
}

type OverallFigures struct {
	StartValue   float64 `json:"startValue" yaml:"startValue"`
	CurrentValue float64 `json:"currentValue" yaml:"currentValue"`
	Growth       float64 `json:"growth" yaml:"growth"`
}

// ActivityMetric is one card of the activity report.
type ActivityMetric struct {
	Key     string         `json:"key" yaml:"key"`
	Title   string         `json:"title" yaml:"title"`
	Monthly MonthlyFigures `json:"monthly" yaml:"monthly"`
	Overall OverallFigures `json:"overall" yaml:"overall"`
}

// Attachment is an uploaded file kept as an opaque blob.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	UploadedAt  time.Time `json:"uploadedAt"`
	Data        []byte    `json:"-"`
}

type AnalysisSection struct {
	ID               string       `json:"id" yaml:"id"`
	Title            string       `json:"title" yaml:"title"`
	Status           string       `json:"status" yaml:"status"`
	StartDate        string       `json:"startDate,omitempty" yaml:"startDate"`
	EstimatedEndDate string       `json:"estimatedEndDate,omitempty" yaml:"estimatedEndDate"`
	Attachments      []Attachment `json:"attachments" yaml:"-"`
}

type ChecklistItem struct {
	Name      string `json:"name" yaml:"name"`
	Completed bool   `json:"completed" yaml:"completed"`
}

type PlanningSection struct {
	ID    string          `json:"id" yaml:"id"`
	Title string          `json:"title" yaml:"title"`
	Items []ChecklistItem `json:"items" yaml:"items"`
}

// ValidStatus reports whether s is a known section status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

package worksheet

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/client-dashboard/internal/models"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultSelfLabel names the dashboard owner's own column.
const DefaultSelfLabel = "İntime"

// Matrix is the competitor comparison worksheet: a feature × entrant score grid.
// Entrants are the self label followed by every competitor name.
//
// Every feature row with non-blank text holds a cell for every entrant.
type Matrix struct {
	SelfLabel   string                       `json:"selfLabel"`
	Competitors []models.Competitor          `json:"competitors"`
	Features    []string                     `json:"features"`
	Table       map[string]map[string]string `json:"table"`
}

// NewMatrix returns a matrix seeded with the given feature names. Blank names are kept as
// placeholders but get no row.
func NewMatrix(selfLabel string, features ...string) Matrix {
	if strings.TrimSpace(selfLabel) == "" {
		selfLabel = DefaultSelfLabel
	}
	m := Matrix{
		SelfLabel:   selfLabel,
		Competitors: []models.Competitor{},
		Features:    []string{},
		Table:       map[string]map[string]string{},
	}
	for _, f := range features {
		if strings.TrimSpace(f) == "" {
			m.Features = append(m.Features, f)
			continue
		}
		if next, err := m.AddFeature(f); err == nil {
			m = next
		}
	}
	return m
}

// AddCompetitor appends a competitor and backfills a blank cell for it under every
// non-blank feature. The self cell is created too if a row lacks it.
func (m Matrix) AddCompetitor(name, socialMedia, linkedin, website string) (Matrix, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return m, fmt.Errorf("competitor name is blank: %w", ErrInvalidInput)
	}
	if m.hasEntrant(name) {
		return m, fmt.Errorf("competitor %q: %w", name, ErrDuplicate)
	}

	out := m.clone()
	out.Competitors = append(out.Competitors, models.Competitor{
		ID:          uuid.New(),
		Name:        name,
		SocialMedia: socialMedia,
		LinkedIn:    linkedin,
		Website:     website,
	})

	for _, f := range out.ActiveFeatures() {
		row := maps.Clone(out.Table[f])
		if row == nil {
			row = map[string]string{}
		}
		if _, ok := row[name]; !ok {
			row[name] = ""
		}
		if _, ok := row[out.SelfLabel]; !ok {
			row[out.SelfLabel] = ""
		}
		out.Table[f] = row
	}
	return out, nil
}

// AddFeature appends a feature row with a blank cell for every entrant.
func (m Matrix) AddFeature(name string) (Matrix, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return m, fmt.Errorf("feature name is blank: %w", ErrInvalidInput)
	}
	if _, ok := m.Table[name]; ok {
		return m, fmt.Errorf("feature %q: %w", name, ErrDuplicate)
	}

	out := m.clone()
	out.Features = append(out.Features, name)
	row := map[string]string{out.SelfLabel: ""}
	for _, c := range out.Competitors {
		row[c.Name] = ""
	}
	out.Table[name] = row
	return out, nil
}

// UpdateScore stores score text for one cell. The text is not validated; totals treat
// anything that is not a number as zero.
func (m Matrix) UpdateScore(feature, entrant, score string) (Matrix, error) {
	row, ok := m.Table[feature]
	if !ok {
		return m, fmt.Errorf("feature %q: %w", feature, ErrNotFound)
	}
	if !slices.Contains(m.Entrants(), entrant) {
		return m, fmt.Errorf("entrant %q: %w", entrant, ErrNotFound)
	}

	out := m.clone()
	row = maps.Clone(row)
	row[entrant] = score
	out.Table[feature] = row
	return out, nil
}

// Entrants returns the self label followed by competitor names, in column order.
func (m Matrix) Entrants() []string {
	entrants := make([]string, 0, len(m.Competitors)+1)
	entrants = append(entrants, m.SelfLabel)
	for _, c := range m.Competitors {
		entrants = append(entrants, c.Name)
	}
	return entrants
}

// ActiveFeatures returns the features with non-blank text, in row order.
func (m Matrix) ActiveFeatures() []string {
	active := make([]string, 0, len(m.Features))
	for _, f := range m.Features {
		if strings.TrimSpace(f) != "" {
			active = append(active, f)
		}
	}
	return active
}

// RowTotal sums one feature's scores over all entrants.
func (m Matrix) RowTotal(feature string) float64 {
	row := m.Table[feature]
	var total float64
	for _, e := range m.Entrants() {
		total += ParseScore(row[e])
	}
	return total
}

// ColumnTotal sums one entrant's scores over all active features.
func (m Matrix) ColumnTotal(entrant string) float64 {
	var total float64
	for _, f := range m.ActiveFeatures() {
		total += ParseScore(m.Table[f][entrant])
	}
	return total
}

// GrandTotal sums every entrant's column total.
func (m Matrix) GrandTotal() float64 {
	var total float64
	for _, e := range m.Entrants() {
		total += m.ColumnTotal(e)
	}
	return total
}

// ParseScore reads score text as a number. Blank, unparseable and non-finite text is 0.
func ParseScore(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (m Matrix) hasEntrant(name string) bool {
	key := nameKey(name)
	for _, e := range m.Entrants() {
		if nameKey(e) == key {
			return true
		}
	}
	return false
}

// nameKey lowercases with Turkish casing rules and treats dotted and dotless i alike,
// so "İntime", "INTIME" and "ıntime" share one key.
func nameKey(name string) string {
	lower := cases.Lower(language.Turkish).String(strings.TrimSpace(name))
	return strings.ReplaceAll(lower, "ı", "i")
}

// clone copies the slices and the outer table map. Rows are shared until a caller
// replaces them.
func (m Matrix) clone() Matrix {
	out := Matrix{
		SelfLabel:   m.SelfLabel,
		Competitors: slices.Clone(m.Competitors),
		Features:    slices.Clone(m.Features),
		Table:       maps.Clone(m.Table),
	}
	if out.Competitors == nil {
		out.Competitors = []models.Competitor{}
	}
	if out.Features == nil {
		out.Features = []string{}
	}
	if out.Table == nil {
		out.Table = map[string]map[string]string{}
	}
	return out
}

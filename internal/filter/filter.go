// Package filter holds the user's current dashboard selection (district,
// taluka subset, year range, metric subset) and the derived selectors every
// display page reads.
//
// The store has a single owner per session; mutation happens only through the
// setter methods and no operation blocks. An empty taluka or metric list
// means "all selected". Changing district always resets the taluka selection,
// since taluka names are not stable across districts.
package filter

import (
	"slices"
	"strconv"
	"strings"

	"github.com/sahyadri-labs/distdash/internal/district"
	"github.com/sahyadri-labs/distdash/internal/scale"
	"github.com/sahyadri-labs/distdash/internal/sector"
)

// YearRange is an inclusive [start, end] window.
type YearRange [2]int

// DefaultYearRange spans the years present in every time-series dataset.
var DefaultYearRange = YearRange{2012, 2021}

// State is a snapshot of the current selection.
type State struct {
	District  string
	Talukas   []string // empty = all
	YearRange YearRange
	Metrics   []string // empty = all
}

// Store is the single source of truth for the active selection.
type Store struct {
	reg   *district.Registry
	state State
}

// New returns a store initialized to defaults: canonical district, all
// talukas, the full year range, all metrics.
func New(reg *district.Registry) *Store {
	s := &Store{reg: reg}
	s.state = s.defaults()
	return s
}

func (s *Store) defaults() State {
	return State{
		District:  s.reg.Canonical(),
		Talukas:   []string{},
		YearRange: DefaultYearRange,
		Metrics:   []string{},
	}
}

// State returns a copy of the current selection.
func (s *Store) State() State {
	out := s.state
	out.Talukas = slices.Clone(s.state.Talukas)
	out.Metrics = slices.Clone(s.state.Metrics)
	return out
}

// DistrictInfo returns the descriptor for the active district.
func (s *Store) DistrictInfo() district.Info {
	return s.reg.Get(s.state.District)
}

// SetDistrict switches district and resets the taluka selection to "all".
func (s *Store) SetDistrict(slug string) {
	s.state.District = slug
	s.state.Talukas = []string{}
}

// SetTalukas replaces the explicit selection. An empty list means "all".
func (s *Store) SetTalukas(names []string) {
	s.state.Talukas = slices.Clone(names)
}

// ToggleTaluka flips one taluka's selection. While in the "all" state,
// toggling a name off switches to an explicit list of every other available
// taluka. In an explicit list, a present name is removed and an absent one
// added; removing the last name returns to the "all" state.
func (s *Store) ToggleTaluka(name string) {
	if len(s.state.Talukas) == 0 {
		var rest []string
		for _, t := range s.AvailableTalukas() {
			if t != name {
				rest = append(rest, t)
			}
		}
		s.state.Talukas = rest
		return
	}
	if i := slices.Index(s.state.Talukas, name); i >= 0 {
		s.state.Talukas = slices.Delete(s.state.Talukas, i, i+1)
		return
	}
	s.state.Talukas = append(s.state.Talukas, name)
}

// SetYearRange replaces the year window. The store does not validate
// start <= end: an inverted range simply filters everything out downstream.
func (s *Store) SetYearRange(r YearRange) {
	s.state.YearRange = r
}

// SetMetrics replaces the metric subset. An empty list means "all".
func (s *Store) SetMetrics(metrics []string) {
	s.state.Metrics = slices.Clone(metrics)
}

// Reset restores the default selection.
func (s *Store) Reset() {
	s.state = s.defaults()
}

// IsAllTalukas reports whether every taluka is selected.
func (s *Store) IsAllTalukas() bool {
	return len(s.state.Talukas) == 0
}

// AvailableTalukas lists the taluka names of the active district. Always
// recomputed from the current descriptor, never cached across district
// changes.
func (s *Store) AvailableTalukas() []string {
	info := s.DistrictInfo()
	out := make([]string, len(info.Talukas))
	for i, t := range info.Talukas {
		out[i] = t.Name
	}
	return out
}

// VisibleTalukas returns the dataset's taluka records narrowed to the current
// selection; the full list when all are selected.
func (s *Store) VisibleTalukas(doc sector.Document) []map[string]any {
	rows := doc.Rows("talukas")
	if len(s.state.Talukas) == 0 {
		return rows
	}
	selected := make(map[string]bool, len(s.state.Talukas))
	for _, name := range s.state.Talukas {
		selected[name] = true
	}
	var out []map[string]any
	for _, row := range rows {
		if name, ok := row["name"].(string); ok && selected[name] {
			out = append(out, row)
		}
	}
	return out
}

// FilteredRows restricts a time-series field (chartData, milkTrends,
// serviceTrends) to rows whose year falls within the active range, preserving
// order. Rows without a readable year are dropped.
func (s *Store) FilteredRows(doc sector.Document, field string) []map[string]any {
	return RowsInRange(doc.Rows(field), s.state.YearRange)
}

// RowsInRange filters rows by the inclusive year window.
func RowsInRange(rows []map[string]any, r YearRange) []map[string]any {
	var out []map[string]any
	for _, row := range rows {
		y, ok := rowYear(row)
		if !ok {
			continue
		}
		if y >= r[0] && y <= r[1] {
			out = append(out, row)
		}
	}
	return out
}

// rowYear reads a row's year, which appears as a number in chart data and as
// a string ("2020", "2020-21") in trend series.
func rowYear(row map[string]any) (int, bool) {
	v, ok := row["year"]
	if !ok {
		return 0, false
	}
	if f, ok := scale.Number(v); ok {
		return int(f), true
	}
	str, ok := v.(string)
	if !ok {
		return 0, false
	}
	digits := str
	if i := strings.IndexFunc(str, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		digits = str[:i]
	}
	y, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return y, true
}

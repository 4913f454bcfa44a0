// Package stats derives harvest statistics from already loaded harvests and
// cultures. It has no side effects.
//
// Harvests are grouped by their CultureName copy, not by CultureID, and the
// plant count is joined by culture name. Two cultures sharing a display name
// therefore share one group, and a harvest recorded before a rename stays
// under the old name.
package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/vbonduro/gardenlog/internal/domain"
)

// AllCultures is the culture filter value that selects every culture.
const AllCultures = "all"

// Filter narrows the harvests a report covers. From and To are inclusive
// calendar dates (YYYY-MM-DD); either may be empty for an open bound.
type Filter struct {
	CultureID string
	From      string
	To        string
}

// Validate checks that the date bounds are calendar dates in order.
func (f Filter) Validate() error {
	for _, d := range []string{f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(domain.DateLayout, d); err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", d)
		}
	}
	if f.From != "" && f.To != "" && f.From > f.To {
		return fmt.Errorf("date range start %s is after end %s", f.From, f.To)
	}
	return nil
}

func (f Filter) hasRange() bool { return f.From != "" || f.To != "" }

// CultureTotal is one bar of the per-culture chart.
type CultureTotal struct {
	Name       string `json:"name"`
	Harvest    int    `json:"harvest"`
	PlantCount int    `json:"plantCount"`
}

// Slice is one pie chart segment.
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Report struct {
	TotalHarvest      int               `json:"totalHarvest"`
	HarvestCount      int               `json:"harvestCount"`
	AveragePerCulture int               `json:"averagePerCulture"`
	ByCulture         []CultureTotal    `json:"byCulture"`
	Pie               []Slice           `json:"pie"`
	Harvests          []*domain.Harvest `json:"harvests"`
}

// Compute filters harvests and aggregates them. Groups appear in the order
// their first harvest appears. The per-culture average is rounded to the
// nearest whole number and is 0 when nothing matches the filter.
func Compute(harvests []*domain.Harvest, cultures []*domain.Culture, f Filter) *Report {
	filtered := Select(harvests, f)

	report := &Report{
		HarvestCount: len(filtered),
		ByCulture:    []CultureTotal{},
		Pie:          []Slice{},
		Harvests:     filtered,
	}

	index := make(map[string]int)
	for _, h := range filtered {
		n := h.Count.Int()
		report.TotalHarvest += n

		i, ok := index[h.CultureName]
		if !ok {
			i = len(report.ByCulture)
			index[h.CultureName] = i
			report.ByCulture = append(report.ByCulture, CultureTotal{Name: h.CultureName})
		}
		report.ByCulture[i].Harvest += n
	}

	for _, c := range cultures {
		if i, ok := index[c.Name]; ok {
			report.ByCulture[i].PlantCount = c.PlantCount.Int()
		}
	}

	for _, ct := range report.ByCulture {
		report.Pie = append(report.Pie, Slice{Name: ct.Name, Value: ct.Harvest})
	}

	if len(report.ByCulture) > 0 {
		report.AveragePerCulture = int(math.Round(float64(report.TotalHarvest) / float64(len(report.ByCulture))))
	}

	return report
}

// Select returns the harvests matching f, in input order. When a date bound
// is set, harvests whose date cannot be read are left out.
func Select(harvests []*domain.Harvest, f Filter) []*domain.Harvest {
	out := make([]*domain.Harvest, 0, len(harvests))
	for _, h := range harvests {
		if f.CultureID != "" && f.CultureID != AllCultures && h.CultureID != f.CultureID {
			continue
		}
		if f.hasRange() {
			day, ok := Day(h.Date)
			if !ok {
				continue
			}
			if f.From != "" && day < f.From {
				continue
			}
			if f.To != "" && day > f.To {
				continue
			}
		}
		out = append(out, h)
	}
	return out
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Day normalizes a stored date to YYYY-MM-DD. Plain dates pass through;
// timestamps are taken in local time, like the browser client did.
func Day(s string) (string, bool) {
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t.Format(domain.DateLayout), true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.In(time.Local).Format(domain.DateLayout), true
		}
	}
	return "", false
}

package report

import (
	"sort"
	"strconv"

	"github.com/dkeller9/contactlens/internal/contact"
)

// Chart kinds understood by the SVG renderer.
const (
	KindBar  = "bar"
	KindLine = "line"
)

// Point is one labeled value in a chart series.
type Point struct {
	Label string
	Value int
}

// Chart is a render-ready single-series chart.
type Chart struct {
	Title  string
	Kind   string
	Color  string
	Points []Point
}

// defaultColors is the fixed palette assigned to the report panels.
var defaultColors = []string{
	"#0D9488", "#F59E0B", "#4F46E5", "#10B981", "#EF4444", "#8B5CF6",
}

// BuildCharts produces the report's chart panel from an enriched batch:
// category distribution, quality-score distribution, contacts added by
// hour, and monthly contact growth.
func BuildCharts(records []contact.Enriched) []Chart {
	charts := []Chart{
		{Title: "Distribution by Category", Kind: KindBar, Points: categoryCounts(records)},
		{Title: "Contact Quality Score", Kind: KindBar, Points: scoreCounts(records)},
		{Title: "Contacts Added by Hour", Kind: KindBar, Points: hourCounts(records)},
		{Title: "Monthly Contact Growth", Kind: KindLine, Points: monthlyCounts(records)},
	}
	for i := range charts {
		charts[i].Color = defaultColors[i%len(defaultColors)]
	}
	return charts
}

// categoryCounts counts rows per category label, most frequent first.
func categoryCounts(records []contact.Enriched) []Point {
	counts := map[string]int{}
	for i := range records {
		counts[records[i].CategoryLabel]++
	}
	points := toPoints(counts)
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
	return points
}

// scoreCounts counts rows per quality score, ascending by score.
func scoreCounts(records []contact.Enriched) []Point {
	counts := map[int]int{}
	for i := range records {
		counts[records[i].QualityScore]++
	}
	return sortedIntPoints(counts)
}

// hourCounts counts rows per creation hour; rows without a parsed
// created_at are excluded.
func hourCounts(records []contact.Enriched) []Point {
	counts := map[int]int{}
	for i := range records {
		if h := records[i].CreatedHour; h != nil {
			counts[*h]++
		}
	}
	return sortedIntPoints(counts)
}

// monthlyCounts counts rows per creation month (YYYY-MM), chronological.
func monthlyCounts(records []contact.Enriched) []Point {
	counts := map[string]int{}
	for i := range records {
		if t := records[i].CreatedAt; t != nil {
			counts[t.Format("2006-01")]++
		}
	}
	points := toPoints(counts)
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })
	return points
}

func toPoints(counts map[string]int) []Point {
	points := make([]Point, 0, len(counts))
	for label, n := range counts {
		points = append(points, Point{Label: label, Value: n})
	}
	return points
}

func sortedIntPoints(counts map[int]int) []Point {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	points := make([]Point, 0, len(keys))
	for _, k := range keys {
		points = append(points, Point{Label: strconv.Itoa(k), Value: counts[k]})
	}
	return points
}

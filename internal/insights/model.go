package insights

import (
	"strings"
	"time"
)

// Insight sources.
const (
	SourceBaseline  = "baseline"
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
)

const (
	refreshInterval  = 7 * 24 * time.Hour
	fallbackInterval = 24 * time.Hour
)

type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

type IndustryInsight struct {
	ID                string        `json:"id"`
	Industry          string        `json:"industry"`
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       string        `json:"demandLevel"`
	TopSkills         []string      `json:"topSkills"`
	MarketOutlook     string        `json:"marketOutlook"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
	Source            string        `json:"source"`
	LastUpdated       time.Time     `json:"lastUpdated"`
	NextUpdate        time.Time     `json:"nextUpdate"`
}

// Stale reports whether the insight should be regenerated at now.
func (i IndustryInsight) Stale(now time.Time) bool {
	return i.Source != SourceGenerated || !now.Before(i.NextUpdate)
}

// generatedInsight is the model's JSON answer.
type generatedInsight struct {
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       string        `json:"demandLevel"`
	TopSkills         []string      `json:"topSkills"`
	MarketOutlook     string        `json:"marketOutlook"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
}

func (g generatedInsight) toInsight(industry string, now time.Time) IndustryInsight {
	return IndustryInsight{
		Industry:          industry,
		SalaryRanges:      nonNilRanges(g.SalaryRanges),
		GrowthRate:        g.GrowthRate,
		DemandLevel:       normalizeLevel(g.DemandLevel, []string{"High", "Medium", "Low"}, "Medium"),
		TopSkills:         nonNil(g.TopSkills),
		MarketOutlook:     normalizeLevel(g.MarketOutlook, []string{"Positive", "Neutral", "Negative"}, "Neutral"),
		KeyTrends:         nonNil(g.KeyTrends),
		RecommendedSkills: nonNil(g.RecommendedSkills),
		Source:            SourceGenerated,
		LastUpdated:       now,
		NextUpdate:        now.Add(refreshInterval),
	}
}

// baseline is the placeholder stored when a user first picks an industry.
func baseline(industry string, now time.Time) IndustryInsight {
	return IndustryInsight{
		Industry: industry,
		SalaryRanges: []SalaryRange{
			{Role: "Software Engineer", Min: 50000, Max: 150000, Median: 90000, Location: "Global"},
		},
		GrowthRate:        10.2,
		DemandLevel:       "High",
		TopSkills:         []string{"JavaScript", "React", "Node.js", "SQL"},
		MarketOutlook:     "Positive",
		KeyTrends:         []string{"AI adoption", "Remote work", "Cloud computing"},
		RecommendedSkills: []string{"Docker", "Kubernetes", "System Design"},
		Source:            SourceBaseline,
		LastUpdated:       now,
		NextUpdate:        now.Add(refreshInterval),
	}
}

// fallback is returned, never stored, when generation fails and nothing is stored.
func fallback(industry string, now time.Time) IndustryInsight {
	if industry == "" {
		industry = "unknown"
	}
	return IndustryInsight{
		ID:                "fallback",
		Industry:          industry,
		SalaryRanges:      []SalaryRange{},
		DemandLevel:       "Medium",
		TopSkills:         []string{},
		MarketOutlook:     "Neutral",
		KeyTrends:         []string{},
		RecommendedSkills: []string{},
		Source:            SourceFallback,
		LastUpdated:       now,
		NextUpdate:        now.Add(fallbackInterval),
	}
}

func normalizeLevel(value string, allowed []string, def string) string {
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(value), a) {
			return a
		}
	}
	return def
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilRanges(values []SalaryRange) []SalaryRange {
	if values == nil {
		return []SalaryRange{}
	}
	return values
}

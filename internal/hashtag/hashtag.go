// Package hashtag assembles social media hashtags for property listings
// from a curated database of proven UK property tags.
package hashtag

import (
	"math/rand"
	"strings"
	"time"
)

// Request selects which hashtag categories contribute.
type Request struct {
	PropertyType   string   `json:"property_type,omitempty"`
	Location       string   `json:"location,omitempty"`
	TargetAudience string   `json:"target_audience,omitempty"`
	Features       []string `json:"features,omitempty"`
	Platform       string   `json:"platform,omitempty"`
	MaxHashtags    int      `json:"max_hashtags,omitempty"`
}

// Result is the assembled hashtag set with platform guidance.
type Result struct {
	Hashtags          []string `json:"hashtags"`
	Count             int      `json:"count"`
	CategoriesUsed    []string `json:"categories_used"`
	Platform          string   `json:"platform"`
	OptimizationNotes string   `json:"optimization_notes"`
}

const defaultMaxHashtags = 15

// Service selects hashtags. The random source and clock are injectable so
// selection is reproducible in tests.
type Service struct {
	rand *rand.Rand
	now  func() time.Time
}

func NewService() *Service {
	return &Service{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
}

// Generate assembles a deduplicated hashtag list. Categories contribute in a
// fixed order (general, type, location, audience, features, platform,
// seasonal) so the most broadly relevant tags survive the cap.
func (s *Service) Generate(req Request) *Result {
	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	if platform == "" {
		platform = "instagram"
	}
	maxHashtags := req.MaxHashtags
	if maxHashtags <= 0 {
		maxHashtags = defaultMaxHashtags
	}

	var hashtags []string
	var categories []string

	take := func(category string, count int) {
		tags := s.sample(category, count)
		if len(tags) == 0 {
			return
		}
		hashtags = append(hashtags, tags...)
		categories = append(categories, category)
	}

	take("general", 4)

	if key := normalizePropertyType(req.PropertyType); key != "general" {
		take(key, 3)
	}
	if key := normalizeLocation(req.Location); key != "general" {
		take(key, 3)
	}
	if key := normalizeAudience(req.TargetAudience); key != "general" {
		take(key, 2)
	}

	features := req.Features
	if len(features) > 3 {
		features = features[:3]
	}
	for _, feature := range features {
		if key := normalizeFeature(feature); key != "general" {
			take(key, 2)
		}
	}

	if platform == "instagram" {
		take("instagram_optimized", 2)
		take("engagement", 1)
	}

	take(seasonFor(s.now()), 1)

	unique := dedupe(hashtags)
	if len(unique) > maxHashtags {
		unique = unique[:maxHashtags]
	}

	return &Result{
		Hashtags:          unique,
		Count:             len(unique),
		CategoriesUsed:    dedupe(categories),
		Platform:          platform,
		OptimizationNotes: optimizationNotes(platform, len(unique)),
	}
}

// Trending returns currently trending UK property hashtags. A static set
// plus seasonal additions; a trends API could replace this.
func (s *Service) Trending() []string {
	trending := []string{
		"#PropertyMarket2026",
		"#UKHousingMarket",
		"#MortgageRates",
		"#PropertyPrices",
		"#HousingCrisis",
		"#FirstTimeBuyerHelp",
	}
	switch seasonFor(s.now()) {
	case "spring":
		trending = append(trending, "#SpringMoving", "#PropertySpring")
	case "winter":
		trending = append(trending, "#NewYearNewHome", "#2026Property")
	}
	return trending
}

func (s *Service) sample(category string, count int) []string {
	tags, ok := curatedHashtags[category]
	if !ok {
		return nil
	}
	if len(tags) <= count {
		out := make([]string, len(tags))
		copy(out, tags)
		return out
	}
	idx := s.rand.Perm(len(tags))[:count]
	out := make([]string, 0, count)
	for _, i := range idx {
		out = append(out, tags[i])
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

func seasonFor(now time.Time) string {
	switch now.Month() {
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	case time.September, time.October, time.November:
		return "autumn"
	default:
		return "winter"
	}
}

func optimizationNotes(platform string, count int) string {
	switch platform {
	case "instagram":
		if count < 10 {
			return "Consider adding more hashtags (Instagram allows up to 30, optimal is 11-15)"
		}
		if count <= 15 {
			return "Optimal hashtag count for Instagram engagement"
		}
		return "Good hashtag coverage"
	case "twitter":
		if count > 3 {
			return "Twitter performs better with 1-3 hashtags"
		}
		return "Good for Twitter"
	case "facebook":
		if count > 5 {
			return "Facebook posts perform better with fewer hashtags (3-5)"
		}
		return "Good for Facebook"
	}
	return "Hashtags ready"
}

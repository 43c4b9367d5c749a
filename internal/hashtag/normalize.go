package hashtag

import "strings"

func normalizePropertyType(propertyType string) string {
	pt := strings.ToLower(propertyType)
	switch {
	case strings.Contains(pt, "semi"):
		return "semi_detached"
	case strings.Contains(pt, "detached"):
		return "detached"
	case strings.Contains(pt, "terrace"):
		return "terraced"
	case strings.Contains(pt, "flat"), strings.Contains(pt, "apartment"):
		return "flat"
	case strings.Contains(pt, "cottage"):
		return "cottage"
	case strings.Contains(pt, "bungalow"):
		return "bungalow"
	case strings.Contains(pt, "penthouse"):
		return "penthouse"
	case strings.Contains(pt, "mansion"):
		return "mansion"
	}
	return "general"
}

// locationMappings resolves place names to hashtag category keys; nearby
// towns collapse into their region.
var locationMappings = []struct {
	needle   string
	category string
}{
	{"london", "london"},
	{"manchester", "manchester"},
	{"birmingham", "birmingham"},
	{"bristol", "bristol"},
	{"edinburgh", "edinburgh"},
	{"leeds", "leeds"},
	{"liverpool", "liverpool"},
	{"cotswold", "cotswolds"},
	{"surrey", "surrey"},
	{"kent", "kent"},
	{"sussex", "sussex"},
	{"cornwall", "cornwall"},
	{"devon", "devon"},
	{"yorkshire", "yorkshire"},
	{"scotland", "scotland"},
	{"wales", "wales"},
	{"glasgow", "scotland"},
	{"cardiff", "wales"},
	{"bath", "bristol"},
	{"oxford", "cotswolds"},
}

func normalizeLocation(location string) string {
	loc := strings.ToLower(location)
	for _, m := range locationMappings {
		if strings.Contains(loc, m.needle) {
			return m.category
		}
	}
	return "general"
}

func normalizeAudience(audience string) string {
	aud := strings.ToLower(audience)
	switch {
	case strings.Contains(aud, "first"), strings.Contains(aud, "ftb"):
		return "first_time_buyers"
	case strings.Contains(aud, "famil"):
		return "families"
	case strings.Contains(aud, "invest"):
		return "investors"
	case strings.Contains(aud, "downsize"), strings.Contains(aud, "retire"):
		return "downsizers"
	case strings.Contains(aud, "luxury"), strings.Contains(aud, "premium"):
		return "luxury"
	}
	return "general"
}

func normalizeFeature(feature string) string {
	feat := strings.ToLower(feature)
	switch {
	case strings.Contains(feat, "garden"):
		return "garden"
	case strings.Contains(feat, "parking"), strings.Contains(feat, "garage"), strings.Contains(feat, "driveway"):
		return "parking"
	case strings.Contains(feat, "period"), strings.Contains(feat, "character"),
		strings.Contains(feat, "victorian"), strings.Contains(feat, "georgian"):
		return "period"
	case strings.Contains(feat, "modern"), strings.Contains(feat, "contemporary"), strings.Contains(feat, "new build"):
		return "modern"
	case strings.Contains(feat, "renovation"), strings.Contains(feat, "project"), strings.Contains(feat, "potential"):
		return "renovation"
	case strings.Contains(feat, "view"):
		return "views"
	}
	return "general"
}

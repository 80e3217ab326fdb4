package detector

import "strings"

type industryRule struct {
	label    string
	keywords []string
}

// industries is checked in order; the first rule with a matching keyword wins.
var industries = []industryRule{
	{"Salon", []string{"salon", "beauty", "hair", "nail", "spa", "barber"}},
	{"Restaurant", []string{"restaurant", "cafe", "diner", "bistro", "eatery", "pizza"}},
	{"Retail", []string{"shop", "store", "boutique", "market", "retail"}},
	{"Fitness", []string{"fitness", "gym", "yoga", "pilates", "crossfit"}},
	{"Professional", []string{"law", "legal", "accounting", "consulting", "firm"}},
	{"Creative", []string{"design", "creative", "agency", "studio", "art"}},
	{"Technology", []string{"tech", "software", "app", "digital", "startup"}},
	{"Healthcare", []string{"medical", "dental", "health", "clinic", "pharmacy"}},
	{"Education", []string{"school", "education", "tutor", "learn", "academy"}},
}

// DetectIndustry classifies a URL by keyword substrings. It returns "" when
// no rule matches.
func DetectIndustry(rawURL string) string {
	lower := strings.ToLower(rawURL)
	for _, rule := range industries {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.label
			}
		}
	}
	return ""
}

// Package detector holds the cheap URL and text heuristics used alongside
// the markup extractors: industry from URL keywords, postal address from
// the page footer, and recognition of social networks that cannot be scraped.
package detector

import (
	"net/url"
	"strings"
)

// SocialPlatform describes a social network whose pages expose no useful
// public markup.
type SocialPlatform struct {
	Name           string
	OAuthAvailable bool
}

// socialHosts maps registrable domains to their platform. Subdomains match too.
var socialHosts = map[string]SocialPlatform{
	"instagram.com": {Name: "instagram", OAuthAvailable: true},
	"instagr.am":    {Name: "instagram", OAuthAvailable: true},
}

// DetectSocialPlatform reports whether rawURL points at a known social network.
func DetectSocialPlatform(rawURL string) (SocialPlatform, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return SocialPlatform{}, false
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")

	for domain, platform := range socialHosts {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return platform, true
		}
	}
	return SocialPlatform{}, false
}

package match

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ppiankov/factcheck/internal/model"
	"golang.org/x/net/publicsuffix"
)

// URLOptions controls which URL differences are ignored
type URLOptions struct {
	ProtocolFlexible bool // http and https are equivalent
	WWWFlexible      bool // "www.example.com" and "example.com" are equivalent
}

// URLOptionsFrom reads the URL flags of a matching config
func URLOptionsFrom(cfg model.MatchingConfig) URLOptions {
	return URLOptions{
		ProtocolFlexible: cfg.URLProtocolFlexible,
		WWWFlexible:      cfg.URLWWWFlexible,
	}
}

var (
	defaultFiles    = []string{"/index.html", "/index.htm", "/index.php", "/default.html", "/default.htm"}
	languageSegment = regexp.MustCompile(`^/[a-z]{2}(?:/|$)`)
)

// URL compares the reference against every URL recovered from the answer and keeps the best.
func URL(ref, cand model.Value, opts URLOptions) model.Verdict {
	refRaw := ref.Raw
	if len(ref.Sources) > 0 {
		refRaw = ref.Sources[0]
	}

	var best model.Verdict
	found := false
	for i, item := range cand.Items {
		candRaw := item
		if i < len(cand.Sources) {
			candRaw = cand.Sources[i]
		}

		v := compareURL(refRaw, ref.Text, candRaw, item, opts)
		if !found || v.Score > best.Score {
			best, found = v, true
		}
	}

	if !found {
		return none(fmt.Sprintf("url: no URL in the answer to compare with %s", refRaw), "url:no-candidate")
	}
	return best
}

func compareURL(refRaw, refNorm, candRaw, candNorm string, opts URLOptions) model.Verdict {
	strict := strictDifferences(refRaw, candRaw, opts)

	if refNorm != "" && refNorm == candNorm {
		score := 100 - 5*len(strict)
		if score < 90 {
			score = 90
		}
		rationale := fmt.Sprintf("url: domain+path match (%s)", candRaw)
		if len(strict) > 0 {
			rationale += "; differs in " + strings.Join(strict, ", ")
		}
		return model.Verdict{
			Status:     model.StatusExact,
			Score:      score,
			Confidence: score,
			Rationale:  rationale,
			Rule:       "url:exact",
		}
	}

	ru, err := parseLoose(refRaw)
	if err != nil {
		return none(fmt.Sprintf("url: reference %q is not a URL", refRaw), "url:unparseable")
	}
	cu, err := parseLoose(candRaw)
	if err != nil {
		return none(fmt.Sprintf("url: %q is not a URL", candRaw), "url:unparseable")
	}

	refHost, candHost := bareHost(ru), bareHost(cu)
	differences := append([]string(nil), strict...)

	if refHost != candHost {
		if registrable(refHost) != registrable(candHost) {
			return none(fmt.Sprintf("url: different domain (%s vs %s)", candHost, refHost), "url:different-domain")
		}
		differences = append(differences, "subdomain")
	}

	if ru.RawQuery != cu.RawQuery {
		differences = append(differences, "query")
	}

	if normalizePath(ru.Path) == normalizePath(cu.Path) {
		score := 95 - 10*len(differences)
		if score < 75 {
			score = 75
		}
		rationale := fmt.Sprintf("url: same domain, equivalent path (%s)", candRaw)
		if len(differences) > 0 {
			rationale += "; differs in " + strings.Join(differences, ", ")
		}
		return partial(score, score, rationale, "url:equivalent-path")
	}

	return partial(70, 70, fmt.Sprintf("url: same domain, different path (%s vs %s)", cu.Path, ru.Path), "url:same-domain")
}

// strictDifferences lists protocol and www differences the options do not ignore
func strictDifferences(refRaw, candRaw string, opts URLOptions) []string {
	var diffs []string

	if !opts.ProtocolFlexible {
		rs, cs := scheme(refRaw), scheme(candRaw)
		if rs != "" && cs != "" && rs != cs {
			diffs = append(diffs, "protocol")
		}
	}

	if !opts.WWWFlexible && hasWWW(refRaw) != hasWWW(candRaw) {
		diffs = append(diffs, "www")
	}

	return diffs
}

// parseLoose parses raw as a URL, assuming https when the scheme is missing
func parseLoose(raw string) (*url.URL, error) {
	s := strings.TrimSpace(raw)
	if scheme(s) == "" {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("no host in %q", raw)
	}
	return u, nil
}

func scheme(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(lower, "https://"):
		return "https"
	case strings.HasPrefix(lower, "http://"):
		return "http"
	}
	return ""
}

func hasWWW(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	lower = strings.TrimPrefix(strings.TrimPrefix(lower, "https://"), "http://")
	return strings.HasPrefix(lower, "www.")
}

func bareHost(u *url.URL) string {
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// registrable returns the eTLD+1 of host, or host itself when it has none
func registrable(host string) string {
	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return d
	}
	return host
}

// normalizePath removes differences that do not change the page:
// trailing slashes, default index files and a leading language segment.
func normalizePath(p string) string {
	p = strings.TrimRight(strings.ToLower(p), "/")
	for _, f := range defaultFiles {
		if strings.HasSuffix(p, f) {
			p = strings.TrimSuffix(p, f)
			break
		}
	}
	p = strings.TrimRight(p, "/")

	if languageSegment.MatchString(p) {
		p = p[3:]
	}
	return strings.TrimRight(p, "/")
}

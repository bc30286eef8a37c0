package gnews

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gnews-io/gnews-io-mcp-server/internal/credential"
	"github.com/gnews-io/gnews-io-mcp-server/internal/model"
)

// Categories accepted by the top-headlines endpoint.
var Categories = []string{
	"general", "world", "nation", "business", "technology",
	"entertainment", "sports", "science", "health",
}

// SortOrders accepted by the search endpoint.
var SortOrders = []string{"publishedAt", "relevance"}

// searchFields are the article attributes the "in" parameter may target.
var searchFields = []string{"title", "description", "content"}

var twoLetterCode = regexp.MustCompile(`^[a-zA-Z]{2}$`)

var dateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// searchParams and headlinesParams are the recognized argument sets per
// tool. The credential argument is listed so the resolver's fallback
// channel is never rejected as unknown; it is consumed before mapping and
// never forwarded upstream.
var (
	searchParams = []string{
		"q", "lang", "country", "max", "in", "sortby", "from", "to", "page",
		credential.ArgName,
	}
	headlinesParams = []string{
		"category", "lang", "country", "max", "q", "from", "to", "page",
		credential.ArgName,
	}
)

// MapSearchArgs validates a search tool call's arguments and maps them onto
// the /search query parameters. q is required and must be non-empty after
// trimming; everything else is optional. Unknown argument names are
// rejected rather than dropped.
func MapSearchArgs(args map[string]any) (url.Values, error) {
	if err := rejectUnknown(args, searchParams); err != nil {
		return nil, err
	}

	v := url.Values{}

	q, ok, err := stringArg(args, "q")
	if err != nil {
		return nil, err
	}
	q = strings.TrimSpace(q)
	if !ok || q == "" {
		return nil, model.InvalidArgument("q", "required and must be a non-empty string")
	}
	v.Set("q", q)

	if err := mapCommon(args, v); err != nil {
		return nil, err
	}

	if in, ok, err := stringArg(args, "in"); err != nil {
		return nil, err
	} else if ok {
		normalized, err := normalizeSearchIn(in)
		if err != nil {
			return nil, err
		}
		v.Set("in", normalized)
	}

	if sortby, ok, err := stringArg(args, "sortby"); err != nil {
		return nil, err
	} else if ok {
		if !contains(SortOrders, sortby) {
			return nil, model.InvalidArgument("sortby", "must be one of: "+strings.Join(SortOrders, ", "))
		}
		v.Set("sortby", sortby)
	}

	return v, nil
}

// MapTopHeadlinesArgs validates a top_headlines tool call's arguments and
// maps them onto the /top-headlines query parameters. Every argument is
// optional; an empty call maps to an empty parameter set and the upstream
// serves its default feed.
func MapTopHeadlinesArgs(args map[string]any) (url.Values, error) {
	if err := rejectUnknown(args, headlinesParams); err != nil {
		return nil, err
	}

	v := url.Values{}

	if category, ok, err := stringArg(args, "category"); err != nil {
		return nil, err
	} else if ok {
		if !contains(Categories, category) {
			return nil, model.InvalidArgument("category", "must be one of: "+strings.Join(Categories, ", "))
		}
		v.Set("category", category)
	}

	if q, ok, err := stringArg(args, "q"); err != nil {
		return nil, err
	} else if ok {
		if q = strings.TrimSpace(q); q != "" {
			v.Set("q", q)
		}
	}

	if err := mapCommon(args, v); err != nil {
		return nil, err
	}

	return v, nil
}

// mapCommon handles the parameters shared by both tools: lang, country,
// max, page, from, to.
func mapCommon(args map[string]any, v url.Values) error {
	if lang, ok, err := stringArg(args, "lang"); err != nil {
		return err
	} else if ok {
		if !twoLetterCode.MatchString(lang) {
			return model.InvalidArgument("lang", "must be a 2-letter ISO 639-1 code, e.g. \"fr\"")
		}
		v.Set("lang", strings.ToLower(lang))
	}

	if country, ok, err := stringArg(args, "country"); err != nil {
		return err
	} else if ok {
		if !twoLetterCode.MatchString(country) {
			return model.InvalidArgument("country", "must be a 2-letter ISO 3166-1 code, e.g. \"us\"")
		}
		v.Set("country", strings.ToLower(country))
	}

	if max, ok, err := intArg(args, "max"); err != nil {
		return err
	} else if ok {
		if max < 1 || max > 100 {
			return model.InvalidArgument("max", "must be between 1 and 100")
		}
		v.Set("max", strconv.Itoa(max))
	}

	if page, ok, err := intArg(args, "page"); err != nil {
		return err
	} else if ok {
		if page < 1 {
			return model.InvalidArgument("page", "must be >= 1")
		}
		v.Set("page", strconv.Itoa(page))
	}

	for _, name := range []string{"from", "to"} {
		d, ok, err := stringArg(args, name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		normalized, err := normalizeDate(name, d)
		if err != nil {
			return err
		}
		v.Set(name, normalized)
	}

	return nil
}

// rejectUnknown fails on any argument name outside the tool's recognized
// set, so client mistakes surface instead of being silently dropped.
func rejectUnknown(args map[string]any, recognized []string) error {
	for k := range args {
		if !contains(recognized, k) {
			return model.UnknownArgument(k)
		}
	}
	return nil
}

// stringArg fetches an optional string argument. ok reports presence; a
// present non-string value is invalid.
func stringArg(args map[string]any, name string) (string, bool, error) {
	raw, present := args[name]
	if !present {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, model.InvalidArgument(name, "must be a string")
	}
	return s, true, nil
}

// intArg fetches an optional integer argument. JSON numbers decode as
// float64, so integral floats are accepted; fractional values and every
// other type are invalid.
func intArg(args map[string]any, name string) (int, bool, error) {
	raw, present := args[name]
	if !present {
		return 0, false, nil
	}
	switch n := raw.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false, model.InvalidArgument(name, "must be an integer")
		}
		return int(n), true, nil
	case int:
		return n, true, nil
	default:
		return 0, false, model.InvalidArgument(name, "must be an integer")
	}
}

// normalizeDate accepts YYYY-MM-DD (expanded to midnight UTC, the format
// the upstream expects) or a full RFC 3339 timestamp passed through as-is.
func normalizeDate(name, value string) (string, error) {
	v := strings.TrimSpace(value)
	if dateOnly.MatchString(v) {
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return "", model.InvalidArgument(name, "not a valid calendar date")
		}
		return v + "T00:00:00Z", nil
	}
	if _, err := time.Parse(time.RFC3339, v); err != nil {
		return "", model.InvalidArgument(name, "must be YYYY-MM-DD or ISO 8601, e.g. \"2024-11-01T08:30:00Z\"")
	}
	return v, nil
}

// normalizeSearchIn validates the comma-separated list of article fields
// the search should match against.
func normalizeSearchIn(value string) (string, error) {
	parts := strings.Split(value, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		f := strings.TrimSpace(p)
		if f == "" {
			continue
		}
		if !contains(searchFields, f) {
			return "", model.InvalidArgument("in", fmt.Sprintf("unknown field %q, expected a comma-separated subset of: %s", f, strings.Join(searchFields, ", ")))
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return "", model.InvalidArgument("in", "must name at least one field")
	}
	return strings.Join(fields, ","), nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

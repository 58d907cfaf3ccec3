package grammar

import (
	"sort"
	"strconv"
	"strings"
)

// WeightedItem is one element of a comma-separated, optionally
// "q="-weighted list, as used by Accept, Accept-Language, Accept-Charset,
// Accept-Encoding and TE.
type WeightedItem struct {
	Value  string
	Params ParamList // Parameters other than "q".
	Q      float64   // Defaults to 1.0 when absent.
}

// ParseWeightedList parses a "#(item [OWS ';' OWS params])" list, splitting
// out the "q" parameter (if any) and preserving order among equal weights,
// the order insertion rule required by spec.md §8 invariant 4's analogue
// for Accept-style negotiation headers.
func ParseWeightedList(s string) []WeightedItem {
	var items []WeightedItem
	for _, part := range SplitList(s) {
		part = TrimOWS(part)
		if part == "" {
			continue
		}

		value, rest := part, ""
		if i := strings.IndexByte(part, ';'); i >= 0 {
			value, rest = TrimOWS(part[:i]), part[i:]
		}

		params, _ := ParseParams(rest)
		item := WeightedItem{Value: value, Q: 1.0}
		var kept ParamList
		for _, p := range params {
			if strings.EqualFold(p.Name, "q") {
				if q, err := strconv.ParseFloat(p.Value, 64); err == nil {
					item.Q = q
				}
				continue
			}
			kept = append(kept, p)
		}
		item.Params = kept
		items = append(items, item)
	}
	return items
}

// SortByWeight stably sorts items by descending Q, preserving relative
// order among equal weights (a stable sort is required for deterministic
// content negotiation).
func SortByWeight(items []WeightedItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Q > items[j].Q })
}

// FormatWeightedList formats items back into a comma-separated list,
// omitting "q=1" (the implicit default) to satisfy the round-trip
// invariant modulo whitespace normalization.
func FormatWeightedList(items []WeightedItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		s := it.Value + FormatParams(it.Params)
		if it.Q != 1.0 {
			s += "; q=" + strconv.FormatFloat(it.Q, 'g', -1, 64)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// SplitList splits a comma-separated list ("#rule" in RFC 7230 ABNF),
// skipping empty elements produced by consecutive or leading/trailing
// commas, and respecting double-quoted segments so a comma inside a
// quoted-string parameter value isn't treated as a separator.
func SplitList(s string) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	escaped := false

	flush := func() {
		item := TrimOWS(cur.String())
		if item != "" {
			out = append(out, item)
		}
		cur.Reset()
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			cur.WriteByte(c)
			escaped = false
		case inQuotes && c == '\\':
			cur.WriteByte(c)
			escaped = true
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ',' && !inQuotes:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return out
}

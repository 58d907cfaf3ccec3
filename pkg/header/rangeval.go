package header

import (
	"fmt"
	"strconv"
	"strings"
)

// ByteRange is a single "first-last" or open-ended byte-range-spec, as
// found in a Range request header.
type ByteRange struct {
	// Suffix is true for a "suffix-length" spec ("-500": last 500 bytes),
	// in which case Last holds the suffix length and First is unused.
	Suffix bool
	First  int64
	Last   int64 // -1 when open-ended ("500-").
}

// ParseRange parses a "bytes=spec1,spec2,..." Range header value.
func ParseRange(s string) ([]ByteRange, bool) {
	const prefix = "bytes="
	if !strings.HasPrefix(s, prefix) {
		return nil, false
	}
	s = s[len(prefix):]

	var out []ByteRange
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		dash := strings.IndexByte(part, '-')
		if dash < 0 {
			return nil, false
		}

		firstStr, lastStr := part[:dash], part[dash+1:]
		if firstStr == "" {
			n, err := strconv.ParseInt(lastStr, 10, 64)
			if err != nil || n < 0 {
				return nil, false
			}
			out = append(out, ByteRange{Suffix: true, Last: n})
			continue
		}

		first, err := strconv.ParseInt(firstStr, 10, 64)
		if err != nil || first < 0 {
			return nil, false
		}
		last := int64(-1)
		if lastStr != "" {
			last, err = strconv.ParseInt(lastStr, 10, 64)
			if err != nil || last < first {
				return nil, false
			}
		}
		out = append(out, ByteRange{First: first, Last: last})
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// FormatRange formats a Range header value.
func FormatRange(ranges []ByteRange) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		switch {
		case r.Suffix:
			parts[i] = fmt.Sprintf("-%d", r.Last)
		case r.Last < 0:
			parts[i] = fmt.Sprintf("%d-", r.First)
		default:
			parts[i] = fmt.Sprintf("%d-%d", r.First, r.Last)
		}
	}
	return "bytes=" + strings.Join(parts, ",")
}

// ContentRange is a structured Content-Range response value.
type ContentRange struct {
	Unit       string
	Unsatisfied bool  // "bytes */complete_length": no First/Last.
	First      int64
	Last       int64
	// CompleteLength is -1 when unknown ("*").
	CompleteLength int64
}

// ParseContentRange parses a "unit first-last/complete" or
// "unit */complete" Content-Range value.
func ParseContentRange(s string) (ContentRange, bool) {
	sp := strings.IndexByte(s, ' ')
	if sp < 0 {
		return ContentRange{}, false
	}
	cr := ContentRange{Unit: s[:sp]}
	rest := s[sp+1:]

	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return ContentRange{}, false
	}
	rangePart, lengthPart := rest[:slash], rest[slash+1:]

	if lengthPart == "*" {
		cr.CompleteLength = -1
	} else {
		n, err := strconv.ParseInt(lengthPart, 10, 64)
		if err != nil {
			return ContentRange{}, false
		}
		cr.CompleteLength = n
	}

	if rangePart == "*" {
		cr.Unsatisfied = true
		return cr, true
	}

	dash := strings.IndexByte(rangePart, '-')
	if dash < 0 {
		return ContentRange{}, false
	}
	first, err1 := strconv.ParseInt(rangePart[:dash], 10, 64)
	last, err2 := strconv.ParseInt(rangePart[dash+1:], 10, 64)
	if err1 != nil || err2 != nil {
		return ContentRange{}, false
	}
	cr.First, cr.Last = first, last
	return cr, true
}

// Format formats a Content-Range value.
func (cr ContentRange) Format() string {
	length := "*"
	if cr.CompleteLength >= 0 {
		length = strconv.FormatInt(cr.CompleteLength, 10)
	}
	if cr.Unsatisfied {
		return fmt.Sprintf("%s */%s", cr.Unit, length)
	}
	return fmt.Sprintf("%s %d-%d/%s", cr.Unit, cr.First, cr.Last, length)
}

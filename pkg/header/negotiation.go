package header

import "github.com/wovenwire/wovenwire/pkg/grammar"

// LanguageRange, CharsetRange and CodingRange are thin, named aliases over
// [grammar.WeightedItem] for Accept-Language, Accept-Charset and
// Accept-Encoding/TE respectively — they share the same "#(token;q=...)"
// grammar. Being aliases, all three are the same type: the names label
// intent in [pkg/httpheader]'s signatures, and the compiler does not tell
// them apart.
type (
	LanguageRange = grammar.WeightedItem
	CharsetRange  = grammar.WeightedItem
	CodingRange   = grammar.WeightedItem
)

// ParseLanguageRanges parses an Accept-Language value.
func ParseLanguageRanges(s string) []LanguageRange { return grammar.ParseWeightedList(s) }

// ParseCharsetRanges parses an Accept-Charset value.
func ParseCharsetRanges(s string) []CharsetRange { return grammar.ParseWeightedList(s) }

// ParseCodingRanges parses an Accept-Encoding or TE value.
func ParseCodingRanges(s string) []CodingRange { return grammar.ParseWeightedList(s) }

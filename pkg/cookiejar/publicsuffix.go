package cookiejar

import "golang.org/x/net/publicsuffix"

// PublicSuffixList is the external collaborator spec.md §6 requires for
// rejecting Set-Cookie attempts on registry domains (e.g. "co.uk").
type PublicSuffixList interface {
	IsPublicSuffix(domain string) bool
}

// ICANNPublicSuffixList is a [PublicSuffixList] backed by
// golang.org/x/net/publicsuffix's compiled ICANN suffix table — the
// ecosystem-standard source for this list in Go, rather than a hand-rolled
// or vendored copy of the Public Suffix List.
type ICANNPublicSuffixList struct{}

// IsPublicSuffix reports whether domain is itself a public suffix (not
// merely under one): a domain equal to its own eTLD.
func (ICANNPublicSuffixList) IsPublicSuffix(domain string) bool {
	suffix, _ := publicsuffix.PublicSuffix(domain)
	return suffix == domain
}

package cookiejar

import (
	"fmt"
	"net"
	"sort"
	"strings"
	"sync"

	"github.com/wovenwire/wovenwire/internal/clock"
	"github.com/wovenwire/wovenwire/pkg/message"
)

// cookieKey identifies a stored cookie per spec.md §4.3 step 6: name,
// domain and path together, so a later Set-Cookie for the same triple
// overwrites in place instead of accumulating duplicates.
type cookieKey struct {
	name, domain, path string
}

// Jar is a thread-safe, RFC 6265-governed cookie store. The zero value is
// not usable; construct with [NewJar].
type Jar struct {
	mu      sync.Mutex
	cookies map[cookieKey]PersistentCookie
	clock   clock.Clock
	psl     PublicSuffixList
}

// NewJar constructs an empty [Jar]. c and psl are required collaborators;
// pass [clock.Real]{} and [ICANNPublicSuffixList]{} in production.
func NewJar(c clock.Clock, psl PublicSuffixList) *Jar {
	return &Jar{
		cookies: make(map[cookieKey]PersistentCookie),
		clock:   c,
		psl:     psl,
	}
}

// Put reconciles a single Set-Cookie value against target, per spec.md
// §4.3's insertion algorithm. target must be an absolute http(s)/ws(s) URI.
func (j *Jar) Put(target message.Uri, sc SetCookie) error {
	if target.Scheme == "" || target.Host == "" {
		return fmt.Errorf("cookiejar: target %q is not an absolute URI", target.String())
	}

	domain, hostOnly := deriveDomain(target.Host, sc.Domain)
	if !hostMatchesDomain(target.Host, domain) {
		return fmt.Errorf("cookiejar: domain %q does not match request host %q", domain, target.Host)
	}
	if domain != strings.ToLower(target.Host) && j.psl.IsPublicSuffix(domain) {
		return fmt.Errorf("cookiejar: domain %q is a public suffix", domain)
	}

	path := sc.Path
	if !strings.HasPrefix(path, "/") {
		path = derivePath(target.Path)
	}

	now := j.clock.Now()
	expiry, persistent := sc.expiry(now)

	key := cookieKey{name: sc.Name, domain: domain, path: path}

	j.mu.Lock()
	defer j.mu.Unlock()

	creation := now
	if existing, ok := j.cookies[key]; ok {
		creation = existing.Creation
	}

	j.cookies[key] = PersistentCookie{
		Name:       sc.Name,
		Value:      sc.Value,
		Domain:     domain,
		Path:       path,
		SecureOnly: sc.Secure,
		HTTPOnly:   sc.HTTPOnly,
		HostOnly:   hostOnly,
		Persistent: persistent,
		Creation:   creation,
		LastAccess: now,
		Expiry:     expiry,
	}
	return nil
}

// Get returns every cookie in the jar applicable to target, ordered by
// descending path length then ascending creation time per spec.md §4.3.
// Each returned cookie's LastAccess is updated to now.
func (j *Jar) Get(target message.Uri) []PlainCookie {
	now := j.clock.Now()
	host := strings.ToLower(target.Host)
	isIP := target.IsIPLiteral()
	secureContext := target.Scheme == "https" || target.Scheme == "wss"
	path := target.Path
	if path == "" {
		path = "/"
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	var matched []PersistentCookie
	for key, c := range j.cookies {
		if !now.Before(c.Expiry) {
			continue
		}
		if !domainMatches(c, host, isIP) {
			continue
		}
		if !pathMatches(c.Path, path) {
			continue
		}
		if c.SecureOnly && !secureContext {
			continue
		}
		c.LastAccess = now
		j.cookies[key] = c
		matched = append(matched, c)
	}

	sort.SliceStable(matched, func(i, k int) bool {
		if len(matched[i].Path) != len(matched[k].Path) {
			return len(matched[i].Path) > len(matched[k].Path)
		}
		return matched[i].Creation.Before(matched[k].Creation)
	})

	out := make([]PlainCookie, len(matched))
	for i, c := range matched {
		out[i] = PlainCookie{Name: c.Name, Value: c.Value}
	}
	return out
}

// Clear removes cookies from the jar. With expiredOnly, only entries whose
// expiry has passed are dropped; otherwise the jar is emptied entirely.
func (j *Jar) Clear(expiredOnly bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !expiredOnly {
		j.cookies = make(map[cookieKey]PersistentCookie)
		return
	}
	now := j.clock.Now()
	for key, c := range j.cookies {
		if !now.Before(c.Expiry) {
			delete(j.cookies, key)
		}
	}
}

// Len reports how many cookies the jar currently holds, expired or not.
func (j *Jar) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.cookies)
}

func deriveDomain(requestHost, attrDomain string) (domain string, hostOnly bool) {
	if attrDomain == "" {
		return strings.ToLower(requestHost), true
	}
	return strings.ToLower(strings.TrimPrefix(attrDomain, ".")), false
}

func derivePath(targetPath string) string {
	if targetPath == "" || !strings.HasPrefix(targetPath, "/") {
		return "/"
	}
	if i := strings.LastIndexByte(targetPath, '/'); i > 0 {
		return targetPath[:i]
	}
	return "/"
}

// hostMatchesDomain reports whether requestHost may set a cookie for
// domain: either they're equal, or domain is a proper suffix of
// requestHost and requestHost isn't an IP literal.
func hostMatchesDomain(requestHost, domain string) bool {
	host := strings.ToLower(requestHost)
	if host == domain {
		return true
	}
	if net.ParseIP(host) != nil {
		return false
	}
	return strings.HasSuffix(host, "."+domain)
}

// domainMatches implements spec.md §4.3's retrieval domain-match rule.
func domainMatches(c PersistentCookie, requestHost string, requestIsIP bool) bool {
	if c.HostOnly {
		return requestHost == c.Domain
	}
	if requestHost == c.Domain {
		return true
	}
	return !requestIsIP && strings.HasSuffix(requestHost, "."+c.Domain)
}

// pathMatches implements spec.md §4.3's retrieval path-match rule
// (RFC 6265 §5.1.4).
func pathMatches(cookiePath, requestPath string) bool {
	if cookiePath == requestPath {
		return true
	}
	if strings.HasSuffix(cookiePath, "/") && strings.HasPrefix(requestPath, cookiePath) {
		return true
	}
	return strings.HasPrefix(requestPath, cookiePath+"/")
}

package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_ytearn/internal/engine"
	"golang.org/x/net/publicsuffix"
)

// Kind says which YouTube identifier form a reference was recognised as.
type Kind string

const (
	KindChannelID Kind = "channel_id"
	KindHandle    Kind = "handle"
	KindUsername  Kind = "username"
	KindCustom    Kind = "custom" // /c/<name> vanity URL
	KindVideoID   Kind = "video_id"
)

// Identifier is a reference classified by format but not yet checked upstream.
type Identifier struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

var canonicalIDRE = regexp.MustCompile(`^UC[0-9A-Za-z_-]{22}$`)

// IsCanonicalID reports whether s has the shape of a canonical channel ID (UC + 22 chars).
func IsCanonicalID(s string) bool {
	return canonicalIDRE.MatchString(s)
}

// rule matches one known reference shape. domain == "" means the rule runs against the
// raw input; otherwise it runs against path+query of a URL whose registrable domain is domain.
type rule struct {
	kind   Kind
	domain string
	re     *regexp.Regexp
	name   bool // captured segment is a handle or name: unescape and check against nameRE
}

// nameRE is the character set of handles, custom names and legacy usernames.
// Handles may use letters and digits of any script.
var nameRE = regexp.MustCompile(`^[\p{L}\p{N}\p{M}_.·-]+$`)

// rules are evaluated in order, first match wins. Channel-ID forms come before the
// generic @/user tokens. New formats go here.
var rules = []rule{
	{KindChannelID, "", canonicalIDRE, false},
	{KindChannelID, "youtube.com", regexp.MustCompile(`^/channel/([0-9A-Za-z_-]+)`), false},
	{KindHandle, "youtube.com", regexp.MustCompile(`^/@([^/?#]+)`), true},
	{KindCustom, "youtube.com", regexp.MustCompile(`^/c/([^/?#]+)`), true},
	{KindUsername, "youtube.com", regexp.MustCompile(`^/user/([^/?#]+)`), true},
	{KindVideoID, "youtu.be", regexp.MustCompile(`^/([0-9A-Za-z_-]{11})(?:$|[/?])`), false},
	{KindVideoID, "youtube.com", regexp.MustCompile(`^/watch\?(?:.*&)?v=([0-9A-Za-z_-]{11})`), false},
	{KindVideoID, "youtube.com", regexp.MustCompile(`^/(?:shorts|live)/([0-9A-Za-z_-]{11})`), false},
	{KindChannelID, "", regexp.MustCompile(`^/?channel/([0-9A-Za-z_-]+)/?$`), false},
	{KindHandle, "", regexp.MustCompile(`^@([^/?#\s]+)/?$`), true},
	{KindUsername, "", regexp.MustCompile(`^/?user/([^/?#\s]+)/?$`), true},
}

// Resolve classifies a raw channel reference. It never touches the network.
// Fails with empty_input or unrecognized_format.
func Resolve(raw string) (Identifier, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Identifier{}, engine.Fail(engine.KindEmptyInput, "resolve", nil)
	}

	domain, target := splitURL(s)
	for _, r := range rules {
		subject := s
		if r.domain != "" {
			if r.domain != domain {
				continue
			}
			subject = target
		}
		if m := r.re.FindStringSubmatch(subject); m != nil {
			v := m[0]
			if len(m) > 1 {
				v = m[1]
			}
			if r.name {
				name, err := url.PathUnescape(v)
				if err != nil || !nameRE.MatchString(name) {
					return Identifier{}, engine.Fail(engine.KindUnrecognizedFormat, "resolve", fmt.Errorf("invalid %s %q", r.kind, v))
				}
				v = name
			}
			return Identifier{Kind: r.kind, Value: v}, nil
		}
	}
	return Identifier{}, engine.Fail(engine.KindUnrecognizedFormat, "resolve", nil)
}

// splitURL returns the registrable domain of s (lowercase) and its path plus query.
// domain is "" when s does not look like a URL.
func splitURL(s string) (domain, target string) {
	if strings.HasPrefix(s, "@") || (!strings.Contains(s, "/") && !strings.Contains(s, ".")) {
		return "", ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Hostname() == "" {
		return "", ""
	}
	d, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(u.Hostname()))
	if err != nil {
		return "", ""
	}
	target = u.EscapedPath()
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return d, target
}

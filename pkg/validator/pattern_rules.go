package validator

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// Flag modifies how a RegexValidator pattern is compiled.
type Flag int

const (
	// IgnoreCase makes the pattern case-insensitive.
	IgnoreCase Flag = 1 << iota
	// Multiline lets ^ and $ match at line boundaries.
	Multiline
	// DotAll lets . match newlines.
	DotAll
)

func (f Flag) inline() string {
	var b strings.Builder
	if f&IgnoreCase != 0 {
		b.WriteByte('i')
	}
	if f&Multiline != 0 {
		b.WriteByte('m')
	}
	if f&DotAll != 0 {
		b.WriteByte('s')
	}
	if b.Len() == 0 {
		return ""
	}
	return "(?" + b.String() + ")"
}

// RegexValidator accepts strings in which the pattern matches anywhere.
type RegexValidator struct {
	pattern string
	flags   Flag
	re      *regexp.Regexp
}

// Regex compiles pattern with flags. The pattern is searched, not anchored:
// use ^ and $ to require a full match.
func Regex(pattern string, flags Flag) (*RegexValidator, error) {
	re, err := regexp.Compile(flags.inline() + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern %q: %w", ErrMalformedConfiguration, pattern, err)
	}
	return &RegexValidator{pattern: pattern, flags: flags, re: re}, nil
}

// MustRegex is like Regex but panics on an invalid pattern.
func MustRegex(pattern string, flags Flag) *RegexValidator {
	v, err := Regex(pattern, flags)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *RegexValidator) Pattern() string { return v.pattern }
func (v *RegexValidator) Flags() Flag     { return v.flags }

func (v *RegexValidator) Validate(value any) error {
	if err := String().Validate(value); err != nil {
		return err
	}
	s := value.(string)
	if v.re.MatchString(s) {
		return nil
	}
	return newError("validation.regex",
		fmt.Sprintf("Value must match regex %s and flags %d; received value <%s>", v.pattern, v.flags, s),
		map[string]any{
			"pattern": v.pattern,
			"flags":   int(v.flags),
			"value":   s,
		},
	)
}

var urlPattern = MustRegex(`^(?:http|ftp)s?://`+
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+(?:[A-Z]{2,6}\.?|[A-Z0-9-]{2,}\.?)|`+
	`localhost|`+
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}|`+
	`\[?[A-F0-9]*:[A-F0-9:]+\]?)`+
	`(?::\d+)?`+
	`(?:/?|[/?]\S+)$`, IgnoreCase)

// URLValidator accepts http, https, ftp and ftps URLs pointing at a domain
// name, localhost, an IPv4 literal or a bracketed IPv6 literal. Hosts with
// internationalized labels are accepted when their IDNA form is.
type URLValidator struct{}

// URL returns a validator for absolute URLs.
func URL() URLValidator {
	return URLValidator{}
}

func (URLValidator) Validate(value any) error {
	first := urlPattern.Validate(value)
	if first == nil {
		return nil
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return urlError(value)
	}

	ascii, ok := idnaURL(s)
	if !ok {
		return urlError(value)
	}
	if err := urlPattern.Validate(ascii); err != nil {
		return urlError(value)
	}
	return nil
}

// idnaURL re-encodes the host of raw to its ASCII-compatible form. It reports
// false when raw cannot be parsed or the host is not a valid domain.
func idnaURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}

	hostname, port := u.Host, ""
	if h, p, err := net.SplitHostPort(u.Host); err == nil {
		hostname, port = h, p
	}
	ascii, err := idna.Lookup.ToASCII(hostname)
	if err != nil {
		return "", false
	}
	if port != "" {
		ascii = net.JoinHostPort(ascii, port)
	}
	return strings.Replace(raw, u.Host, ascii, 1), true
}

func urlError(value any) error {
	return newError("validation.url",
		fmt.Sprintf("Enter a valid URL; received value <%v>", value),
		map[string]any{"value": value},
	)
}

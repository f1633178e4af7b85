package util

import (
	"fmt"
	"html/template"
	"net"
	"strings"
	"time"
)

// ParseTemplate builds one named template from its parts, parsed in order
func ParseTemplate(name string, funcs template.FuncMap, parts ...string) (*template.Template, error) {
	t := template.New(name).Funcs(funcs)
	for i, part := range parts {
		if _, err := t.Parse(part); err != nil {
			return nil, fmt.Errorf("template %s part %d: %w", name, i, err)
		}
	}
	return t, nil
}

// HostScope says where a host lives as far as outbound requests are concerned
type HostScope int

const (
	HostPublic HostScope = iota
	HostLoopback
	HostPrivate
)

var privateSuffixes = []string{".local", ".internal", ".onion", ".localhost", ".lan", ".home.arpa"}

// ClassifyHost checks a hostname or IP literal without resolving it
func ClassifyHost(host string) HostScope {
	host = strings.Trim(strings.ToLower(host), "[]")
	if host == "localhost" {
		return HostLoopback
	}
	if ip := net.ParseIP(host); ip != nil {
		switch {
		case ip.IsLoopback():
			return HostLoopback
		case ip.IsPrivate(), ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast(), ip.IsUnspecified():
			return HostPrivate
		}
		return HostPublic
	}
	for _, suffix := range privateSuffixes {
		if strings.HasSuffix(host, suffix) {
			return HostPrivate
		}
	}
	return HostPublic
}

// IsPublicHost is ClassifyHost(host) == HostPublic
func IsPublicHost(host string) bool {
	return ClassifyHost(host) == HostPublic
}

// FilterSlice returns the items that satisfy keep, leaving items untouched
func FilterSlice[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// TruncateStringRunes shortens s to at most maxLen runes, ending in "..."
func TruncateStringRunes(s string, maxLen int) string {
	if maxLen <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// TimeAgo formats a unix timestamp relative to now ("now", "5m", "3h", "2d", or a date).
func TimeAgo(unix int64, now time.Time) string {
	d := now.Sub(time.Unix(unix, 0))
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return time.Unix(unix, 0).UTC().Format("Jan 2, 2006")
	}
}

package nostr

import (
	"net/url"
	"strings"

	"olas-server/internal/util"
)

// NormalizeRelayURL validates and normalizes a configured relay URL.
// Returns "" if the URL is not a usable ws:// or wss:// relay.
func NormalizeRelayURL(relayURL string) string {
	relayURL = strings.TrimSpace(relayURL)
	if relayURL == "" || !strings.Contains(relayURL, "://") || strings.Count(relayURL, "://") > 1 {
		return ""
	}
	if strings.ContainsAny(relayURL, " +") || strings.Contains(relayURL, "%20") {
		return ""
	}

	parsed, err := url.Parse(relayURL)
	if err != nil {
		return ""
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "ws" && scheme != "wss" {
		return ""
	}

	host := strings.ToLower(parsed.Hostname())
	scope := util.ClassifyHost(host)
	if len(host) < 3 || scope == util.HostPrivate {
		return ""
	}
	// Single-label hosts are only useful for a relay on this machine
	if !strings.Contains(host, ".") && scope != util.HostLoopback {
		return ""
	}

	result := scheme + "://" + host
	if parsed.Port() != "" {
		result += ":" + parsed.Port()
	}
	if parsed.Path != "" && parsed.Path != "/" {
		result += strings.TrimSuffix(parsed.Path, "/")
	}
	return result
}

// NormalizeRelayURLs normalizes a list, dropping invalid entries and duplicates
func NormalizeRelayURLs(relays []string) []string {
	seen := make(map[string]bool, len(relays))
	out := make([]string, 0, len(relays))
	for _, r := range relays {
		n := NormalizeRelayURL(r)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

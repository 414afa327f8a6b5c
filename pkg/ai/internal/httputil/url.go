// ABOUTME: Base URL cleanup for configured provider endpoints
// ABOUTME: Providers append "/v1/..." themselves, so a pasted version or endpoint path is dropped

package httputil

import (
	"net/url"
	"strings"
)

// endpointSuffixes are paths users tend to paste along with the host. Only a
// top-level match is stripped; "/api/v1" on a proxy is left alone.
var endpointSuffixes = []string{
	"/v1/chat/completions",
	"/v1/messages",
	"/v1",
}

// NormalizeBaseURL returns baseURL without surrounding spaces, a trailing
// slash, or a top-level "/v1", "/v1/messages" or "/v1/chat/completions" path.
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return ""
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	for _, suffix := range endpointSuffixes {
		if u.Path == suffix {
			u.Path = ""
			return strings.TrimRight(u.String(), "/")
		}
	}
	return baseURL
}

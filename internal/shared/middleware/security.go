package middleware

import (
	"net"
	"net/http"
	"strings"
)

// HSTS instructs browsers to use HTTPS for a year, subdomains included.
func HSTS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// SecureCookies rewrites outgoing Set-Cookie headers so every cookie carries
// Secure, HttpOnly and a SameSite attribute, whatever the handler set.
func SecureCookies(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&secureCookieWriter{ResponseWriter: w}, r)
	})
}

type secureCookieWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *secureCookieWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *secureCookieWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	h := w.ResponseWriter.Header()
	if cookies := h["Set-Cookie"]; len(cookies) > 0 {
		h.Del("Set-Cookie")
		for _, c := range cookies {
			h.Add("Set-Cookie", hardenCookie(c))
		}
	}

	w.ResponseWriter.WriteHeader(statusCode)
}

// hardenCookie appends the Secure, HttpOnly and SameSite attributes a raw
// Set-Cookie value is missing. Existing attributes are left untouched.
func hardenCookie(cookie string) string {
	var hasSecure, hasHTTPOnly, hasSameSite bool

	attrs := strings.Split(cookie, ";")
	for i, attr := range attrs {
		attr = strings.TrimSpace(attr)
		attrs[i] = attr

		switch {
		case strings.EqualFold(attr, "Secure"):
			hasSecure = true
		case strings.EqualFold(attr, "HttpOnly"):
			hasHTTPOnly = true
		case len(attr) >= 8 && strings.EqualFold(attr[:8], "SameSite"):
			hasSameSite = true
		}
	}

	if !hasSecure {
		attrs = append(attrs, "Secure")
	}
	if !hasHTTPOnly {
		attrs = append(attrs, "HttpOnly")
	}
	if !hasSameSite {
		attrs = append(attrs, "SameSite=Strict")
	}

	return strings.Join(attrs, "; ")
}

// IsHostAllowed reports whether a Host header value is in the allow list.
// Matching ignores case and ports and understands bracketed IPv6 literals;
// an empty list allows everything. Used by the HTTP-to-HTTPS redirect server
// to prevent open-redirect poisoning.
func IsHostAllowed(host string, allowedHosts []string) bool {
	if len(allowedHosts) == 0 {
		return true
	}

	host = strings.ToLower(strings.TrimSpace(host))
	bareHost := stripPort(host)

	for _, allowed := range allowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if host == allowed || bareHost == stripPort(allowed) {
			return true
		}
	}
	return false
}

// stripPort reduces a host value to its bare hostname or IP: the port is
// dropped and IPv6 brackets are removed.
func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.Trim(host, "[]")
}

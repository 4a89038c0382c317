package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveCountry(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		lookup  CountryLookup
		want    string
	}{
		{
			name:    "explicit header hint wins",
			headers: map[string]string{"CF-IPCountry": "br"},
			lookup:  func(string) (string, error) { return "US", nil },
			want:    "BR",
		},
		{
			name:    "falls back to lookup",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.9"},
			lookup:  func(ip string) (string, error) { return "DE", nil },
			want:    "DE",
		},
		{
			name:   "failed lookup yields empty",
			lookup: func(string) (string, error) { return "", errors.New("no db") },
			want:   "",
		},
		{
			name: "no hints and no lookup",
			want: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = "198.51.100.10:1234"
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			if got := ResolveCountry(r, tc.lookup); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGeoMiddlewarePopulatesContext(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CountryFromContext(r.Context())
	})

	handler := Geo(func(string) (string, error) { return "JP", nil })(next)
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "198.51.100.10:1234"
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if got != "JP" {
		t.Fatalf("context country: got %q, want JP", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{name: "forwarded first", forwarded: "203.0.113.1, 198.51.100.2", remoteAddr: "10.0.0.1:999", want: "203.0.113.1"},
		{name: "remote host without port", remoteAddr: "198.51.100.10", want: "198.51.100.10"},
		{name: "remote host with port", remoteAddr: "198.51.100.10:1234", want: "198.51.100.10"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if got := ClientIP(r); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

type stubRoundTripper struct {
	lastUA string
	resp   *http.Response
}

func (s *stubRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	s.lastUA = req.Header.Get("User-Agent")
	return s.resp, nil
}

func TestHeaderOverrideTransport(t *testing.T) {
	stub := &stubRoundTripper{
		resp: &http.Response{
			StatusCode: http.StatusOK,
			Header: http.Header{
				"Pragma":        []string{"no-cache"},
				"Cache-Control": []string{"no-store"},
			},
			Body: io.NopCloser(strings.NewReader("ok")),
		},
	}

	rt := &HeaderOverrideTransport{
		wrappedRT: stub,
		Request: func(req *http.Request) {
			req.Header.Set("User-Agent", UserAgent)
		},
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Set("Cache-Control", "public, max-age=60")
			return nil
		},
	}

	req, err := http.NewRequest("GET", "https://example.com/ranking", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	defer resp.Body.Close()

	if stub.lastUA != UserAgent {
		t.Errorf("User-Agent = %q; want %q", stub.lastUA, UserAgent)
	}
	if got := resp.Header.Get("Pragma"); got != "" {
		t.Errorf("Pragma survived override: %q", got)
	}
	if got := resp.Header.Get("Cache-Control"); got != "public, max-age=60" {
		t.Errorf("Cache-Control = %q; want overridden TTL", got)
	}
	// the caller's request must not be mutated
	if got := req.Header.Get("User-Agent"); got != "" {
		t.Errorf("original request mutated: User-Agent = %q", got)
	}
}

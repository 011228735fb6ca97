/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/joy2mulka/webcache"
)

// NewCachedHttpClient returns an http.Client that caches via S3-backed
// httpcache. If S3 initialization fails (no credentials, missing bucket) it
// falls back to an in-memory cache so a single run still avoids re-fetching
// the same ranking page across classes. It also enforces a client-side TTL
// by rewriting origin cache headers.
func NewCachedHttpClient(ctx context.Context, maxAge time.Duration) *http.Client {
	bucket := os.Getenv(RankCacheBucketEnv)
	if bucket == "" {
		bucket = RankCacheBucket
	}

	var cache httpcache.Cache
	s3c := webcache.New(ctx, webcache.Options{Bucket: bucket, Gzip: true})
	if err := s3c.Init(); err != nil {
		log.Printf("httpcache: warning failed to init S3 cache: %v; using in-memory cache", err)
		cache = httpcache.NewMemoryCache()
	} else {
		cache = s3c
	}

	hc := httpcache.NewTransport(cache)
	// we have to inject our own header overrides here in order to override
	// server responses that might indicate caching shouldn't be done
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: http.DefaultTransport,
		Response: func(resp *http.Response) error {
			// Strip any cache-busting headers from origin
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			// Enforce the provided TTL
			resp.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don't stomp on the caller's original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

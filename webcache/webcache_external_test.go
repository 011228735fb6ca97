/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package webcache_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/gregjones/httpcache/test"
	"github.com/mikeb26/joy2mulka/internal"
	"github.com/mikeb26/joy2mulka/webcache"
)

func TestWebCache(t *testing.T) {
	cache := webcache.New(context.Background(), webcache.Options{
		Bucket: internal.RankCacheBucket,
	})
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			internal.RankCacheBucket, err))
	}

	test.Cache(t, cache)
}

func TestWebCacheWithGzip(t *testing.T) {
	cache := webcache.New(context.Background(), webcache.Options{
		Bucket: internal.RankCacheBucket,
		Gzip:   true,
	})
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			internal.RankCacheBucket, err))
	}

	test.Cache(t, cache)
}

/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent       = "joy2mulka/0.9.0 (+https://github.com/mikeb26/joy2mulka)"
	RankCacheBucket = "bopmatic-joy2mulka-prod-webcache"

	// environment override for the ranking web cache bucket
	RankCacheBucketEnv = "JOY2MULKA_CACHE_BUCKET"
)

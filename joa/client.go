/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package joa retrieves competitor ranking and registration data from the
// JOA entry portal (japan-o-entry.com). Ranking positions feed class splits;
// the registration open list backs competitor number verification.
package joa

import (
	"context"
	"net/http"
	"time"

	"github.com/mikeb26/joy2mulka/internal"
)

type Client struct {
	httpClient30day *http.Client
	httpClient1day  *http.Client
}

func NewClient(ctx context.Context) *Client {
	ret := &Client{
		httpClient30day: internal.NewCachedHttpClient(ctx, 30*24*time.Hour),
	}
	if ret.httpClient30day != http.DefaultClient {
		ret.httpClient1day = internal.NewCachedHttpClient(ctx, 24*time.Hour)
	} else {
		ret.httpClient1day = http.DefaultClient
	}

	return ret
}

/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mikeb26/joy2mulka/joa"
)

// this program exists just to seed the http cache for the JOA ranking pages

func main() {
	ctx := context.Background()
	client := joa.NewClient(ctx)

	for _, class := range joa.SupportedClasses() {
		ranks, err := client.FetchClassRankings(ctx, class, joa.DefaultMaxRank)
		time.Sleep(2 * time.Second) // avoid pegging japan-o-entry.com
		if err != nil {
			// best effort
			continue
		}

		fmt.Printf("seeded %v ranking (%d positions)\n", class, len(ranks))
	}

	if _, err := client.FetchRegistry(ctx); err == nil {
		fmt.Println("seeded JOA open list")
	}
}

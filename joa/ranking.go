/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package joa

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/joy2mulka/internal"
	"github.com/mikeb26/joy2mulka/startlist"
)

// rankingIndexURLs maps base classes to their JOA ranking index pages. Page 0
// is the URL as-is; later pages append "/<page>". 50 positions per page.
var rankingIndexURLs = map[string]string{
	"M21": "https://japan-o-entry.com/ranking/ranking/ranking_index/5/39",
	"W21": "https://japan-o-entry.com/ranking/ranking/ranking_index/5/40",
	"M20": "https://japan-o-entry.com/ranking/ranking/ranking_index/5/41",
	"W20": "https://japan-o-entry.com/ranking/ranking/ranking_index/5/42",
}

const rankingPageSize = 50

// DefaultMaxRank bounds how deep into the ranking pages a fetch goes.
const DefaultMaxRank = 1000

var classSuffixRe = regexp.MustCompile(`[AES].*$`)

// BaseClass maps a competition class to its ranking class by stripping the
// course-level suffix, e.g. "M21A" and "M21E" both rank as "M21".
func BaseClass(class string) string {
	return classSuffixRe.ReplaceAllString(class, "")
}

// HasRanking reports whether a ranking page is configured for the class's
// base class.
func HasRanking(class string) bool {
	_, ok := rankingIndexURLs[BaseClass(class)]
	return ok
}

// SupportedClasses lists the base classes with a configured ranking page,
// in natural order.
func SupportedClasses() []string {
	classes := make([]string, 0, len(rankingIndexURLs))
	for class := range rankingIndexURLs {
		classes = append(classes, class)
	}
	sort.Sort(startlist.ClassSorter(classes))
	return classes
}

// FetchClassRankings retrieves up to maxRank positions for one base class,
// keyed by normalized competitor name. An unconfigured class is not an
// error; it yields an empty map, meaning every entrant is treated as
// unranked. maxRank <= 0 selects DefaultMaxRank.
func (client *Client) FetchClassRankings(ctx context.Context, baseClass string,
	maxRank int) (map[string]int, error) {

	baseURL, ok := rankingIndexURLs[baseClass]
	if !ok {
		return map[string]int{}, nil
	}
	if maxRank <= 0 {
		maxRank = DefaultMaxRank
	}

	rankings := make(map[string]int)
	pages := (maxRank + rankingPageSize - 1) / rankingPageSize
	for page := 0; page < pages; page++ {
		url := baseURL
		if page > 0 {
			url = fmt.Sprintf("%s/%d", baseURL, page)
		}

		count, err := client.fetchRankingPage(ctx, url, maxRank, rankings)
		if err != nil {
			return nil, fmt.Errorf("fetching %s rankings page %d: %w",
				baseClass, page, err)
		}
		// a short page is the last one
		if count < rankingPageSize {
			break
		}
	}

	return rankings, nil
}

func (client *Client) fetchRankingPage(ctx context.Context, url string,
	maxRank int, rankings map[string]int) (int, error) {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating ranking request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient30day.Do(req)
	if err != nil {
		return 0, fmt.Errorf("performing ranking HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("unexpected ranking status %d: %s",
			resp.StatusCode, string(body))
	}

	return parseRankingPage(resp.Body, maxRank, rankings)
}

// parseRankingPage scans the page for the ranking table (the one whose
// header carries both 順位 and 氏名 columns) and folds its rows into
// rankings. Returns the number of rows consumed from the table.
func parseRankingPage(body io.Reader, maxRank int,
	rankings map[string]int) (int, error) {

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return 0, fmt.Errorf("parsing ranking HTML: %w", err)
	}

	count := 0
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rankCol, nameCol := rankingColumns(table)
		if rankCol < 0 || nameCol < 0 {
			return true // not the ranking table, keep looking
		}

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			tds := row.Find("td")
			if tds.Length() <= rankCol || tds.Length() <= nameCol {
				return
			}
			rank, err := strconv.Atoi(strings.TrimSpace(tds.Eq(rankCol).Text()))
			if err != nil || rank > maxRank {
				return
			}
			name := internal.NormalizeName(tds.Eq(nameCol).Text())
			if name == "" {
				return
			}
			// ties repeat a rank; first occurrence per name wins
			if _, ok := rankings[name]; !ok {
				rankings[name] = rank
			}
			count++
		})
		return false
	})

	return count, nil
}

// rankingColumns locates the 順位 and 氏名 header columns, or (-1, -1).
func rankingColumns(table *goquery.Selection) (rankCol, nameCol int) {
	rankCol, nameCol = -1, -1
	table.Find("tr").First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
		switch strings.TrimSpace(cell.Text()) {
		case "順位":
			rankCol = i
		case "氏名":
			nameCol = i
		}
	})
	return rankCol, nameCol
}

// FetchRankings retrieves rankings for every distinct base class among the
// given classes, fetching classes concurrently. The result is keyed by class
// base class name, then by normalized competitor name, ready to hand to the
// course builder. Classes without a configured ranking page simply map to an
// empty ranking.
func (client *Client) FetchRankings(ctx context.Context,
	classes []string) (map[string]map[string]int, error) {

	baseSeen := make(map[string]bool)
	var bases []string
	for _, class := range classes {
		base := BaseClass(class)
		if baseSeen[base] {
			continue
		}
		baseSeen[base] = true
		bases = append(bases, base)
	}

	var mu sync.Mutex
	byBase := make(map[string]map[string]int)
	g, ctx := errgroup.WithContext(ctx)
	for _, base := range bases {
		g.Go(func() error {
			ranks, err := client.FetchClassRankings(ctx, base, DefaultMaxRank)
			if err != nil {
				return err
			}
			mu.Lock()
			byBase[base] = ranks
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byClass := make(map[string]map[string]int)
	for _, class := range classes {
		byClass[class] = byBase[BaseClass(class)]
	}
	return byClass, nil
}

// FilterToEntries reduces a full ranking to the positions held by the given
// entries, keyed by normalized name. Useful for reporting which entrants are
// ranked without hauling the whole table around.
func FilterToEntries(ranks map[string]int,
	entries []startlist.Entry) map[string]int {

	filtered := make(map[string]int)
	for _, e := range entries {
		if r, ok := startlist.LookupEntryRank(e, ranks); ok {
			filtered[internal.NormalizeName(e.Name)] = r
		}
	}
	return filtered
}

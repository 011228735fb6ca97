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
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikeb26/joy2mulka/internal"
	"github.com/mikeb26/joy2mulka/startlist"
)

const registryURL = "https://japan-o-entry.com/joaregist/openlist"

// Registration is one row of the JOA open registration list.
type Registration struct {
	JOANumber string
	Name      string
}

// FetchRegistry retrieves the JOA registration open list keyed by
// registration number.
func (client *Client) FetchRegistry(ctx context.Context) (map[string]Registration, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", registryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating registry request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient1day.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing registry HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected registry status %d: %s",
			resp.StatusCode, string(body))
	}

	return parseRegistry(resp.Body)
}

func parseRegistry(body io.Reader) (map[string]Registration, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing registry HTML: %w", err)
	}

	registry := make(map[string]Registration)
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		numCol, nameCol := registryColumns(table)
		if numCol < 0 || nameCol < 0 {
			return true
		}

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			tds := row.Find("td")
			if tds.Length() <= numCol || tds.Length() <= nameCol {
				return
			}
			num := strings.TrimSpace(tds.Eq(numCol).Text())
			name := strings.TrimSpace(tds.Eq(nameCol).Text())
			if num == "" || name == "" {
				return
			}
			registry[num] = Registration{JOANumber: num, Name: name}
		})
		return false
	})

	return registry, nil
}

func registryColumns(table *goquery.Selection) (numCol, nameCol int) {
	numCol, nameCol = -1, -1
	table.Find("tr").First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
		switch strings.TrimSpace(cell.Text()) {
		case "登録番号", "番号":
			numCol = i
		case "氏名":
			nameCol = i
		}
	})
	return numCol, nameCol
}

// VerifyRegistrations checks each entry's claimed JOA number against the
// registry and returns a message per mismatch or unknown number. Entries
// without a number are skipped; verification is advisory.
func VerifyRegistrations(entries []startlist.Entry,
	registry map[string]Registration) []string {

	var problems []string
	for _, e := range entries {
		if e.JOANumber == "" {
			continue
		}
		reg, ok := registry[e.JOANumber]
		if !ok {
			problems = append(problems, fmt.Sprintf(
				"%s: JOA number %s not found in open list", e.Name,
				e.JOANumber))
			continue
		}
		if internal.NormalizeName(reg.Name) != internal.NormalizeName(e.Name) {
			problems = append(problems, fmt.Sprintf(
				"%s: JOA number %s is registered to %s", e.Name, e.JOANumber,
				reg.Name))
		}
	}
	return problems
}

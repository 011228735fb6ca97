/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/joy2mulka/config"
	"github.com/mikeb26/joy2mulka/joa"
	"github.com/mikeb26/joy2mulka/joy"
	"github.com/mikeb26/joy2mulka/mulka"
	"github.com/mikeb26/joy2mulka/startlist"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":     handleHelp,
	"entries":  handleEntries,
	"rankings": handleRankings,
	"verify":   handleVerify,
	"generate": handleGenerate,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

func handleEntries(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("entries", flag.ExitOnError)
	entriesPath := fs.String("entries", "", "Path to the JOY entry list export")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *entriesPath == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --entries <file>.")
		fs.Usage()
		os.Exit(1)
	}

	entries, err := joy.ParseEntryListFile(*entriesPath)
	if err != nil {
		log.Fatalf("Error parsing entry list: %v", err)
	}

	groups := joy.GroupEntriesByClass(entries)
	rentals := 0
	for _, e := range entries {
		if e.IsRental {
			rentals++
		}
	}

	fmt.Printf("%d entries in %d classes (%d rental cards)\n\n",
		len(entries), len(joy.UniqueClasses(entries)), rentals)
	for _, class := range joy.UniqueClasses(entries) {
		fmt.Printf("  %-10s %4d\n", class, len(groups[class]))
	}
}

func handleRankings(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("rankings", flag.ExitOnError)
	class := fs.String("class", "", "Class to fetch rankings for (e.g. M21)")
	top := fs.Int("top", 25, "Number of positions to show (1-1000)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *class == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --class name.")
		fs.Usage()
		os.Exit(1)
	}
	// enforce bounds
	if *top < 1 {
		*top = 1
	} else if *top > joa.DefaultMaxRank {
		*top = joa.DefaultMaxRank
	}

	base := joa.BaseClass(*class)
	if !joa.HasRanking(base) {
		log.Fatalf("No ranking page configured for class %s (supported: %v)",
			base, joa.SupportedClasses())
	}

	client := joa.NewClient(ctx)
	ranks, err := client.FetchClassRankings(ctx, base, *top)
	if err != nil {
		log.Fatalf("Error fetching rankings for %s: %v", base, err)
	}

	byRank := make(map[int][]string)
	for name, rank := range ranks {
		byRank[rank] = append(byRank[rank], name)
	}
	fmt.Printf("%s rankings (top %d):\n", base, *top)
	for rank := 1; rank <= *top; rank++ {
		for _, name := range byRank[rank] {
			fmt.Printf("%4d  %s\n", rank, name)
		}
	}
}

func handleVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	entriesPath := fs.String("entries", "", "Path to the JOY entry list export")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *entriesPath == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --entries <file>.")
		fs.Usage()
		os.Exit(1)
	}

	entries, err := joy.ParseEntryListFile(*entriesPath)
	if err != nil {
		log.Fatalf("Error parsing entry list: %v", err)
	}

	client := joa.NewClient(ctx)
	registry, err := client.FetchRegistry(ctx)
	if err != nil {
		log.Fatalf("Error fetching JOA registry: %v", err)
	}

	problems := joa.VerifyRegistrations(entries, registry)
	if len(problems) == 0 {
		fmt.Println("All JOA numbers check out")
		return
	}
	for _, p := range problems {
		fmt.Println(p)
	}
	os.Exit(1)
}

func handleGenerate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	entriesPath := fs.String("entries", "", "Path to the JOY entry list export")
	configPath := fs.String("config", "", "Path to the event configuration JSON")
	outputDir := fs.String("output-dir", ".", "Base output directory")
	noRanking := fs.Bool("no-ranking", false,
		"Skip ranking lookup (splits distribute randomly)")
	seed := fs.Int64("seed", -1, "Override the configured random seed (>= 0)")
	pdfFont := fs.String("pdf-font", "",
		"TTF font with CJK coverage for the PDF startlist")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *entriesPath == "" || *configPath == "" {
		fmt.Fprintln(os.Stderr,
			"Please provide valid --entries <file> and --config <file>.")
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *seed >= 0 {
		cfg.Seed = *seed
	}

	entries, err := joy.ParseEntryListFile(*entriesPath)
	if err != nil {
		log.Fatalf("Error parsing entry list: %v", err)
	}
	fmt.Printf("Parsed %d entries in %d classes\n", len(entries),
		len(joy.UniqueClasses(entries)))

	var ranks map[string]map[string]int
	if !*noRanking && len(cfg.SplitClasses()) > 0 {
		fmt.Printf("Fetching JOA rankings for %v...\n", cfg.SplitClasses())
		client := joa.NewClient(ctx)
		ranks, err = client.FetchRankings(ctx, cfg.SplitClasses())
		if err != nil {
			log.Fatalf("Error fetching rankings: %v", err)
		}
	}

	areas, unplaced, err := cfg.Assemble(entries, ranks)
	if err != nil {
		log.Fatalf("Error assembling lanes: %v", err)
	}
	for _, course := range unplaced {
		fmt.Fprintf(os.Stderr, "warning: no lane lists class %s (%d entries)\n",
			course.ClassName, len(course.Entries))
	}

	schedule, err := startlist.GenerateSchedule(areas, cfg.SchedulerConfig())
	if err != nil {
		log.Fatalf("Error generating schedule: %v", err)
	}
	fmt.Printf("Generated %d start positions\n", len(schedule))

	// conflicts are advisory; report and carry on
	conflicts := startlist.CheckConflicts(schedule, cfg.Constraints())
	fmt.Fprint(os.Stderr, startlist.BuildConflictsOutput(conflicts))

	outFolder := filepath.Join(*outputDir, cfg.OutputFolder)
	if err := os.MkdirAll(outFolder, 0755); err != nil {
		log.Fatalf("Error creating output directory: %v", err)
	}

	if err := writeOutputs(outFolder, schedule, cfg, *pdfFont); err != nil {
		log.Fatalf("Error writing outputs: %v", err)
	}
	fmt.Printf("Done! Output written to %s\n", outFolder)
}

// writeOutputs renders every output format, fanned out since the renderers
// are independent.
func writeOutputs(outFolder string, schedule []startlist.StartListEntry,
	cfg *config.Config, pdfFont string) error {

	doc := mulka.Document{
		CompetitionName: cfg.CompetitionName,
		Title:           cfg.OutputFolder,
		Labels:          mulka.LabelsFor(cfg.Language),
	}

	writers := map[string]func(f *os.File) error{
		"Startlist.csv": func(f *os.File) error {
			return mulka.WriteStartlistCSV(f, schedule)
		},
		"Role_Startlist.csv": func(f *os.File) error {
			return mulka.WriteRoleStartlistCSV(f, schedule)
		},
		"Mulka_Import.csv": func(f *os.File) error {
			return mulka.WriteMulkaImportCSV(f, schedule)
		},
		"Class_Summary.csv": func(f *os.File) error {
			return mulka.WriteClassSummaryCSV(f, schedule)
		},
		"Public_Startlist.tex": func(f *os.File) error {
			return mulka.WritePublicStartlistTeX(f, schedule, doc)
		},
		"Role_Startlist.tex": func(f *os.File) error {
			return mulka.WriteRoleStartlistTeX(f, schedule, doc)
		},
		"Summary.txt": func(f *os.File) error {
			return mulka.WriteSummaryReport(f, schedule)
		},
		"Startlist.pdf": func(f *os.File) error {
			return mulka.WriteStartlistPDF(f, schedule, mulka.PDFOptions{
				Document: doc,
				FontPath: pdfFont,
			})
		},
	}

	var g errgroup.Group
	for name, write := range writers {
		g.Go(func() error {
			path := filepath.Join(outFolder, name)
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			if err := write(f); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", path, err)
			}
			fmt.Printf("  Created: %s\n", path)
			return nil
		})
	}
	return g.Wait()
}

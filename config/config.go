/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package config loads and validates the event configuration: competition
// metadata, start areas and lanes, class splits, and conflict constraints.
// It also assembles the configured lane layout from parsed entries, the step
// between parsing and schedule generation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/araddon/dateparse"

	"github.com/mikeb26/joy2mulka/startlist"
)

type Config struct {
	CompetitionName string `json:"competition_name"`
	EventDate       string `json:"event_date,omitempty"`
	OutputFolder    string `json:"output_folder"`

	// Language selects output labels: "en" (default) or "ja".
	Language string `json:"language,omitempty"`

	Seed               int64 `json:"seed,omitempty"`
	MaxShuffleAttempts int   `json:"max_shuffle_attempts,omitempty"`

	Areas []AreaConfig `json:"areas"`

	// Splits is keyed by class name, e.g. "M21A".
	Splits map[string]SplitConfig `json:"splits,omitempty"`

	Conflicts ConflictConfig `json:"conflicts,omitempty"`
}

type AreaConfig struct {
	Name  string       `json:"name"`
	Lanes []LaneConfig `json:"lanes"`
}

type LaneConfig struct {
	Name        string   `json:"name"`
	StartTime   string   `json:"start_time"`
	Classes     []string `json:"classes"`
	StartNumber int      `json:"start_number"`

	// Interval is the gap in minutes between consecutive starts.
	Interval int `json:"interval"`

	// CourseGap is an extra pause in minutes between courses, default none.
	CourseGap int `json:"course_gap,omitempty"`

	// AffiliationSplit defaults to true when omitted.
	AffiliationSplit *bool `json:"affiliation_split,omitempty"`
}

type SplitConfig struct {
	Count int `json:"count"`

	// SuffixFormat names the splits, e.g. "A%d". Empty means "%d".
	SuffixFormat string `json:"suffix_format,omitempty"`

	// UseRanking defaults to true when omitted.
	UseRanking *bool `json:"use_ranking,omitempty"`
}

type ConflictConfig struct {
	AllowSameTime bool     `json:"allow_same_time,omitempty"`
	SameTimeAreas []string `json:"same_time_areas,omitempty"`

	// SameLanePolicy is "allow", "disallow_all", or "disallow_courses".
	// Empty means "allow".
	SameLanePolicy  string   `json:"same_lane_policy,omitempty"`
	SameLaneCourses []string `json:"same_lane_courses,omitempty"`

	SameLaneWindowMin int `json:"same_lane_window_min,omitempty"`
}

// Load reads, parses, and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks structural requirements: an output folder, at least one
// lane, parseable lane start times, and recognized enum values.
func (cfg *Config) Validate() error {
	if cfg.OutputFolder == "" {
		return fmt.Errorf("output_folder is required")
	}
	if len(cfg.Areas) == 0 {
		return fmt.Errorf("at least one start area is required")
	}

	laneNames := make(map[string]bool)
	laneCount := 0
	for _, area := range cfg.Areas {
		if area.Name == "" {
			return fmt.Errorf("every area needs a name")
		}
		for _, lane := range area.Lanes {
			laneCount++
			if lane.Name == "" {
				return fmt.Errorf("area %s: every lane needs a name", area.Name)
			}
			if laneNames[lane.Name] {
				return fmt.Errorf("lane %s is defined more than once", lane.Name)
			}
			laneNames[lane.Name] = true

			if _, err := startlist.ParseClock(lane.StartTime); err != nil {
				return fmt.Errorf("lane %s: %w", lane.Name, err)
			}
			if lane.Interval <= 0 {
				return fmt.Errorf("lane %s: interval must be positive", lane.Name)
			}
			if lane.CourseGap < 0 {
				return fmt.Errorf("lane %s: course_gap cannot be negative", lane.Name)
			}
			if len(lane.Classes) == 0 {
				return fmt.Errorf("lane %s: classes list is empty", lane.Name)
			}
		}
	}
	if laneCount == 0 {
		return fmt.Errorf("at least one lane is required")
	}

	for class, split := range cfg.Splits {
		if split.Count < 2 {
			return fmt.Errorf("split for %s: count must be at least 2", class)
		}
	}

	switch cfg.Conflicts.SameLanePolicy {
	case "", "allow", "disallow_all", "disallow_courses":
	default:
		return fmt.Errorf("unknown same_lane_policy %q",
			cfg.Conflicts.SameLanePolicy)
	}
	if cfg.Conflicts.SameLanePolicy == "disallow_courses" &&
		len(cfg.Conflicts.SameLaneCourses) == 0 {
		return fmt.Errorf("same_lane_policy disallow_courses needs same_lane_courses")
	}
	if cfg.Conflicts.SameLaneWindowMin < 0 {
		return fmt.Errorf("same_lane_window_min cannot be negative")
	}
	if cfg.EventDate != "" {
		if _, err := dateparse.ParseAny(cfg.EventDate); err != nil {
			return fmt.Errorf("cannot parse event_date %q: %w", cfg.EventDate,
				err)
		}
	}

	return nil
}

// EventDay returns the parsed event date, or the zero time when none is
// configured.
func (cfg *Config) EventDay() time.Time {
	if cfg.EventDate == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(cfg.EventDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SplitSpecs converts the configured splits into scheduler split specs.
func (cfg *Config) SplitSpecs() map[string]startlist.SplitSpec {
	if len(cfg.Splits) == 0 {
		return nil
	}
	specs := make(map[string]startlist.SplitSpec, len(cfg.Splits))
	for class, split := range cfg.Splits {
		specs[class] = startlist.SplitSpec{
			Count:        split.Count,
			SuffixFormat: split.SuffixFormat,
			UseRanking:   split.UseRanking == nil || *split.UseRanking,
		}
	}
	return specs
}

// SplitClasses lists the classes configured for splitting that want ranking
// data.
func (cfg *Config) SplitClasses() []string {
	var classes []string
	for class, split := range cfg.Splits {
		if split.UseRanking == nil || *split.UseRanking {
			classes = append(classes, class)
		}
	}
	return classes
}

// Constraints converts the conflict section into detector constraints.
func (cfg *Config) Constraints() startlist.Constraints {
	cons := startlist.Constraints{
		AllowSameTime:   cfg.Conflicts.AllowSameTime,
		SameTimeAreas:   cfg.Conflicts.SameTimeAreas,
		SameLaneCourses: cfg.Conflicts.SameLaneCourses,
		SameLaneWindow:  cfg.Conflicts.SameLaneWindowMin,
	}
	switch cfg.Conflicts.SameLanePolicy {
	case "disallow_all":
		cons.SameLanePolicy = startlist.SameLaneDisallowAll
	case "disallow_courses":
		cons.SameLanePolicy = startlist.SameLaneDisallowCourses
	default:
		cons.SameLanePolicy = startlist.SameLaneAllow
	}
	return cons
}

// SchedulerConfig converts the top-level knobs for schedule generation.
func (cfg *Config) SchedulerConfig() startlist.Config {
	return startlist.Config{
		Seed:        cfg.Seed,
		MaxAttempts: cfg.MaxShuffleAttempts,
	}
}

// Assemble builds courses from the entries and places them onto the
// configured areas and lanes. Lane class lists name source classes; a split
// class contributes all of its split courses, in split order, at the listed
// position. Courses whose class no lane lists come back in unplaced so the
// caller can warn about them. A class listed by two lanes is an error.
func (cfg *Config) Assemble(entries []startlist.Entry,
	ranks map[string]map[string]int) ([]*startlist.StartArea,
	[]*startlist.Course, error) {

	courses := startlist.BuildCourses(entries, cfg.SplitSpecs(), ranks,
		cfg.Seed)

	byClass := make(map[string][]*startlist.Course)
	for _, course := range courses {
		byClass[course.ClassName] = append(byClass[course.ClassName], course)
	}

	placedClass := make(map[string]string)
	var areas []*startlist.StartArea
	for _, areaCfg := range cfg.Areas {
		area := &startlist.StartArea{Name: areaCfg.Name}
		for _, laneCfg := range areaCfg.Lanes {
			lane := &startlist.Lane{
				Name:             laneCfg.Name,
				StartTime:        startlist.MustParseClock(laneCfg.StartTime),
				StartNumber:      laneCfg.StartNumber,
				Interval:         laneCfg.Interval,
				CourseGap:        laneCfg.CourseGap,
				AffiliationSplit: laneCfg.AffiliationSplit == nil || *laneCfg.AffiliationSplit,
			}

			pos := 0
			for _, class := range laneCfg.Classes {
				if prev, ok := placedClass[class]; ok {
					return nil, nil, fmt.Errorf(
						"class %s is listed by both lane %s and lane %s",
						class, prev, laneCfg.Name)
				}
				placedClass[class] = laneCfg.Name

				for _, course := range byClass[class] {
					course.LaneName = lane.Name
					course.Position = pos
					pos++
					lane.Courses = append(lane.Courses, course)
				}
			}

			area.Lanes = append(area.Lanes, lane)
		}
		areas = append(areas, area)
	}

	var unplaced []*startlist.Course
	for _, course := range courses {
		if course.LaneName == "" && len(course.Entries) > 0 {
			unplaced = append(unplaced, course)
		}
	}

	return areas, unplaced, nil
}

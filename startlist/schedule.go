/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package startlist

import (
	"fmt"
	"math/rand"
	"sort"
)

// BuildCourses groups entries by class and produces one Course per class,
// or Count courses for classes named in splits. ranks is keyed by class
// name, then by normalized competitor name. Classes are processed in
// natural-sorted order and a single seeded generator drives every split, so
// the result is a pure function of (entries, splits, ranks, seed).
func BuildCourses(entries []Entry, splits map[string]SplitSpec,
	ranks map[string]map[string]int, seed int64) []*Course {

	byClass := make(map[string][]Entry)
	var classes []string
	for _, e := range entries {
		if e.ClassName == "" {
			continue
		}
		if _, ok := byClass[e.ClassName]; !ok {
			classes = append(classes, e.ClassName)
		}
		byClass[e.ClassName] = append(byClass[e.ClassName], e)
	}
	sort.Sort(ClassSorter(classes))

	rng := rand.New(rand.NewSource(seed))
	var courses []*Course
	for _, class := range classes {
		spec, ok := splits[class]
		if !ok || spec.Count <= 1 {
			courses = append(courses, &Course{
				ClassName: class,
				Name:      class,
				Entries:   byClass[class],
			})
			continue
		}

		var classRanks map[string]int
		if spec.UseRanking {
			classRanks = ranks[class]
		}
		suffix := spec.SuffixFormat
		if suffix == "" {
			suffix = "%d"
		}

		groups := splitByRank(byClass[class], spec.Count, classRanks, rng)
		for i, group := range groups {
			courses = append(courses, &Course{
				ClassName:  class,
				SplitIndex: i + 1,
				Name:       class + fmt.Sprintf(suffix, i+1),
				Entries:    group,
			})
		}
	}

	return courses
}

// GenerateLane emits the timed, numbered schedule rows for one lane. Courses
// are visited in assigned position order; each course's entries are ordered
// by the bounded affiliation search (or plainly shuffled when the lane has
// separation disabled). Bib numbers and start times advance with one running
// offset across the whole lane, with the lane's course gap added to the time
// base between courses.
func GenerateLane(lane *Lane, area *StartArea, cfg Config) ([]StartListEntry, error) {
	return generateLane(lane, area.Name, maxAttemptsFor(cfg),
		rand.New(rand.NewSource(cfg.Seed)))
}

func generateLane(lane *Lane, areaName string, maxAttempts int,
	rng *rand.Rand) ([]StartListEntry, error) {

	courses := append([]*Course{}, lane.Courses...)
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].Position < courses[j].Position
	})

	var rows []StartListEntry
	offset := 0
	gapMinutes := 0
	for _, course := range courses {
		if course.LaneName == "" {
			return nil, fmt.Errorf("course %s has not been assigned to a lane",
				course.Name)
		}
		if course.LaneName != lane.Name {
			return nil, fmt.Errorf("course %s is assigned to lane %q, not %q",
				course.Name, course.LaneName, lane.Name)
		}

		var ordered []Entry
		if lane.AffiliationSplit {
			ordered = orderAvoidingAffiliations(course.Entries, maxAttempts, rng)
		} else {
			ordered = shuffleEntries(course.Entries, rng)
		}

		for _, e := range ordered {
			rows = append(rows, StartListEntry{
				ClassName:   course.Name,
				StartNumber: lane.StartNumber + offset,
				Name:        e.Name,
				NameKana:    e.NameKana,
				Affiliation: e.Affiliation,
				StartTime:   lane.StartTime.AddMinutes(offset*lane.Interval + gapMinutes),
				CardNumber:  e.CardNumber,
				CardNote:    cardNote(e),
				JOANumber:   e.JOANumber,
				IsRental:    e.IsRental,
				LaneName:    lane.Name,
				AreaName:    areaName,
			})
			offset++
		}
		gapMinutes += lane.CourseGap
	}

	return rows, nil
}

// competitors run their own card unless none was recorded or rental was
// requested
func cardNote(e Entry) string {
	if e.IsRental || e.CardNumber == "" {
		return CardNoteRental
	}
	return CardNoteOwn
}

// GenerateSchedule produces the full schedule across every area and lane:
// each lane is generated in turn and the concatenation is stably sorted by
// start time, so simultaneous starts keep their lane order. A single seeded
// generator is consumed in deterministic area/lane/course order; identical
// inputs and seed yield a byte-identical schedule. Placement faults
// (an unassigned or misassigned course) fail before any row is returned.
func GenerateSchedule(areas []*StartArea, cfg Config) ([]StartListEntry, error) {
	if err := validatePlacement(areas); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	maxAttempts := maxAttemptsFor(cfg)

	var schedule []StartListEntry
	for _, area := range areas {
		for _, lane := range area.Lanes {
			rows, err := generateLane(lane, area.Name, maxAttempts, rng)
			if err != nil {
				return nil, err
			}
			schedule = append(schedule, rows...)
		}
	}

	sort.SliceStable(schedule, func(i, j int) bool {
		return schedule[i].StartTime < schedule[j].StartTime
	})

	return schedule, nil
}

func validatePlacement(areas []*StartArea) error {
	for _, area := range areas {
		for _, lane := range area.Lanes {
			for _, course := range lane.Courses {
				if course.LaneName == "" {
					return fmt.Errorf("course %s has not been assigned to a lane",
						course.Name)
				}
				if course.LaneName != lane.Name {
					return fmt.Errorf("course %s is assigned to lane %q, not %q",
						course.Name, course.LaneName, lane.Name)
				}
			}
		}
	}
	return nil
}

func maxAttemptsFor(cfg Config) int {
	if cfg.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return cfg.MaxAttempts
}

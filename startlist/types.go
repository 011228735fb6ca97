/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package startlist turns a parsed competition entry list into a
// conflict-aware, reproducible start schedule spanning one or more start
// lanes. Oversized classes are split into balanced courses (optionally
// weighted by external ranking data), runners within each course are ordered
// to avoid consecutive same-club starts, start times and bib numbers are
// assigned per lane, and the finished schedule is scanned for collisions.
//
// Everything in this package is a pure function of its inputs and the
// caller-provided seed: identical inputs always produce an identical
// schedule. No I/O is performed here; ingestion, ranking retrieval, and
// rendering live in the joy, joa, and mulka packages.
package startlist

import (
	"fmt"
)

// Entry is one competitor's registration as produced by the entry-list
// parser. Entries are read-only inputs; the scheduler never mutates them.
type Entry struct {
	// ID identifies the source row/slot in the entry list, e.g. "r5p2".
	ID        string
	ClassName string

	// Name is the primary (kanji) name; NameKana the phonetic reading.
	Name     string
	NameKana string

	// Affiliation is the raw club/team text as entered. Affiliations holds
	// the normalized tokens derived from it via SplitAffiliations; when nil
	// the tokens are derived on demand.
	Affiliation  string
	Affiliations []string

	CardNumber string
	JOANumber  string
	Gender     string
	IsRental   bool

	// ParticipantNum is the competitor's slot within its entry row (1-5).
	ParticipantNum int
}

// AffiliationTokens returns the entry's normalized affiliation token set.
func (e Entry) AffiliationTokens() []string {
	if e.Affiliations != nil {
		return e.Affiliations
	}
	return SplitAffiliations(e.Affiliation)
}

// Course is one schedulable bracket: a full class, or one split portion of
// it. Lane placement (LaneName, Position) is assigned by the configuration
// layer, not computed here.
type Course struct {
	// ClassName is the source class, e.g. "M21A".
	ClassName string

	// SplitIndex is the 1-based split number, or 0 for an unsplit class.
	SplitIndex int

	// Name is the schedule display name, e.g. "M21A1" for a split course.
	Name string

	Entries []Entry

	// LaneName and Position are set when the course is placed onto a lane.
	LaneName string
	Position int
}

// Lane is one physical start queue with its own clock and bib numbering.
// Lanes are configuration, consumed as-is.
type Lane struct {
	Name        string
	StartTime   Clock
	StartNumber int

	// Interval is the gap in minutes between consecutive starts.
	Interval int

	// CourseGap is an extra pause in minutes inserted between courses.
	CourseGap int

	// AffiliationSplit enables consecutive same-club avoidance; when false
	// courses are plainly shuffled.
	AffiliationSplit bool

	// Courses are visited in Position order.
	Courses []*Course
}

// StartArea groups lanes that share a physical start location.
type StartArea struct {
	Name  string
	Lanes []*Lane
}

// StartListEntry is one row of the finished schedule.
type StartListEntry struct {
	ClassName   string
	StartNumber int
	Name        string
	NameKana    string
	Affiliation string
	StartTime   Clock
	CardNumber  string
	CardNote    string
	JOANumber   string
	IsRental    bool
	LaneName    string
	AreaName    string
}

// ConflictKind discriminates the two collision checks.
type ConflictKind int

const (
	// ConflictSameTime marks same-club runners starting at the identical
	// time across areas.
	ConflictSameTime ConflictKind = iota

	// ConflictSameLane marks same-club runners starting within a time
	// window on one lane.
	ConflictSameLane
)

func (k ConflictKind) String() string {
	switch k {
	case ConflictSameTime:
		return "same-time"
	case ConflictSameLane:
		return "same-lane"
	}
	return "?"
}

// Conflict is one detected collision. Conflicts are advisory: they never
// block schedule generation.
type Conflict struct {
	Kind     ConflictKind
	Tokens   []string
	Time     Clock
	LaneName string
	AreaName string
	Entries  []StartListEntry
	Message  string
}

// SameLanePolicy selects how the same-lane window check applies.
type SameLanePolicy int

const (
	// SameLaneAllow disables the same-lane check.
	SameLaneAllow SameLanePolicy = iota

	// SameLaneDisallowAll applies the check to every lane.
	SameLaneDisallowAll

	// SameLaneDisallowCourses applies the check only to rows belonging to
	// the courses listed in Constraints.SameLaneCourses.
	SameLaneDisallowCourses
)

// Constraints configures conflict detection.
type Constraints struct {
	// AllowSameTime skips the cross-area same-time check entirely.
	AllowSameTime bool

	// SameTimeAreas restricts the same-time check to the named areas; empty
	// means all areas.
	SameTimeAreas []string

	SameLanePolicy  SameLanePolicy
	SameLaneCourses []string

	// SameLaneWindow is the window in minutes within which two same-club
	// starts on one lane are flagged.
	SameLaneWindow int
}

// Config carries the knobs threaded through schedule generation. There is
// deliberately no ambient/global configuration.
type Config struct {
	// Seed drives every pseudo-random decision. Identical seed plus
	// identical inputs yield a byte-identical schedule.
	Seed int64

	// MaxAttempts bounds the per-course shuffle search; <= 0 selects
	// DefaultMaxAttempts.
	MaxAttempts int
}

// SplitSpec describes how one class is divided into courses.
type SplitSpec struct {
	Count int

	// SuffixFormat names the splits, e.g. "A%d" turns M21 into M21A1,
	// M21A2. Empty means "%d".
	SuffixFormat string

	// UseRanking distributes ranked runners round-robin; when false all
	// runners are treated as unranked.
	UseRanking bool
}

// DefaultMaxAttempts bounds the randomized ordering search per course.
const DefaultMaxAttempts = 1000

// Card notes attached to each schedule row, matching what Mulka expects.
const (
	CardNoteRental = "レンタル"
	CardNoteOwn    = "my card"
)

func (c Course) String() string {
	return fmt.Sprintf("%s (%d entries)", c.Name, len(c.Entries))
}

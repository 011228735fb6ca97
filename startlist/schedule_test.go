/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package startlist

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func classEntries(class string, names ...string) []Entry {
	entries := make([]Entry, len(names))
	for i, n := range names {
		entries[i] = Entry{ID: n, Name: n, ClassName: class}
	}
	return entries
}

func TestBuildCoursesUnsplit(t *testing.T) {
	entries := append(classEntries("W21", "w1", "w2"),
		classEntries("M21", "m1", "m2", "m3")...)

	courses := BuildCourses(entries, nil, nil, 1)
	if len(courses) != 2 {
		t.Fatalf("got %d courses; want 2", len(courses))
	}
	// natural class order
	if courses[0].Name != "M21" || courses[1].Name != "W21" {
		t.Errorf("course order = %s, %s; want M21, W21",
			courses[0].Name, courses[1].Name)
	}
	if courses[0].SplitIndex != 0 {
		t.Errorf("unsplit SplitIndex = %d; want 0", courses[0].SplitIndex)
	}
	if len(courses[0].Entries) != 3 || len(courses[1].Entries) != 2 {
		t.Errorf("entry counts = %d, %d; want 3, 2",
			len(courses[0].Entries), len(courses[1].Entries))
	}
}

func TestBuildCoursesSplit(t *testing.T) {
	entries := append(classEntries("M21", "m1", "m2", "m3", "m4", "m5", "m6", "m7"),
		classEntries("W21", "w1", "w2")...)
	splits := map[string]SplitSpec{
		"M21": {Count: 2, SuffixFormat: "A%d"},
	}

	courses := BuildCourses(entries, splits, nil, 9)
	if len(courses) != 3 {
		t.Fatalf("got %d courses; want 3", len(courses))
	}
	if courses[0].Name != "M21A1" || courses[1].Name != "M21A2" {
		t.Errorf("split names = %s, %s; want M21A1, M21A2",
			courses[0].Name, courses[1].Name)
	}
	if courses[0].SplitIndex != 1 || courses[1].SplitIndex != 2 {
		t.Errorf("split indices = %d, %d; want 1, 2",
			courses[0].SplitIndex, courses[1].SplitIndex)
	}
	if courses[0].ClassName != "M21" || courses[1].ClassName != "M21" {
		t.Errorf("split ClassName should stay M21")
	}
	if courses[2].Name != "W21" {
		t.Errorf("third course = %s; want W21", courses[2].Name)
	}

	// all seven M21 entries survive the split, sizes off by at most one
	total := len(courses[0].Entries) + len(courses[1].Entries)
	if total != 7 {
		t.Errorf("split entry total = %d; want 7", total)
	}
	diff := len(courses[0].Entries) - len(courses[1].Entries)
	if diff < -1 || diff > 1 {
		t.Errorf("split sizes %d/%d differ by more than one",
			len(courses[0].Entries), len(courses[1].Entries))
	}
}

func TestBuildCoursesRankedSplit(t *testing.T) {
	entries := classEntries("M21", "m1", "m2", "m3", "m4", "m5", "m6")
	splits := map[string]SplitSpec{
		"M21": {Count: 2, UseRanking: true},
	}
	ranks := map[string]map[string]int{
		"M21": {"m1": 1, "m2": 2, "m3": 3, "m4": 4, "m5": 5, "m6": 6},
	}

	courses := BuildCourses(entries, splits, ranks, 1)
	if len(courses) != 2 {
		t.Fatalf("got %d courses; want 2", len(courses))
	}
	if got, want := entryIDs(courses[0].Entries), []string{"m1", "m3", "m5"}; !reflect.DeepEqual(got, want) {
		t.Errorf("M211 = %v; want %v", got, want)
	}
	if got, want := entryIDs(courses[1].Entries), []string{"m2", "m4", "m6"}; !reflect.DeepEqual(got, want) {
		t.Errorf("M212 = %v; want %v", got, want)
	}
}

func TestBuildCoursesDeterministic(t *testing.T) {
	entries := classEntries("M21", "m1", "m2", "m3", "m4", "m5")
	splits := map[string]SplitSpec{"M21": {Count: 2}}

	first := BuildCourses(entries, splits, nil, 77)
	second := BuildCourses(entries, splits, nil, 77)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different courses")
	}
}

func laneWith(courses ...*Course) *Lane {
	lane := &Lane{
		Name:        "S1",
		StartTime:   MustParseClock("10:00"),
		StartNumber: 100,
		Interval:    2,
		Courses:     courses,
	}
	for i, c := range courses {
		c.LaneName = lane.Name
		c.Position = i
	}
	return lane
}

func TestGenerateLaneTiming(t *testing.T) {
	course := &Course{
		ClassName: "M21",
		Name:      "M21",
		Entries:   classEntries("M21", "m1", "m2", "m3"),
	}
	lane := laneWith(course)

	rows, err := GenerateLane(lane, &StartArea{Name: "Main"}, Config{Seed: 1})
	if err != nil {
		t.Fatalf("GenerateLane: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows; want 3", len(rows))
	}
	wantTimes := []string{"10:00:00", "10:02:00", "10:04:00"}
	for i, row := range rows {
		if row.StartNumber != 100+i {
			t.Errorf("row %d StartNumber = %d; want %d", i, row.StartNumber,
				100+i)
		}
		if got := row.StartTime.String(); got != wantTimes[i] {
			t.Errorf("row %d StartTime = %s; want %s", i, got, wantTimes[i])
		}
		if row.LaneName != "S1" || row.AreaName != "Main" {
			t.Errorf("row %d placement = %s/%s; want S1/Main", i,
				row.LaneName, row.AreaName)
		}
		if row.ClassName != "M21" {
			t.Errorf("row %d ClassName = %s; want M21", i, row.ClassName)
		}
	}
}

func TestGenerateLaneCourseGap(t *testing.T) {
	first := &Course{ClassName: "M21", Name: "M21",
		Entries: classEntries("M21", "m1", "m2")}
	second := &Course{ClassName: "W21", Name: "W21",
		Entries: classEntries("W21", "w1")}
	lane := laneWith(first, second)
	lane.StartTime = MustParseClock("09:00")
	lane.StartNumber = 1
	lane.Interval = 1
	lane.CourseGap = 5

	rows, err := GenerateLane(lane, &StartArea{Name: "Main"}, Config{Seed: 1})
	if err != nil {
		t.Fatalf("GenerateLane: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows; want 3", len(rows))
	}

	// bib numbering runs on across the gap
	if rows[2].StartNumber != 3 {
		t.Errorf("post-gap StartNumber = %d; want 3", rows[2].StartNumber)
	}
	// 09:00 base + 2 elapsed intervals + one 5 min gap
	if got := rows[2].StartTime.String(); got != "09:07:00" {
		t.Errorf("post-gap StartTime = %s; want 09:07:00", got)
	}
	if rows[0].StartTime.String() != "09:00:00" ||
		rows[1].StartTime.String() != "09:01:00" {
		t.Errorf("pre-gap times = %s, %s; want 09:00:00, 09:01:00",
			rows[0].StartTime, rows[1].StartTime)
	}
}

func TestGenerateLaneCourseOrder(t *testing.T) {
	first := &Course{ClassName: "M21", Name: "M21",
		Entries: classEntries("M21", "m1")}
	second := &Course{ClassName: "W21", Name: "W21",
		Entries: classEntries("W21", "w1")}
	lane := laneWith(first, second)
	// flip the assigned positions; W21 should now start first
	first.Position, second.Position = 1, 0

	rows, err := GenerateLane(lane, &StartArea{Name: "Main"}, Config{Seed: 1})
	if err != nil {
		t.Fatalf("GenerateLane: %v", err)
	}
	if rows[0].ClassName != "W21" || rows[1].ClassName != "M21" {
		t.Errorf("course order = %s, %s; want W21, M21",
			rows[0].ClassName, rows[1].ClassName)
	}
}

func TestGenerateLanePlacementErrors(t *testing.T) {
	unassigned := &Course{ClassName: "M21", Name: "M21",
		Entries: classEntries("M21", "m1")}
	lane := laneWith(unassigned)
	unassigned.LaneName = ""

	_, err := GenerateLane(lane, &StartArea{Name: "Main"}, Config{Seed: 1})
	if err == nil || !strings.Contains(err.Error(), "has not been assigned") {
		t.Errorf("unassigned course: err = %v", err)
	}

	misassigned := &Course{ClassName: "W21", Name: "W21", LaneName: "S9",
		Entries: classEntries("W21", "w1")}
	lane2 := &Lane{Name: "S1", StartTime: MustParseClock("10:00"),
		Interval: 2, Courses: []*Course{misassigned}}
	_, err = GenerateLane(lane2, &StartArea{Name: "Main"}, Config{Seed: 1})
	if err == nil || !strings.Contains(err.Error(), `lane "S9"`) {
		t.Errorf("misassigned course: err = %v", err)
	}
}

func TestGenerateLaneCardNotes(t *testing.T) {
	course := &Course{
		ClassName: "M21",
		Name:      "M21",
		Entries: []Entry{
			{ID: "own", Name: "own", CardNumber: "12345"},
			{ID: "rental", Name: "rental", CardNumber: "", IsRental: true},
			{ID: "nocard", Name: "nocard", CardNumber: ""},
			{ID: "forced", Name: "forced", CardNumber: "999", IsRental: true},
		},
	}
	lane := laneWith(course)
	lane.AffiliationSplit = false

	rows, err := GenerateLane(lane, &StartArea{Name: "Main"}, Config{Seed: 1})
	if err != nil {
		t.Fatalf("GenerateLane: %v", err)
	}

	notes := make(map[string]string)
	for _, row := range rows {
		notes[row.Name] = row.CardNote
	}
	want := map[string]string{
		"own":    CardNoteOwn,
		"rental": CardNoteRental,
		"nocard": CardNoteRental,
		"forced": CardNoteRental,
	}
	if !reflect.DeepEqual(notes, want) {
		t.Errorf("card notes = %v; want %v", notes, want)
	}
}

func TestGenerateScheduleMergesByTime(t *testing.T) {
	laneA := laneWith(&Course{ClassName: "M21", Name: "M21",
		Entries: classEntries("M21", "m1", "m2")})
	laneB := laneWith(&Course{ClassName: "W21", Name: "W21",
		Entries: classEntries("W21", "w1", "w2")})
	laneB.Name = "S2"
	for _, c := range laneB.Courses {
		c.LaneName = "S2"
	}
	laneB.StartNumber = 200
	laneB.StartTime = MustParseClock("10:01")

	areas := []*StartArea{{Name: "Main", Lanes: []*Lane{laneA, laneB}}}
	schedule, err := GenerateSchedule(areas, Config{Seed: 4})
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	if len(schedule) != 4 {
		t.Fatalf("got %d rows; want 4", len(schedule))
	}

	// interleaved by time: 10:00 S1, 10:01 S2, 10:02 S1, 10:03 S2
	wantLanes := []string{"S1", "S2", "S1", "S2"}
	for i, row := range schedule {
		if row.LaneName != wantLanes[i] {
			t.Errorf("row %d lane = %s; want %s", i, row.LaneName,
				wantLanes[i])
		}
	}
	if !sort.SliceIsSorted(schedule, func(i, j int) bool {
		return schedule[i].StartTime < schedule[j].StartTime
	}) {
		t.Errorf("schedule is not time-sorted")
	}
}

func TestGenerateScheduleStableOnTies(t *testing.T) {
	laneA := laneWith(&Course{ClassName: "M21", Name: "M21",
		Entries: classEntries("M21", "m1", "m2")})
	laneB := laneWith(&Course{ClassName: "W21", Name: "W21",
		Entries: classEntries("W21", "w1", "w2")})
	laneB.Name = "S2"
	for _, c := range laneB.Courses {
		c.LaneName = "S2"
	}
	laneB.StartNumber = 200

	// identical clocks; generation order (S1 before S2) must survive the sort
	areas := []*StartArea{{Name: "Main", Lanes: []*Lane{laneA, laneB}}}
	schedule, err := GenerateSchedule(areas, Config{Seed: 4})
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	wantLanes := []string{"S1", "S2", "S1", "S2"}
	for i, row := range schedule {
		if row.LaneName != wantLanes[i] {
			t.Errorf("row %d lane = %s; want %s", i, row.LaneName,
				wantLanes[i])
		}
	}
}

func TestGenerateScheduleDeterministic(t *testing.T) {
	build := func() []*StartArea {
		lane := laneWith(&Course{ClassName: "M21", Name: "M21",
			Entries: clubEntries("ClubA", "ClubB", "ClubA", "ClubC",
				"ClubB", "ClubA")})
		lane.AffiliationSplit = true
		return []*StartArea{{Name: "Main", Lanes: []*Lane{lane}}}
	}

	first, err := GenerateSchedule(build(), Config{Seed: 11})
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	second, err := GenerateSchedule(build(), Config{Seed: 11})
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different schedules")
	}
}

func TestGenerateScheduleValidatesFirst(t *testing.T) {
	good := laneWith(&Course{ClassName: "M21", Name: "M21",
		Entries: classEntries("M21", "m1")})
	stray := &Course{ClassName: "W21", Name: "W21",
		Entries: classEntries("W21", "w1")}
	bad := &Lane{Name: "S2", StartTime: MustParseClock("11:00"), Interval: 2,
		Courses: []*Course{stray}}

	areas := []*StartArea{{Name: "Main", Lanes: []*Lane{good, bad}}}
	rows, err := GenerateSchedule(areas, Config{Seed: 1})
	if err == nil {
		t.Fatalf("want placement error, got %d rows", len(rows))
	}
	if rows != nil {
		t.Errorf("failed generation returned rows: %v", rows)
	}
}

func TestGenerateScheduleEmpty(t *testing.T) {
	schedule, err := GenerateSchedule(nil, Config{Seed: 1})
	if err != nil {
		t.Fatalf("GenerateSchedule(nil): %v", err)
	}
	if len(schedule) != 0 {
		t.Errorf("got %d rows; want 0", len(schedule))
	}
}

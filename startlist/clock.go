/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package startlist

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a time of day stored as seconds since midnight. Values past
// 24h are legal (a lane running past midnight) and sort chronologically;
// String wraps the displayed hour.
type Clock int

// ParseClock accepts HH:MM and HH:MM:SS, plus the semicolon variants some
// JOY configuration exports use (HH;MM, HH;MM;SS).
func ParseClock(s string) (Clock, error) {
	norm := strings.ReplaceAll(strings.TrimSpace(s), ";", ":")
	parts := strings.Split(norm, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("cannot parse time %q", s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, fmt.Errorf("cannot parse time %q: %w", s, err)
		}
		nums[i] = v
	}

	hour, min := nums[0], nums[1]
	sec := 0
	if len(nums) == 3 {
		sec = nums[2]
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("cannot parse time %q: out of range", s)
	}

	return Clock(hour*3600 + min*60 + sec), nil
}

// MustParseClock is ParseClock for static times; it panics on bad input.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// AddMinutes returns the clock advanced by m minutes.
func (c Clock) AddMinutes(m int) Clock {
	return c + Clock(m*60)
}

// MinutesApart returns the absolute difference between two clocks in whole
// minutes, rounding down.
func MinutesApart(a, b Clock) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d / 60
}

func (c Clock) String() string {
	sec := int(c)
	h := (sec / 3600) % 24
	m := (sec / 60) % 60
	s := sec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Short renders HH:MM, the form used in lane configuration.
func (c Clock) Short() string {
	sec := int(c)
	return fmt.Sprintf("%02d:%02d", (sec/3600)%24, (sec/60)%60)
}

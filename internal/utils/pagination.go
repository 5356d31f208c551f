// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"strconv"
	"strings"
)

// LimitParam parses a "limit"-style query value. Empty or unparsable input
// yields def; the result is clamped to [1, max]. A max <= 0 leaves the upper
// bound open.
//
// Example:
//
//	n := utils.LimitParam("10", 5, 50)  // 10
//	n = utils.LimitParam("", 5, 50)     // 5
//	n = utils.LimitParam("500", 5, 50)  // 50
//	n = utils.LimitParam("-3", 5, 50)   // 1
func LimitParam(raw string, def, max int) int {
	n := def
	if s := strings.TrimSpace(raw); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			n = v
		}
	}
	if n < 1 {
		n = 1
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}

// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

// Package query contains small helpers for parsing URL query parameters.
package query

import (
	"strconv"
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Multi flattens repeated query parameter values, splitting each on commas.
//
// Both ?genre=drama&genre=comedy and ?genre=drama,comedy yield the same result.
func Multi(vals []string) []string {
	var res []string
	for _, v := range vals {
		res = append(res, StringSlice(v)...)
	}
	return res
}

// Int parses an optional integer query value. The second return reports
// whether a valid integer was present.
func Int(val string) (int, bool) {
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minhngyn/opusdb/pkg/slug"
)

/*
TestFrom covers the Unicode-to-slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Movies", "movies"},
		{"spaces", "Science Fiction", "science-fiction"},
		{"accents", "Café Molière", "cafe-moliere"},
		{"punctuation", "Rock & Roll!", "rock-roll"},
		{"multiple_hyphens", "a -- b", "a-b"},
		{"leading_trailing", "  trimmed  ", "trimmed"},
		{"digits", "Top 10 Albums", "top-10-albums"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}

// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minhngyn/opusdb/pkg/query"
)

func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Equal(t, []string{"drama"}, query.StringSlice("drama"))
	assert.Equal(t, []string{"drama", "comedy"}, query.StringSlice("drama, comedy"))
	assert.Equal(t, []string{"a", "b"}, query.StringSlice("a,,b,"))
}

func TestMulti(t *testing.T) {
	// Repeated params and comma-separated values are equivalent.
	assert.Equal(t, []string{"drama", "comedy"}, query.Multi([]string{"drama", "comedy"}))
	assert.Equal(t, []string{"drama", "comedy"}, query.Multi([]string{"drama,comedy"}))
	assert.Nil(t, query.Multi(nil))
}

func TestInt(t *testing.T) {
	value, ok := query.Int("1994")
	assert.True(t, ok)
	assert.Equal(t, 1994, value)

	_, ok = query.Int("")
	assert.False(t, ok)

	_, ok = query.Int("abc")
	assert.False(t, ok)
}

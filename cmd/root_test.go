package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/swedash/pkg/source"
)

func TestParseUntil(t *testing.T) {
	got, err := parseUntil("2026-01-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), got)

	got, err = parseUntil("now")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), got, time.Minute)

	_, err = parseUntil("yesterday-ish")
	assert.Error(t, err)
}

func TestNewSource(t *testing.T) {
	src, err := newSource(context.Background(), &rootOptions{source: sourceSample, loadDelay: time.Second})
	require.NoError(t, err)
	assert.Equal(t, source.NewStatic(time.Second), src)

	_, err = newSource(context.Background(), &rootOptions{source: sourceGitHub})
	assert.Error(t, err)
}

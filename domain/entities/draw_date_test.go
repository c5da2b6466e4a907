package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawDates(t *testing.T) {
	t.Run("parse and format round-trip", func(t *testing.T) {
		parsed, err := ParseDrawDate("2026-08-31")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), parsed)
		assert.Equal(t, "2026-08-31", FormatDrawDate(parsed))
	})

	t.Run("parse rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "31-08-2026", "2026/08/31", "2026-13-01", "today"} {
			_, err := ParseDrawDate(s)
			assert.Error(t, err, "input %q", s)
		}
	})

	t.Run("truncate drops the time of day", func(t *testing.T) {
		late := time.Date(2026, 8, 31, 23, 59, 59, 999, time.UTC)
		assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), TruncateToDrawDate(late))
	})

	t.Run("truncate converts to UTC first", func(t *testing.T) {
		jst := time.FixedZone("JST", 9*60*60)
		// 2026-09-01 08:00 JST is still 2026-08-31 in UTC.
		morning := time.Date(2026, 9, 1, 8, 0, 0, 0, jst)
		assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), TruncateToDrawDate(morning))
	})
}

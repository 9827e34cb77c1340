package analytics_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/eonet-tracker/internal/analytics"
	"github.com/couchcryptid/eonet-tracker/internal/domain"
)

func TestEngine_Trends_MonthlyGrowth(t *testing.T) {
	events := make([]domain.Event, 0, 8)
	for i := 0; i < 3; i++ {
		events = append(events, wildfire(fmt.Sprintf("jan-%d", i), fmt.Sprintf("2024-01-%02d", i+1), 2))
	}
	for i := 0; i < 5; i++ {
		events = append(events, wildfire(fmt.Sprintf("feb-%d", i), fmt.Sprintf("2024-02-%02d", i+1), 2))
	}
	e := newEngine(events...)

	tr := e.Trends("", analytics.PeriodMonthly)
	assert.Equal(t, []string{"2024-01", "2024-02"}, tr.Periods)
	assert.Equal(t, []int{3, 5}, tr.Counts)
	assert.Equal(t, 1.0, tr.Trend)
	assert.Equal(t, 4.0, tr.Average)
	assert.Equal(t, 5, tr.Max)
	assert.Equal(t, 3, tr.Min)
}

func TestEngine_Trends_DecliningSlope(t *testing.T) {
	e := newEngine(
		wildfire("a", "2024-01-01", 1),
		wildfire("b", "2024-01-02", 1),
		wildfire("c", "2024-01-03", 1),
		wildfire("d", "2024-01-04", 1),
		wildfire("e", "2024-02-01", 1),
	)

	tr := e.Trends("", analytics.PeriodMonthly)
	assert.Equal(t, []int{4, 1}, tr.Counts)
	assert.Equal(t, -1.5, tr.Trend)
}

func TestEngine_Trends_SingleBucketHasZeroSlope(t *testing.T) {
	e := newEngine(wildfire("a", "2024-01-01", 1), wildfire("b", "2024-01-20", 1))

	tr := e.Trends("", analytics.PeriodMonthly)
	assert.Equal(t, []string{"2024-01"}, tr.Periods)
	assert.Zero(t, tr.Trend)
	assert.Equal(t, 2.0, tr.Average)
	assert.Equal(t, 2, tr.Max)
	assert.Equal(t, 2, tr.Min)
}

func TestEngine_Trends_Empty(t *testing.T) {
	e := newEngine()

	tr := e.Trends("", analytics.PeriodMonthly)
	assert.NotNil(t, tr.Periods)
	assert.Empty(t, tr.Periods)
	assert.NotNil(t, tr.Counts)
	assert.Empty(t, tr.Counts)
	assert.Zero(t, tr.Trend)
	assert.Zero(t, tr.Average)
	assert.Zero(t, tr.Max)
	assert.Zero(t, tr.Min)
}

func TestEngine_Trends_WeeklyISOKeys(t *testing.T) {
	e := newEngine(
		wildfire("a", "2024-01-01", 1), // Monday of ISO week 1
		wildfire("b", "2024-01-08", 1),
		wildfire("c", "2023-01-01", 1), // Sunday, belongs to ISO 2022-W52
	)

	tr := e.Trends("", analytics.PeriodWeekly)
	assert.Equal(t, []string{"2024-W01", "2024-W02", "2022-W52"}, tr.Periods,
		"buckets appear in first-seen order, not sorted")
	assert.Equal(t, []int{1, 1, 1}, tr.Counts)
}

func TestEngine_Trends_DailyAndUnknownPeriods(t *testing.T) {
	e := newEngine(
		wildfire("a", "2024-03-01", 1),
		wildfire("b", "2024-03-01", 1),
		wildfire("c", "2024-03-02", 1),
	)

	daily := e.Trends("", analytics.PeriodDaily)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02"}, daily.Periods)
	assert.Equal(t, []int{2, 1}, daily.Counts)

	unknown := e.Trends("", analytics.Period("hourly"))
	assert.Equal(t, daily, unknown, "unrecognized periods bucket daily")
}

func TestEngine_Trends_EmptyPeriodDefaultsMonthly(t *testing.T) {
	e := newEngine(wildfire("a", "2024-03-01", 1), wildfire("b", "2024-04-01", 1))

	assert.Equal(t, e.Trends("", analytics.PeriodMonthly), e.Trends("", ""))
}

func TestEngine_Trends_CategoryFilter(t *testing.T) {
	e := newEngine(
		wildfire("w1", "2024-01-05", 1),
		storm("s1", "2024-01-10", 50),
		wildfire("w2", "2024-02-07", 1),
	)

	tr := e.Trends("wildfires", analytics.PeriodMonthly)
	assert.Equal(t, []string{"2024-01", "2024-02"}, tr.Periods)
	assert.Equal(t, []int{1, 1}, tr.Counts)

	none := e.Trends("drought", analytics.PeriodMonthly)
	require.Empty(t, none.Periods)
	assert.Zero(t, none.Average)
}

func TestEngine_Trends_SkipsEventsWithoutDates(t *testing.T) {
	noFrames := domain.Event{
		ID:         "nodate",
		Categories: []domain.Category{{ID: "wildfires", Title: "Wildfires"}},
	}
	e := newEngine(noFrames, wildfire("ok", "2024-01-05", 1))

	tr := e.Trends("", analytics.PeriodMonthly)
	assert.Equal(t, []string{"2024-01"}, tr.Periods)
	assert.Equal(t, []int{1}, tr.Counts)
}

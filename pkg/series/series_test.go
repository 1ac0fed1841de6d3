package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample_HasFiveMonthsInOrder(t *testing.T) {
	t.Parallel()

	s := Sample()

	assert.Equal(t, "value", s.Name())
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May"}, s.Labels())
	assert.Equal(t, []float64{400, 300, 600, 800, 500}, s.Values())
	assert.Equal(t, 800.0, s.Max())
	assert.Equal(t, 300.0, s.Min())
}

func TestSample_IsImmutable_When_CallerMutatesCopies(t *testing.T) {
	t.Parallel()

	s := Sample()
	pts := s.Points()
	pts[0].Value = -1
	vals := s.Values()
	vals[1] = -1

	assert.Equal(t, 400.0, s.At(0).Value)
	assert.Equal(t, 300.0, s.At(1).Value)
	assert.Equal(t, Sample(), s)
}

func TestSeries_MinMax_ReturnZero_When_Empty(t *testing.T) {
	t.Parallel()

	s := New("empty")
	assert.Zero(t, s.Max())
	assert.Zero(t, s.Min())
}

func TestGenerateIndex_UsesMonthEndsEndingBeforeReferenceDate(t *testing.T) {
	t.Parallel()

	ts := GenerateIndex(GenOptions{})
	require.Equal(t, DefaultIndexMonths, ts.Len())

	first := ts.At(0).Date
	last, ok := ts.Last()
	require.True(t, ok)

	assert.Equal(t, time.Date(2015, time.January, 31, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), last.Date)
	assert.Equal(t, DefaultIndexName, ts.Name())
}

func TestGenerateIndex_IsDeterministicPerSeed(t *testing.T) {
	t.Parallel()

	a := GenerateIndex(GenOptions{Seed: 7, Months: 24})
	b := GenerateIndex(GenOptions{Seed: 7, Months: 24})
	c := GenerateIndex(GenOptions{Seed: 8, Months: 24})

	assert.Equal(t, a.Values(), b.Values())
	assert.NotEqual(t, a.Values(), c.Values())
}

func TestGenerateIndex_ZeroSeedSelectsDefault(t *testing.T) {
	t.Parallel()

	zero := GenerateIndex(GenOptions{Months: 24})
	def := GenerateIndex(GenOptions{Seed: DefaultSeed, Months: 24})

	assert.Equal(t, def.Values(), zero.Values())
}

func TestGenerateIndex_StaysNearSeasonalBase(t *testing.T) {
	t.Parallel()

	ts := GenerateIndex(GenOptions{})
	for i, v := range ts.Values() {
		// base spans 25..75; 6 sigma of noise either side is generous
		assert.Greater(t, v, -5.0, "index %d", i)
		assert.Less(t, v, 105.0, "index %d", i)
	}
}

func TestMonthEnds_StartsStrictlyAfterDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		after time.Time
		want  []time.Time
	}{
		{
			name:  "after a month end",
			after: time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
			want: []time.Time{
				time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
				time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "mid month",
			after: time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
			want: []time.Time{
				time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
				time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MonthEnds(tc.after, 2))
		})
	}
}

func TestTail_ClampsToLength(t *testing.T) {
	t.Parallel()

	ts := GenerateIndex(GenOptions{Months: 10})

	assert.Equal(t, 6, ts.Tail(6).Len())
	assert.Equal(t, 10, ts.Tail(50).Len())
	assert.Equal(t, 0, ts.Tail(0).Len())

	tail := ts.Tail(3)
	last, _ := ts.Last()
	tailLast, _ := tail.Last()
	assert.Equal(t, last, tailLast)
}

func TestLabels_FormatsMonthAndYear(t *testing.T) {
	t.Parallel()

	ts := NewTimeSeries("x", Observation{Date: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), Value: 1})
	assert.Equal(t, []string{"Mar 2024"}, ts.Labels())
}

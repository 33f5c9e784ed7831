package resumeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2024, time.May, 17, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		in    string
		year  int
		month time.Month
	}{
		{"2021", 2021, time.January},
		{"2021-06", 2021, time.June},
		{"06/2021", 2021, time.June},
		{"Mar 2020", 2020, time.March},
		{"September 2019", 2019, time.September},
		{"Sept. 2019", 2019, time.September},
		{"2020-03-15", 2020, time.March},
		{"Present", 2024, time.May},
		{"current", 2024, time.May},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in, now)
			require.True(t, ok)
			assert.Equal(t, tt.year, got.Year())
			assert.Equal(t, tt.month, got.Month())
			assert.Equal(t, 1, got.Day())
		})
	}

	for _, bad := range []string{"", "sometime", "13/2020"} {
		_, ok := ParseDate(bad, now)
		assert.False(t, ok, bad)
	}
}

func TestMonthDiff(t *testing.T) {
	a := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 17, MonthDiff(a, b))
	assert.Equal(t, -17, MonthDiff(b, a))
}

func TestFindDateRange(t *testing.T) {
	tests := []struct {
		in      string
		want    DateRange
		matched bool
	}{
		{"Jan 2020 – Present", DateRange{Start: "Jan 2020", End: "Present", Current: true}, true},
		{"2015 - 2019", DateRange{Start: "2015", End: "2019"}, true},
		{"2015-2019", DateRange{Start: "2015", End: "2019"}, true},
		{"03/2018 to 11/2021", DateRange{Start: "03/2018", End: "11/2021"}, true},
		{"2021-01 until now", DateRange{Start: "2021-01", End: "now", Current: true}, true},
		{"Call (555) 111-2222", DateRange{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, _, ok := findDateRange(tt.in)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripDates(t *testing.T) {
	assert.Equal(t, "ABC University", stripDates("ABC University 2015 - 2019"))
	assert.Equal(t, "Acme, Remote,", stripDates("Acme, Remote, Jan 2020 - Present"))
	assert.True(t, isDateOnly("Jan 2020 - Present"))
	assert.False(t, isDateOnly("Austin, TX 2020 - 2021"))
}

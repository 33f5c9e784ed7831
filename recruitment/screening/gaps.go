package screening

import (
	"fmt"
	"sort"
	"time"

	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumeparse"
)

type period struct {
	start time.Time
	end   time.Time
}

// DetectGaps finds periods between jobs with no reported employment.
//
// Dates are read at month precision, an end month counting as worked through.
// A gap is at least one whole month between the end of the latest older job and
// the start of the next one; its length is MonthDiff(end, start) - 1, so
// Jan 2021 -> Jun 2022 is the 16 months Feb 2021 - May 2022. Entries without a
// readable start, with an unreadable end, or ending before they start are
// skipped. Overlapping jobs never produce a gap.
func DetectGaps(experience []resume.Experience, now time.Time) GapAnalysis {
	result := GapAnalysis{GapPeriods: []string{}}

	periods := make([]period, 0, len(experience))
	for _, e := range experience {
		if p, ok := toPeriod(e, now); ok {
			periods = append(periods, p)
		}
	}
	if len(periods) < 2 {
		return result
	}

	// newest first
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].start.After(periods[j].start)
	})

	// latestEnd[i] is the latest end among periods[i:]
	latestEnd := make([]time.Time, len(periods))
	latestEnd[len(periods)-1] = periods[len(periods)-1].end
	for i := len(periods) - 2; i >= 0; i-- {
		latestEnd[i] = maxTime(periods[i].end, latestEnd[i+1])
	}

	for i := 0; i < len(periods)-1; i++ {
		prevEnd := latestEnd[i+1]
		months := resumeparse.MonthDiff(prevEnd, periods[i].start) - 1
		if months < 1 {
			continue
		}
		first := prevEnd.AddDate(0, 1, 0)
		last := periods[i].start.AddDate(0, -1, 0)
		result.GapPeriods = append(result.GapPeriods, formatGap(first, last))
		result.TotalGapMonths += months
	}

	result.HasGaps = len(result.GapPeriods) > 0
	return result
}

func toPeriod(e resume.Experience, now time.Time) (period, bool) {
	start, ok := resumeparse.ParseDate(e.StartDate, now)
	if !ok {
		return period{}, false
	}

	var end time.Time
	switch {
	case e.Current || resumeparse.IsPresent(e.EndDate):
		end, _ = resumeparse.ParseDate("present", now)
	default:
		end, ok = resumeparse.ParseDate(e.EndDate, now)
		if !ok {
			return period{}, false
		}
	}

	if end.Before(start) {
		return period{}, false
	}
	return period{start: start, end: end}, true
}

// workedMonths is the inclusive month count of a period
func workedMonths(p period) int {
	return resumeparse.MonthDiff(p.start, p.end) + 1
}

func formatGap(first, last time.Time) string {
	return fmt.Sprintf("%s %d - %s %d", first.Month().String()[:3], first.Year(), last.Month().String()[:3], last.Year())
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

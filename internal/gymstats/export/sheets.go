package export

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/stats"
	"github.com/2beens/gymtracker/internal/gymstats/workouts"
)

const (
	displayDayLayout  = "Mon, Jan 2"
	displayDateLayout = "Jan 2"
)

// usDate formats a record date like 1/10/2024.
func usDate(date string) string {
	t, err := workouts.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("1/2/2006")
}

func formatDate(date, layout string) string {
	t, err := workouts.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}

// weeksAgo counts started weeks between the record date and now.
func weeksAgo(date string, now time.Time) int {
	t, err := workouts.ParseDate(date)
	if err != nil {
		return 0
	}
	return int(math.Ceil(now.Sub(t).Hours() / (24 * 7)))
}

func percent(part, total float64) string {
	return fmt.Sprintf("%.1f%%", stats.SafeDiv(part, total)*100)
}

func r1(v float64) float64 {
	return stats.Round1(v)
}

func exerciseLog(name string, ds *stats.Dataset, complete bool) Sheet {
	sheet := Sheet{
		Name:   name,
		Header: []string{"Date", "Exercise Name", "Body Part", "Set Number", "Reps", "Weight (kg)", "Volume (kg)", "Day of Week"},
	}
	if complete {
		sheet.Header = append(sheet.Header, "Week Number", "Month")
	} else {
		sheet.Header = append(sheet.Header, "Week")
	}

	for _, rec := range ds.Filtered {
		t, _ := workouts.ParseDate(rec.Date)
		for i, s := range rec.Sets {
			row := []any{usDate(rec.Date), rec.Name, rec.BodyPart, i + 1, s.Reps, s.Weight, r1(s.Volume()), t.Weekday().String()}
			if complete {
				row = append(row, weeksAgo(rec.Date, ds.Now), t.Format("January 2006"))
			} else {
				row = append(row, fmt.Sprintf("Week %d", weeksAgo(rec.Date, ds.Now)))
			}
			sheet.add(row...)
		}
	}
	return sheet
}

func exerciseProgressRows(ds *stats.Dataset) Sheet {
	sheet := Sheet{
		Name:   "Exercise Progress",
		Header: []string{"Exercise Name", "Date", "Max Weight (kg)", "Total Reps", "Volume (kg)"},
	}
	for _, name := range ds.ExerciseNames() {
		for _, p := range ds.ExerciseProgress(name) {
			sheet.add(name, usDate(p.Date), p.MaxWeight, p.TotalReps, r1(p.Volume))
		}
	}
	return sheet
}

func weightSheet(name string, header []string, ds *stats.Dataset, row func(stats.WeightPoint) []any) (Sheet, bool) {
	if len(ds.Weights) == 0 {
		return Sheet{}, false
	}
	sheet := Sheet{Name: name, Header: header}
	for _, p := range stats.WeightProgress(ds.Weights) {
		sheet.add(row(p)...)
	}
	return sheet, true
}

func dataSheets(ds *stats.Dataset) []Sheet {
	sheets := []Sheet{exerciseLog("Exercise Details", ds, false)}

	summary := Sheet{
		Name:   "Body Part Summary",
		Header: []string{"Body Part", "Total Exercises", "Total Sets", "Total Volume (kg)", "Average Volume per Exercise"},
	}
	for _, st := range ds.BodyParts() {
		summary.add(st.BodyPart, st.Exercises, st.Sets, r1(st.Volume), r1(stats.SafeDiv(st.Volume, float64(st.Exercises))))
	}
	sheets = append(sheets, summary, exerciseProgressRows(ds))

	daily := Sheet{
		Name:   "Daily Progress",
		Header: []string{"Date", "Day", "Total Volume (kg)", "Exercise Count", "Total Sets"},
	}
	for _, d := range ds.Daily() {
		daily.add(usDate(d.Date), formatDate(d.Date, displayDayLayout), r1(d.Volume), d.Exercises, d.Sets)
	}
	sheets = append(sheets, daily)

	weights, ok := weightSheet("Weight Progress", []string{"Date", "Weight (kg)", "Change from Previous"}, ds,
		func(p stats.WeightPoint) []any {
			return []any{usDate(p.Date), p.Weight, r1(p.ChangeFromPrevious)}
		})
	if ok {
		sheets = append(sheets, weights)
	}
	return sheets
}

func chartSheets(ds *stats.Dataset) []Sheet {
	timeline := ds.Timeline()
	volume := Sheet{
		Name:   "Volume Over Time",
		Header: []string{"Date", "Display Date", "Total Volume (kg)", "Exercise Count"},
	}
	for _, p := range timeline {
		volume.add(usDate(p.Date), formatDate(p.Date, displayDateLayout), r1(p.Volume), p.Exercises)
	}

	daily := Sheet{
		Name:   "Daily Bar Chart",
		Header: []string{"Date", "Day", "Volume (kg)", "Exercises", "Sets"},
	}
	for _, d := range ds.Daily() {
		daily.add(usDate(d.Date), formatDate(d.Date, displayDayLayout), r1(d.Volume), d.Exercises, d.Sets)
	}

	rollup := ds.BodyParts()
	total := rollup.TotalVolume()
	distribution := Sheet{
		Name:   "Body Part Distribution",
		Header: []string{"Body Part", "Exercise Count", "Total Sets", "Volume (kg)", "Percentage of Total Volume"},
	}
	for _, st := range rollup {
		distribution.add(st.BodyPart, st.Exercises, st.Sets, r1(st.Volume), percent(st.Volume, total))
	}

	sheets := []Sheet{volume, daily, distribution}

	weights, ok := weightSheet("Weight Chart Data", []string{"Date", "Weight (kg)", "Change from Start", "Trend"}, ds,
		func(p stats.WeightPoint) []any {
			return []any{usDate(p.Date), p.Weight, r1(p.ChangeFromStart), p.Trend}
		})
	if ok {
		sheets = append(sheets, weights)
	}

	trends := Sheet{
		Name: "Exercise Trends",
		Header: []string{"Exercise Name", "First Session Date", "Last Session Date", "Sessions Count",
			"Weight Increase (kg)", "Volume Increase (kg)", "Average Weight per Session", "Improvement Rate"},
	}
	for _, t := range stats.Trends(ds.Filtered, 2) {
		trends.add(t.ExerciseName, usDate(t.FirstDate), usDate(t.LastDate), t.Sessions,
			r1(t.WeightIncrease), r1(t.VolumeIncrease), r1(t.AvgWeight), t.Trend)
	}
	return append(sheets, trends)
}

func completeSheets(ds *stats.Dataset) []Sheet {
	sheets := []Sheet{exerciseLog("Complete Exercise Log", ds, true)}

	daily := Sheet{
		Name: "Daily Progress",
		Header: []string{"Date", "Day", "Total Volume (kg)", "Exercise Count", "Total Sets",
			"Average Volume per Exercise", "Average Volume per Set"},
	}
	for _, d := range ds.Daily() {
		daily.add(usDate(d.Date), formatDate(d.Date, displayDayLayout), r1(d.Volume), d.Exercises, d.Sets,
			r1(stats.SafeDiv(d.Volume, float64(d.Exercises))), r1(stats.SafeDiv(d.Volume, float64(d.Sets))))
	}
	sheets = append(sheets, daily)

	rollup := ds.BodyParts()
	total := rollup.TotalVolume()
	analysis := Sheet{
		Name: "Body Part Analysis",
		Header: []string{"Body Part", "Total Exercises", "Total Sets", "Total Volume (kg)",
			"Average Volume per Exercise", "Average Volume per Set", "Percentage of Total Volume", "Sessions per Week"},
	}
	for _, st := range rollup {
		analysis.add(st.BodyPart, st.Exercises, st.Sets, r1(st.Volume),
			r1(stats.SafeDiv(st.Volume, float64(st.Exercises))), r1(stats.SafeDiv(st.Volume, float64(st.Sets))),
			percent(st.Volume, total), r1(ds.SessionsPerWeek(st.Exercises)))
	}
	sheets = append(sheets, analysis)

	progress := Sheet{
		Name: "Exercise Progress",
		Header: []string{"Exercise Name", "First Session", "Last Session", "Total Sessions",
			"Starting Weight (kg)", "Current Weight (kg)", "Weight Increase (kg)", "Weight Increase (%)",
			"Starting Volume (kg)", "Current Volume (kg)", "Volume Increase (kg)",
			"Average Weight (kg)", "Average Volume (kg)", "Progress Trend", "Sessions per Week"},
	}
	for _, t := range stats.Trends(ds.Filtered, 1) {
		progress.add(t.ExerciseName, usDate(t.FirstDate), usDate(t.LastDate), t.Sessions,
			t.StartWeight, t.CurrentWeight, r1(t.WeightIncrease), fmt.Sprintf("%.1f%%", t.WeightIncreasePct),
			r1(t.StartVolume), r1(t.CurrentVolume), r1(t.VolumeIncrease),
			r1(t.AvgWeight), r1(t.AvgVolume), t.Trend, r1(ds.SessionsPerWeek(t.Sessions)))
	}
	sheets = append(sheets, progress)

	series := ds.Timeline()
	timeline := Sheet{
		Name: "Progress Timeline",
		Header: []string{"Date", "Display Date", "Total Volume (kg)", "Exercise Count",
			"Moving Average Volume (7 days)", "Weekly Total"},
	}
	for i, p := range series {
		timeline.add(usDate(p.Date), formatDate(p.Date, displayDateLayout), r1(p.Volume), p.Exercises,
			r1(stats.MovingAverage(series, i, 3)), r1(stats.WeekTotal(series, i)))
	}
	sheets = append(sheets, timeline)

	weights, ok := weightSheet("Weight Progress",
		[]string{"Date", "Weight (kg)", "Change from Previous (kg)", "Change from Start (kg)",
			"Change from Start (%)", "Trend", "BMI (estimated 175cm)"}, ds,
		func(p stats.WeightPoint) []any {
			return []any{usDate(p.Date), p.Weight, r1(p.ChangeFromPrevious), r1(p.ChangeFromStart),
				fmt.Sprintf("%.1f%%", p.ChangeFromStartPct), p.Trend, r1(p.BMI)}
		})
	if ok {
		sheets = append(sheets, weights)
	}

	weekly := Sheet{
		Name: "Weekly Summary",
		Header: []string{"Week Period", "Total Exercises", "Total Sets", "Total Volume (kg)",
			"Body Parts Trained", "Body Parts List", "Average Volume per Exercise",
			"Average Volume per Set", "Workout Days"},
	}
	for _, w := range ds.Weekly() {
		weekly.add(usDate(w.WeekStart), w.Exercises, w.Sets, r1(w.Volume), len(w.BodyParts),
			strings.Join(w.BodyParts, ", "), r1(stats.SafeDiv(w.Volume, float64(w.Exercises))),
			r1(stats.SafeDiv(w.Volume, float64(w.Sets))), w.WorkoutDays)
	}
	return append(sheets, weekly)
}

// Package schedule holds the static weekly training plan and the exercise
// catalog the clients pick from.
package schedule

import (
	"strings"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
)

var defaultWeek = []workouts.DayTemplate{
	{
		Day:       "Monday",
		DayNumber: 1,
		Focus:     "Chest, Back, Shoulders",
		WarmUp: []string{
			"Arm circles forward & backward - 30 sec each",
			"Shoulder shrugs - 20 reps",
			"Push-ups (slow, controlled) - 10-15 reps",
			"Cat-cow stretch - 1 min",
			"Band pull-aparts - 15 reps",
			"Torso twists - 1 min",
		},
		Exercises: []string{
			"Flat bench press (barbell or dumbbell) - 4x10-12",
			"Incline bench press - 3x10-12",
			"Dumbbell fly - 3x12-15",
			"Push-ups variations - 3x12-15",
			"Pull-ups / Assisted pull-ups - 3x8-12",
			"Bent-over barbell or dumbbell rows - 3x10-12",
			"Lat pulldown - 3x10-12",
			"Seated cable row - 3x12",
			"Overhead shoulder press - 3x10-12",
			"Lateral raises - 3x12-15",
			"Front raises - 3x12",
			"Reverse fly (rear delts) - 3x12-15",
		},
		CoolDown: []string{
			"Chest stretch on wall/door frame - 30 sec each side",
			"Cross-body shoulder stretch - 30 sec each arm",
			"Child's pose - 1-2 min",
			"Cat-cow stretch - 1 min",
			"Thread-the-needle stretch - 30 sec each side",
		},
	},
	{
		Day:       "Tuesday",
		DayNumber: 2,
		Focus:     "Legs, Arms, Core",
		WarmUp: []string{
			"Jumping jacks - 1 min",
			"High knees - 30 sec",
			"Bodyweight squats - 15 reps",
			"Arm circles/swings - 30 sec",
			"Lunges in place - 10 each leg",
			"Hip circles - 1 min",
		},
		Exercises: []string{
			"Barbell/Dumbbell squats - 4x12",
			"Walking lunges - 3x12 each leg",
			"Romanian deadlifts - 3x10",
			"Step-ups (with dumbbells) - 3x12 each leg",
			"Calf raises - 3x20",
			"Dumbbell curls - 3x12-15",
			"Hammer curls - 3x12",
			"Tricep dips - 3x12",
			"Overhead dumbbell triceps extension - 3x12",
			"Plank - 3x30-60 sec",
			"Side plank - 2x30 sec each side",
			"Russian twists (with weight) - 3x15 each side",
			"Leg raises - 3x12-15",
			"Bicycle crunches - 3x20",
		},
		CoolDown: []string{
			"Standing quad stretch - 30 sec each leg",
			"Hamstring stretch (seated or lying) - 30 sec each leg",
			"Triceps stretch - 30 sec each arm",
			"Side stretch - 30 sec each side",
			"Cobra stretch (abs) - 30 sec",
		},
	},
	{
		Day:       "Wednesday",
		DayNumber: 3,
		Focus:     "Biceps, Triceps, Glutes",
		WarmUp: []string{
			"Arm swings/circles - 30 sec",
			"Light squats - 10-15 reps",
			"Hip circles - 1 min",
			"Push-ups - 10-12 reps",
			"Glute bridges - 10-15 reps",
			"Dynamic leg swings - 10 each leg",
		},
		Exercises: []string{
			"Dumbbell curls - 3x12",
			"Concentration curls - 3x10 each arm",
			"Barbell curls - 3x12",
			"Cable curls - 3x12",
			"Tricep kickbacks - 3x12",
			"Overhead dumbbell triceps extension - 3x12",
			"Close-grip bench press - 3x10-12",
			"Rope pushdowns - 3x12",
			"Hip thrusts - 4x12-15",
			"Glute bridges - 3x15",
			"Donkey kicks - 3x15 each leg",
			"Bulgarian split squats - 3x10 each leg",
			"Side-lying leg raises - 3x15 each side",
		},
		CoolDown: []string{
			"Seated hamstring/glute stretch - 30 sec each leg",
			"Figure-four stretch - 30 sec each side",
			"Biceps wall stretch - 30 sec each arm",
			"Overhead triceps stretch - 30 sec each arm",
			"Pigeon pose (glutes/hips) - 30 sec each side",
		},
	},
	{
		Day:       "Thursday",
		DayNumber: 4,
		Focus:     "Active Recovery + Flexibility",
		WarmUp: []string{
			"Gentle arm circles - 30 sec",
			"Neck rolls - 30 sec",
			"Light walking in place - 1 min",
		},
		Exercises: []string{
			"Light Walking - 20-30 min",
			"Dynamic Stretching",
			"Yoga Flow",
			"Foam Rolling",
			"Meditation - 10 min",
		},
		CoolDown: []string{
			"Full body stretching routine - 15-20 min",
			"Deep breathing exercises - 5 min",
		},
	},
	{
		Day:       "Friday",
		DayNumber: 5,
		Focus:     "Upper Body Power + Core",
		WarmUp: []string{
			"Arm swings - 30 sec",
			"Shoulder rolls - 20 reps",
			"Light push-ups - 8-10 reps",
			"Torso twists - 1 min",
		},
		Exercises: []string{
			"Incline Dumbbell Press - 4x8-10",
			"Pull-ups/Lat Pulldown - 4x8-12",
			"Overhead Press - 3x10-12",
			"Bent-over Row - 3x10-12",
			"Dips - 3x10-15",
			"Cable Curls - 3x12",
			"Plank - 3x45-60 sec",
			"Russian Twists - 3x20",
		},
		CoolDown: []string{
			"Upper body stretching - 10-15 min",
			"Child's pose - 2 min",
		},
	},
	{
		Day:       "Saturday",
		DayNumber: 6,
		Focus:     "Full Body + Conditioning",
		WarmUp: []string{
			"Full body dynamic warm-up - 5-8 min",
			"Joint mobility routine",
		},
		Exercises: []string{
			"Deadlifts - 4x8-10",
			"Squats - 4x10-12",
			"Push-ups - 3x12-15",
			"Pull-ups - 3x8-12",
			"Lunges - 3x12 each leg",
			"Plank - 3x60 sec",
			"Burpees - 3x8-10",
			"Mountain Climbers - 3x20",
		},
		CoolDown: []string{
			"Full body stretching - 15-20 min",
			"Relaxation - 5 min",
		},
	},
	{
		Day:       "Sunday",
		DayNumber: 7,
		Focus:     "Rest + Recovery",
		WarmUp:    []string{"Gentle movements - 5 min"},
		Exercises: []string{
			"Complete Rest or Light Activity",
			"Gentle Yoga",
			"Meditation",
			"Meal Prep",
			"Recovery Planning",
		},
		CoolDown: []string{"Relaxation and preparation for next week"},
	},
}

// DefaultWeek returns a copy of the built-in seven day plan, Monday first.
func DefaultWeek() []workouts.DayTemplate {
	week := make([]workouts.DayTemplate, len(defaultWeek))
	for i, d := range defaultWeek {
		d.WarmUp = append([]string(nil), d.WarmUp...)
		d.Exercises = append([]string(nil), d.Exercises...)
		d.CoolDown = append([]string(nil), d.CoolDown...)
		week[i] = d
	}
	return week
}

// DayNumber maps a weekday onto the plan numbering, Monday 1 to Sunday 7.
func DayNumber(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

func Today(week []workouts.DayTemplate, now time.Time) (workouts.DayTemplate, bool) {
	return ByNumber(week, DayNumber(now))
}

func ByNumber(week []workouts.DayTemplate, n int) (workouts.DayTemplate, bool) {
	for _, d := range week {
		if d.DayNumber == n {
			return d, true
		}
	}
	return workouts.DayTemplate{}, false
}

// ByDay accepts the day name in any case or its number.
func ByDay(week []workouts.DayTemplate, day string) (workouts.DayTemplate, bool) {
	day = strings.TrimSpace(day)
	for _, d := range week {
		if strings.EqualFold(d.Day, day) {
			return d, true
		}
	}
	if len(day) == 1 && day[0] >= '1' && day[0] <= '7' {
		return ByNumber(week, int(day[0]-'0'))
	}
	return workouts.DayTemplate{}, false
}

package schedule

import (
	"net/url"
	"strings"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
)

// BodyParts is the display order of the catalog groups.
var BodyParts = []string{
	"warmup",
	"chest",
	"back",
	"shoulders",
	"arms",
	"legs",
	"core",
	"glutes",
	"stretches",
}

var catalog = map[string][]string{
	"warmup": {
		"Arm Circles Forward",
		"Arm Circles Backward",
		"Shoulder Shrugs",
		"Push-ups (Slow Controlled)",
		"Cat-Cow Stretch",
		"Band Pull-Aparts",
		"Torso Twists",
		"Jumping Jacks",
		"High Knees",
		"Bodyweight Squats",
		"Arm Swings",
		"Lunges in Place",
		"Hip Circles",
		"Glute Bridges",
		"Dynamic Leg Swings",
	},
	"chest": {
		"Flat Bench Press (Barbell)",
		"Flat Bench Press (Dumbbell)",
		"Incline Bench Press",
		"Incline Dumbbell Press",
		"Decline Bench Press",
		"Dumbbell Fly",
		"Push-ups (Standard)",
		"Push-ups (Incline)",
		"Push-ups (Decline)",
		"Push-ups with Resistance Band",
		"Chest Press Machine",
		"Cable Crossover",
		"Pec Deck Machine",
		"Dumbbell Pullover",
	},
	"back": {
		"Pull-ups",
		"Chin-ups",
		"Assisted Pull-ups",
		"Bent-over Barbell Row",
		"Bent-over Dumbbell Row",
		"Single-Arm Dumbbell Row",
		"Lat Pulldown (Wide Grip)",
		"Lat Pulldown (Reverse Grip)",
		"Seated Cable Row",
		"Seated Cable Row (Neutral Grip)",
		"Seated Cable Row (Wide Grip)",
		"T-Bar Row",
		"Machine Assisted Row",
		"Straight-Arm Pulldown",
	},
	"shoulders": {
		"Overhead Shoulder Press (Dumbbell)",
		"Overhead Barbell Press",
		"Dumbbell Arnold Press",
		"Lateral Raises (Dumbbell)",
		"Lateral Raises (Cable)",
		"Front Raises (Dumbbell)",
		"Front Raises (Cable)",
		"Front Raises (Plate)",
		"Reverse Fly (Rear Delts)",
		"Reverse Pec Deck",
		"Face Pulls",
		"Shrugs (Dumbbell)",
		"Shrugs (Barbell)",
	},
	"arms": {
		"Dumbbell Curls",
		"Hammer Curls",
		"Concentration Curls",
		"Barbell Curls",
		"EZ-Bar Curls",
		"Preacher Curls",
		"Cable Curls",
		"Incline Dumbbell Curls",
		"Tricep Dips",
		"Overhead Dumbbell Triceps Extension",
		"Tricep Kickbacks",
		"Close-grip Bench Press",
		"Tricep Rope Pushdowns",
		"Overhead Rope Extension",
		"Skull Crushers (EZ-Bar)",
		"Skull Crushers (Dumbbell)",
		"Parallel Bar Dips",
	},
	"legs": {
		"Barbell Back Squat",
		"Barbell Front Squat",
		"Dumbbell Squats",
		"Leg Press Machine",
		"Hack Squat Machine",
		"Walking Lunges",
		"Static Lunges (Weighted)",
		"Romanian Deadlifts",
		"Stiff-Leg Deadlifts",
		"Step-ups (Weighted)",
		"Calf Raises (Standing)",
		"Calf Raises (Seated)",
		"Leg Curl Machine",
		"Leg Extension Machine",
		"Bulgarian Split Squats",
	},
	"core": {
		"Plank",
		"Side Plank",
		"Russian Twists",
		"Russian Twists (Weighted)",
		"Leg Raises",
		"Hanging Leg Raises",
		"Bicycle Crunches",
		"Cable Woodchoppers",
		"Ab Crunch Machine",
		"Decline Sit-ups",
		"Stability Ball Rollouts",
		"Side Bends (Dumbbell)",
		"Side Bends (Plate)",
	},
	"glutes": {
		"Hip Thrusts (Barbell)",
		"Glute Bridges",
		"Glute Bridges (Weighted)",
		"Donkey Kicks",
		"Glute Kickbacks (Cable)",
		"Bulgarian Split Squats",
		"Side-lying Leg Raises",
		"Step-ups (Weighted)",
		"Smith Machine Squats",
		"Kettlebell Swings",
		"Abductor Machine",
	},
	"stretches": {
		"Chest Stretch (Wall/Door Frame)",
		"Cross-body Shoulder Stretch",
		"Child's Pose",
		"Thread-the-Needle Stretch",
		"Standing Quad Stretch",
		"Hamstring Stretch (Seated)",
		"Hamstring Stretch (Lying)",
		"Triceps Stretch",
		"Side Stretch",
		"Cobra Stretch",
		"Seated Hamstring/Glute Stretch",
		"Figure-Four Stretch",
		"Biceps Wall Stretch",
		"Overhead Triceps Stretch",
		"Pigeon Pose",
	},
}

var equipmentKeywords = []struct {
	keyword   string
	equipment string
}{
	{"smith machine", "machine"},
	{"dumbbell", "dumbbell"},
	{"barbell", "barbell"},
	{"ez-bar", "barbell"},
	{"t-bar", "barbell"},
	{"bench press", "barbell"},
	{"cable", "cable"},
	{"rope", "cable"},
	{"face pulls", "cable"},
	{"pulldown", "cable"},
	{"machine", "machine"},
	{"pec deck", "machine"},
	{"band", "band"},
	{"kettlebell", "kettlebell"},
	{"plate", "plate"},
}

func equipmentFor(name string) string {
	lower := strings.ToLower(name)
	for _, k := range equipmentKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.equipment
		}
	}
	return "bodyweight"
}

func categoryFor(bodyPart string) string {
	switch bodyPart {
	case "warmup":
		return "warm-up"
	case "stretches":
		return "flexibility"
	default:
		return "strength"
	}
}

// Catalog lists the built-in exercises, all groups in display order when
// bodyPart is empty. Unknown groups yield nothing.
func Catalog(bodyPart string) []workouts.CatalogExercise {
	parts := BodyParts
	if bodyPart != "" {
		parts = []string{strings.ToLower(bodyPart)}
	}

	var res []workouts.CatalogExercise
	for _, part := range parts {
		for _, name := range catalog[part] {
			res = append(res, workouts.CatalogExercise{
				Name:      name,
				BodyPart:  part,
				Category:  categoryFor(part),
				Equipment: equipmentFor(name),
			})
		}
	}
	return res
}

// VideoLink points to a video search for the exercise tutorial.
func VideoLink(exerciseName string) string {
	q := url.QueryEscape(exerciseName + " exercise tutorial")
	return "https://www.google.com/search?q=" + q + "&tbm=vid"
}

// Package diet holds the static vegetarian meal plan and the per-day water
// and meal tracker.
package diet

type Meal struct {
	Key   string   `json:"key"`
	Time  string   `json:"time"`
	Icon  string   `json:"icon"`
	Items []string `json:"items"`
}

type Tip struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Tip   string `json:"tip"`
}

var plan = []Meal{
	{
		Key:  "morning",
		Time: "On waking",
		Icon: "🌅",
		Items: []string{
			"1 glass warm water + lemon + pinch turmeric",
			"5 soaked almonds + 2 walnuts",
		},
	},
	{
		Key:  "breakfast",
		Time: "8:30–9:00 AM",
		Icon: "🍳",
		Items: []string{
			"4 boiled egg whites or paneer bhurji/tofu",
			"1 brown bread or oats with milk",
			"1 banana or apple",
			"Green tea",
		},
	},
	{
		Key:  "midMorning",
		Time: "11 AM",
		Icon: "🍎",
		Items: []string{
			"1 fruit (papaya/orange/guava)",
			"Handful of pumpkin or sunflower seeds",
		},
	},
	{
		Key:  "lunch",
		Time: "1–1:30 PM",
		Icon: "🍛",
		Items: []string{
			"2 multigrain chapatis",
			"1 bowl dal / rajma / chole / soya chunks",
			"1 bowl sabzi (mixed veg / spinach / bhindi)",
			"Salad (carrot + cucumber + lemon)",
			"Buttermilk",
		},
	},
	{
		Key:  "evening",
		Time: "4:30–5:00 PM",
		Icon: "☕",
		Items: []string{
			"Green tea or black coffee",
			"Roasted chana / makhana / sprouts",
		},
	},
	{
		Key:  "dinner",
		Time: "7:30–8:30 PM",
		Icon: "🍲",
		Items: []string{
			"1 bowl vegetable soup or paneer + veggies stir-fry",
			"1 roti / small bowl brown rice",
			"Add olive oil or ghee (1 tsp max)",
		},
	},
	{
		Key:  "beforeBed",
		Time: "Before Bed",
		Icon: "🛏️",
		Items: []string{
			"1 glass warm milk (with turmeric or ashwagandha if possible)",
		},
	},
}

var tips = []Tip{
	{Icon: "💧", Title: "Hydration", Tip: "Drink 3–4 L water daily"},
	{Icon: "🚫", Title: "Avoid", Tip: "Sugar, refined carbs, and fried foods"},
	{Icon: "😴", Title: "Sleep", Tip: "Get 7–8 hours sleep for recovery and hormones"},
	{Icon: "🦷", Title: "Jawline", Tip: "Practice chin tucks (10 reps × 2) daily and chew sugar-free gum (10 min)"},
	{Icon: "🏃", Title: "Posture", Tip: "Stand against wall daily for 2 min, head touching the wall"},
}

// Plan returns a copy of the meals in the order of the day.
func Plan() []Meal {
	meals := make([]Meal, len(plan))
	copy(meals, plan)
	return meals
}

func Tips() []Tip {
	res := make([]Tip, len(tips))
	copy(res, tips)
	return res
}

func IsMeal(key string) bool {
	for _, m := range plan {
		if m.Key == key {
			return true
		}
	}
	return false
}

// CurrentMeal is the meal due at the given hour of the day.
func CurrentMeal(hour int) string {
	switch {
	case hour < 8:
		return "morning"
	case hour < 11:
		return "breakfast"
	case hour < 13:
		return "midMorning"
	case hour < 16:
		return "lunch"
	case hour < 19:
		return "evening"
	case hour < 21:
		return "dinner"
	default:
		return "beforeBed"
	}
}

package main

/* ─── Meal slots ─────────────────────────────────────────────────────── */

// Slot names. Exercise is not a meal but shares the delete-by-index routing,
// so it appears in validSlots alongside the three meal slots.
const (
	slotBreakfast = "breakfast"
	slotLunch     = "lunch"
	slotDinner    = "dinner"
	slotExercise  = "exercise"
)

// mealSlots is the fixed iteration order for intake totals and rendering.
var mealSlots = []string{slotBreakfast, slotLunch, slotDinner}

// validSlots is the set of slots accepted by remove-entry requests.
var validSlots = map[string]bool{
	slotBreakfast: true,
	slotLunch:     true,
	slotDinner:    true,
	slotExercise:  true,
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// userProfile is the installation-lifetime physical profile. The daily target
// expenditure is derived once at submission (see computeDailyTargetExpenditure)
// and stored alongside the inputs so reloads don't recompute it.
type userProfile struct {
	Gender                 string  `json:"gender"`
	Age                    int     `json:"age"`
	WeightKG               float64 `json:"weight_kg"`
	HeightCM               float64 `json:"height_cm"`
	ActivityMultiplier     float64 `json:"activity_multiplier"`
	DailyTargetExpenditure int     `json:"daily_target_expenditure"`
}

// foodItem is one reference-catalog entry. Unit is the serving description
// ("碗", "份", ...) carried through for display.
type foodItem struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit,omitempty"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein"`
}

// loggedFood is a catalog entry copied by value into the daily log. Copying
// (rather than referencing the catalog) is what keeps historical logs stable
// when the catalog is reloaded with different numbers.
type loggedFood struct {
	ID string `json:"id"`
	foodItem
}

// exerciseEntry is a free-form activity with user-supplied calories burned.
type exerciseEntry struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	CaloriesBurned int    `json:"calories_burned"`
}

// dailyLog is the per-day record, keyed by its YYYY-MM-DD date. All three meal
// slots are always present in Meals; callers never need a nil check after
// newDailyLog or normalize.
type dailyLog struct {
	Date     string                  `json:"date"`
	Meals    map[string][]loggedFood `json:"meals"`
	Exercise []exerciseEntry         `json:"exercise"`
}

// aggregateTotals is derived from a dailyLog and never persisted. Exercise
// calories are tracked separately and excluded from intake and protein sums.
type aggregateTotals struct {
	TotalCalories  float64 `json:"total_calories"`
	TotalProteinG  float64 `json:"total_protein_g"`
	BurnedCalories int     `json:"burned_calories"`
}

// daySummary is the output of summarize: totals plus the categorical message.
type daySummary struct {
	Totals  aggregateTotals `json:"totals"`
	Message string          `json:"message"`
}

// snapshot is the render-ready state handed to the presentation layer after
// startup and after every mutating action. Profile is nil until submitted.
type snapshot struct {
	Profile         *userProfile            `json:"profile"`
	Meals           map[string][]loggedFood `json:"meals"`
	Exercise        []exerciseEntry         `json:"exercise"`
	Totals          aggregateTotals         `json:"totals"`
	FeedbackMessage string                  `json:"feedback_message"`
}

/* ─── Request shapes ─────────────────────────────────────────────────── */

// submitProfileRequest is the body for POST /api/profile. All fields are
// pointers so "not provided" is distinguishable from zero — presence is part
// of the validation contract. Activity can be given either as a named level
// (resolved through activityMultipliers) or a literal multiplier.
type submitProfileRequest struct {
	Gender             *string  `json:"gender"`
	Age                *int     `json:"age"`
	WeightKG           *float64 `json:"weight_kg"`
	HeightCM           *float64 `json:"height_cm"`
	ActivityLevel      *string  `json:"activity_level"`
	ActivityMultiplier *float64 `json:"activity_multiplier"`
}

// logFoodRequest is the body for POST /api/log/food.
type logFoodRequest struct {
	Slot  string `json:"slot"`
	Query string `json:"query"`
}

// logExerciseRequest is the body for POST /api/log/exercise. Calories arrives
// as the raw input string; parsing and the zero-coercion rule live in the
// controller, not the transport.
type logExerciseRequest struct {
	Description string `json:"description"`
	Calories    string `json:"calories"`
}

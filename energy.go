package main

import "math"

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid named levels — profile
// submission accepts either one of these names or a literal multiplier.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// computeDailyTargetExpenditure computes BMR (Mifflin-St Jeor) and scales it
// by the activity multiplier to get the daily target expenditure in whole kcal.
// The caller validates the profile first (age/weight/height positive, gender
// present); this is a pure formula with no error path.
func computeDailyTargetExpenditure(p userProfile) int {
	// BMR via Mifflin-St Jeor: different constant for male vs female.
	// Any non-male gender uses the female constant.
	bmr := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	// Use math.Round to avoid systematic under-reporting from truncation.
	return int(math.Round(bmr * p.ActivityMultiplier))
}

package main

import (
	"fmt"
	"math"
)

// msgFirstMeal is the fixed prompt shown when nothing has been logged yet —
// it short-circuits the classification entirely.
const msgFirstMeal = "Nothing logged yet today. Log your first meal to get started!"

// msgBalanced carries no numbers on purpose: at target there is nothing
// meaningful to cite.
const msgBalanced = "You landed right on your target today. A small extra deficit would nudge things along."

// computeTotals sums intake over the three meal slots and burned calories
// over the exercise sequence. Exercise never feeds the intake or protein
// totals.
func computeTotals(l *dailyLog) aggregateTotals {
	var t aggregateTotals
	for _, slot := range mealSlots {
		for _, entry := range l.Meals[slot] {
			t.TotalCalories += entry.Calories
			t.TotalProteinG += entry.ProteinG
		}
	}
	for _, entry := range l.Exercise {
		t.BurnedCalories += entry.CaloriesBurned
	}
	return t
}

// summarize derives the day's totals and classifies the balance into one of
// five messages. Pure function of its inputs; the profile must be non-nil.
//
// Precedence is deliberate and order-sensitive: a protein shortfall outranks
// every calorie verdict, and the calorie rules are checked from most to least
// restrictive. Boundaries: over-restriction is strictly > 800, the praise band
// starts at 300 inclusive, balanced covers [0, 300).
func summarize(l *dailyLog, p *userProfile) daySummary {
	totals := computeTotals(l)

	if totals.TotalCalories == 0 && totals.BurnedCalories == 0 {
		return daySummary{Totals: totals, Message: msgFirstMeal}
	}

	// Deficit: positive means under target. Exercise widens it.
	deficit := float64(p.DailyTargetExpenditure) - totals.TotalCalories + float64(totals.BurnedCalories)

	// 1.6 g/kg is the strength-training protein heuristic.
	proteinGoal := math.Round(p.WeightKG * 1.6)
	proteinShortfall := proteinGoal - totals.TotalProteinG

	var message string
	switch {
	case proteinShortfall > 15 && totals.TotalCalories > 0:
		message = fmt.Sprintf(
			"Protein is falling behind: %.0fg logged against a %.0fg goal. Make the next meal a protein-dense one.",
			totals.TotalProteinG, proteinGoal)
	case deficit > 800:
		message = fmt.Sprintf(
			"A deficit of %d kcal is over-restrictive. Eating this little backfires; add a proper meal.",
			int(math.Round(deficit)))
	case deficit >= 300:
		message = fmt.Sprintf(
			"Excellent: a %d kcal deficit today keeps you firmly on track.",
			int(math.Round(deficit)))
	case deficit >= 0:
		message = msgBalanced
	default:
		message = fmt.Sprintf(
			"You exceeded your target by %d kcal today. Tomorrow is a clean slate.",
			int(math.Round(-deficit)))
	}

	return daySummary{Totals: totals, Message: message}
}

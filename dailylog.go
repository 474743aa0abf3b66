package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	errUnknownSlot     = errors.New("unknown slot")
	errIndexOutOfRange = errors.New("entry index out of range")
)

// newDailyLog creates an empty log for the given YYYY-MM-DD date. Every meal
// slot is present with an empty sequence from the start.
func newDailyLog(date string) *dailyLog {
	l := &dailyLog{
		Date:     date,
		Meals:    make(map[string][]loggedFood, len(mealSlots)),
		Exercise: []exerciseEntry{},
	}
	for _, slot := range mealSlots {
		l.Meals[slot] = []loggedFood{}
	}
	return l
}

// normalize restores the every-slot-present invariant after a JSON reload —
// a log persisted by an older build, or hand-edited, may omit empty slots.
func (l *dailyLog) normalize() {
	if l.Meals == nil {
		l.Meals = make(map[string][]loggedFood, len(mealSlots))
	}
	for _, slot := range mealSlots {
		if l.Meals[slot] == nil {
			l.Meals[slot] = []loggedFood{}
		}
	}
	if l.Exercise == nil {
		l.Exercise = []exerciseEntry{}
	}
}

// addMeal appends a value copy of item to the slot's sequence and returns the
// logged entry with its freshly minted ID. The copy is deliberate: reloading
// the catalog with different numbers must never rewrite history.
func (l *dailyLog) addMeal(slot string, item foodItem) (loggedFood, error) {
	if slot != slotBreakfast && slot != slotLunch && slot != slotDinner {
		return loggedFood{}, fmt.Errorf("%w: %q", errUnknownSlot, slot)
	}
	entry := loggedFood{ID: uuid.New().String(), foodItem: item}
	l.Meals[slot] = append(l.Meals[slot], entry)
	return entry, nil
}

// addExercise appends an activity entry. Calories are validated (or coerced)
// by the caller.
func (l *dailyLog) addExercise(description string, caloriesBurned int) exerciseEntry {
	entry := exerciseEntry{
		ID:             uuid.New().String(),
		Description:    description,
		CaloriesBurned: caloriesBurned,
	}
	l.Exercise = append(l.Exercise, entry)
	return entry
}

// removeEntry deletes the entry at index from the slot's sequence, shifting
// later entries down by one. An out-of-range index is reported and leaves the
// log untouched — positional deletes must never corrupt state.
func (l *dailyLog) removeEntry(slot string, index int) error {
	if !validSlots[slot] {
		return fmt.Errorf("%w: %q", errUnknownSlot, slot)
	}

	if slot == slotExercise {
		if index < 0 || index >= len(l.Exercise) {
			return fmt.Errorf("%w: %s[%d]", errIndexOutOfRange, slot, index)
		}
		l.Exercise = append(l.Exercise[:index], l.Exercise[index+1:]...)
		return nil
	}

	entries := l.Meals[slot]
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("%w: %s[%d]", errIndexOutOfRange, slot, index)
	}
	l.Meals[slot] = append(entries[:index], entries[index+1:]...)
	return nil
}

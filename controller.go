package main

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

/* ─── Error taxonomy ─────────────────────────────────────────────────── */

var (
	// errEmptyInput: blank food query. Silently ignored at the boundary —
	// no prompt, no state change.
	errEmptyInput = errors.New("empty input")
	// errFoodNotFound: the query matched nothing in the catalog.
	errFoodNotFound = errors.New("no matching food in catalog")
)

// validationError names the missing or invalid input fields so the
// presentation layer can prompt for exactly what's wrong.
type validationError struct {
	Fields []string
}

func (e *validationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

/* ─── Controller ─────────────────────────────────────────────────────── */

// logController owns the session state: the profile, today's log, the shared
// read-only catalog, and the store. All state lives here — no package-level
// mutables.
//
// The date key is injected once at construction and never re-read from the
// clock. A session that stays open across midnight keeps writing to the day
// it started on; rollover takes a restart. Known staleness window, kept as-is.
type logController struct {
	store   *logStore
	catalog *foodCatalog
	logger  *zap.Logger
	date    string

	profile *userProfile
	log     *dailyLog
}

// newLogController restores the profile and the given day's log from the
// store. Load failures degrade to an in-memory-only session (nil profile,
// fresh log) rather than refusing to start; they are logged, not returned.
func newLogController(ctx context.Context, store *logStore, catalog *foodCatalog, logger *zap.Logger, date string) *logController {
	lc := &logController{
		store:   store,
		catalog: catalog,
		logger:  logger,
		date:    date,
	}

	profile, err := store.loadProfile(ctx)
	if err != nil {
		logger.Error("failed to restore profile, continuing without one", zap.Error(err))
	} else {
		lc.profile = profile
	}

	dayLog, err := store.loadLog(ctx, date)
	if err != nil {
		logger.Error("failed to restore daily log, starting fresh",
			zap.String("date", date), zap.Error(err))
		dayLog = newDailyLog(date)
	}
	lc.log = dayLog

	return lc
}

// submitProfile validates the raw input, derives the daily target
// expenditure, stores the profile, and persists it. Validation failure leaves
// both in-memory and persisted state untouched.
func (lc *logController) submitProfile(ctx context.Context, req submitProfileRequest) (*userProfile, error) {
	var bad []string

	if req.Gender == nil || (*req.Gender != "male" && *req.Gender != "female") {
		bad = append(bad, "gender")
	}
	if req.Age == nil || *req.Age <= 0 {
		bad = append(bad, "age")
	}
	if req.WeightKG == nil || *req.WeightKG <= 0 {
		bad = append(bad, "weight_kg")
	}
	if req.HeightCM == nil || *req.HeightCM <= 0 {
		bad = append(bad, "height_cm")
	}

	// Activity is either a named level or a literal positive multiplier.
	var multiplier float64
	switch {
	case req.ActivityLevel != nil:
		m, ok := activityMultipliers[*req.ActivityLevel]
		if !ok {
			bad = append(bad, "activity_level")
		}
		multiplier = m
	case req.ActivityMultiplier != nil && *req.ActivityMultiplier > 0:
		multiplier = *req.ActivityMultiplier
	default:
		bad = append(bad, "activity_multiplier")
	}

	if len(bad) > 0 {
		return nil, &validationError{Fields: bad}
	}

	p := userProfile{
		Gender:             *req.Gender,
		Age:                *req.Age,
		WeightKG:           *req.WeightKG,
		HeightCM:           *req.HeightCM,
		ActivityMultiplier: multiplier,
	}
	p.DailyTargetExpenditure = computeDailyTargetExpenditure(p)

	lc.profile = &p
	if err := lc.store.saveProfile(ctx, &p); err != nil {
		lc.logger.Error("failed to persist profile", zap.Error(err))
	}
	return &p, nil
}

// logFood looks the trimmed query up in the catalog and appends the match to
// the slot. Empty input and no-match both return before any mutation or
// persistence call.
func (lc *logController) logFood(ctx context.Context, slot, query string) (loggedFood, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return loggedFood{}, errEmptyInput
	}

	item, found := lc.catalog.findByName(q)
	if !found {
		return loggedFood{}, errFoodNotFound
	}

	entry, err := lc.log.addMeal(slot, item)
	if err != nil {
		return loggedFood{}, err
	}
	lc.persistLog(ctx)
	return entry, nil
}

// logExercise appends an activity entry. A blank description is rejected;
// unparseable or negative calories are coerced to zero rather than rejected,
// matching the long-standing lenient behavior (see DESIGN.md).
func (lc *logController) logExercise(ctx context.Context, description, rawCalories string) (exerciseEntry, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return exerciseEntry{}, &validationError{Fields: []string{"description"}}
	}

	calories, err := strconv.Atoi(strings.TrimSpace(rawCalories))
	if err != nil || calories < 0 {
		calories = 0
	}

	entry := lc.log.addExercise(desc, calories)
	lc.persistLog(ctx)
	return entry, nil
}

// removeLoggedEntry deletes by slot and position, then persists. A failed
// delete (bad slot, out-of-range index) changes nothing and skips the
// persistence call.
func (lc *logController) removeLoggedEntry(ctx context.Context, slot string, index int) error {
	if err := lc.log.removeEntry(slot, index); err != nil {
		return err
	}
	lc.persistLog(ctx)
	return nil
}

// currentSnapshot assembles the render-ready state. Without a profile the
// feedback slot carries the onboarding prompt instead of a classification.
func (lc *logController) currentSnapshot() snapshot {
	var totals aggregateTotals
	var message string
	if lc.profile != nil {
		summary := summarize(lc.log, lc.profile)
		totals = summary.Totals
		message = summary.Message
	} else {
		totals = computeTotals(lc.log)
		message = "Set up your profile to get a daily energy target and feedback."
	}

	return snapshot{
		Profile:         lc.profile,
		Meals:           lc.log.Meals,
		Exercise:        lc.log.Exercise,
		Totals:          totals,
		FeedbackMessage: message,
	}
}

// persistLog writes the day's log. A failure is logged and otherwise
// tolerated: the in-memory entry survives the session even if storage is
// behind.
func (lc *logController) persistLog(ctx context.Context) {
	if err := lc.store.saveLog(ctx, lc.log); err != nil {
		lc.logger.Error("failed to persist daily log",
			zap.String("date", lc.date), zap.Error(err))
	}
}

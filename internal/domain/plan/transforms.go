package plan

import (
	"strconv"
	"strings"
)

// Transform mutates a freshly cloned plan. The engine discards transforms
// whose output is identical to the current document, so a transform that
// bails out early costs nothing.
type Transform func(p *WorkoutPlan)

func activeDay(p *WorkoutPlan, dayIndex int) *WorkoutDay {
	days := p.ActiveDays()
	if dayIndex < 0 || dayIndex >= len(days) {
		return nil
	}
	return &days[dayIndex]
}

func activeExercise(p *WorkoutPlan, dayIndex, exIndex int) *Exercise {
	day := activeDay(p, dayIndex)
	if day == nil || exIndex < 0 || exIndex >= len(day.Exercises) {
		return nil
	}
	return &day.Exercises[exIndex]
}

func ensureSettings(p *WorkoutPlan) {
	if p.Settings.ActiveSplit == "" && len(p.Settings.SectionsOrder) == 0 {
		p.Settings = defaultSettings()
	}
}

// UpdateCardio writes one field of one cardio phase. Cycles is rejected on
// the warmup and cooldown phases.
func UpdateCardio(phase, field, value string) Transform {
	return func(p *WorkoutPlan) {
		var target *CardioPhase
		switch phase {
		case "warmup":
			target = &p.Cardio.Warmup
		case "main":
			target = &p.Cardio.Main
		case "high":
			target = &p.Cardio.High
		case "cooldown":
			target = &p.Cardio.Cooldown
		default:
			return
		}

		switch field {
		case "duration":
			target.Duration = value
		case "level":
			target.Level = value
		case "rpm":
			target.RPM = value
		case "cycles":
			if phase == "main" || phase == "high" {
				target.Cycles = value
			}
		}
	}
}

// UpdateExercise writes a scalar exercise field, or one split-weight slot
// when field is of the form "splitWeights.setN".
func UpdateExercise(dayIndex, exIndex int, field, value string) Transform {
	return func(p *WorkoutPlan) {
		ex := activeExercise(p, dayIndex, exIndex)
		if ex == nil {
			return
		}

		if set, ok := strings.CutPrefix(field, "splitWeights."); ok {
			switch set {
			case "set1":
				ex.SplitWeights.Set1 = value
			case "set2":
				ex.SplitWeights.Set2 = value
			case "set3":
				ex.SplitWeights.Set3 = value
			}
			return
		}

		switch field {
		case "name":
			ex.Name = value
		case "hint":
			ex.Hint = value
		case "reps":
			ex.Reps = value
		case "weight":
			ex.Weight = value
		case "weightMode":
			ex.WeightMode = value
		}
	}
}

// ToggleSplitMode flips an exercise between standard and split weights.
// Going to split seeds all three slots from the scalar weight when it is
// non-empty; going back to standard keeps the scalar weight untouched and
// simply stops using the split values.
func ToggleSplitMode(dayIndex, exIndex int) Transform {
	return func(p *WorkoutPlan) {
		ex := activeExercise(p, dayIndex, exIndex)
		if ex == nil {
			return
		}

		if ex.WeightMode == WeightModeStandard {
			ex.WeightMode = WeightModeSplit
			if strings.TrimSpace(ex.Weight) != "" {
				ex.SplitWeights = SplitWeights{Set1: ex.Weight, Set2: ex.Weight, Set3: ex.Weight}
			}
		} else {
			ex.WeightMode = WeightModeStandard
		}
	}
}

// ReorderSplitWeights normalizes the three split weights into the
// low/high/middle set order used on the floor: lightest warm-up first,
// heaviest top set second, back-off set last. Non-numeric or non-positive
// values make the whole transform a no-op.
func ReorderSplitWeights(dayIndex, exIndex int) Transform {
	return func(p *WorkoutPlan) {
		ex := activeExercise(p, dayIndex, exIndex)
		if ex == nil {
			return
		}

		v1, err1 := strconv.ParseFloat(ex.SplitWeights.Set1, 64)
		v2, err2 := strconv.ParseFloat(ex.SplitWeights.Set2, 64)
		v3, err3 := strconv.ParseFloat(ex.SplitWeights.Set3, 64)
		if err1 != nil || err2 != nil || err3 != nil || v1 <= 0 || v2 <= 0 || v3 <= 0 {
			return
		}

		low, mid, high := v1, v2, v3
		if low > mid {
			low, mid = mid, low
		}
		if mid > high {
			mid, high = high, mid
		}
		if low > mid {
			low, mid = mid, low
		}

		if v1 == low && v2 == high && v3 == mid {
			return
		}

		ex.SplitWeights.Set1 = formatWeight(low)
		ex.SplitWeights.Set2 = formatWeight(high)
		ex.SplitWeights.Set3 = formatWeight(mid)
	}
}

func formatWeight(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// UpdateProgress sets one progress checkpoint. Unchecking a checkpoint
// clears every later one so a prefix of true values is all that can exist.
func UpdateProgress(dayIndex, exIndex, pathIndex int, checked bool) Transform {
	return func(p *WorkoutPlan) {
		ex := activeExercise(p, dayIndex, exIndex)
		if ex == nil || pathIndex < 0 || pathIndex >= len(ex.Progress) {
			return
		}

		ex.Progress[pathIndex] = checked
		if !checked {
			for i := pathIndex + 1; i < len(ex.Progress); i++ {
				ex.Progress[i] = false
			}
		}
	}
}

// CompleteExercise marks an exercise done; when it was the last remaining
// one the day is marked completed in the same write.
func CompleteExercise(dayIndex, exIndex int, dayComplete bool) Transform {
	return func(p *WorkoutPlan) {
		day := activeDay(p, dayIndex)
		if day == nil || exIndex < 0 || exIndex >= len(day.Exercises) {
			return
		}
		day.Exercises[exIndex].IsDone = true
		if dayComplete {
			day.IsCompleted = true
		}
	}
}

// UndoExercise reverts a done mark and un-completes the day.
func UndoExercise(dayIndex, exIndex int) Transform {
	return func(p *WorkoutPlan) {
		day := activeDay(p, dayIndex)
		if day == nil || exIndex < 0 || exIndex >= len(day.Exercises) {
			return
		}
		day.Exercises[exIndex].IsDone = false
		day.IsCompleted = false
	}
}

func SetCardioVisibility(visible bool) Transform {
	return func(p *WorkoutPlan) {
		ensureSettings(p)
		p.Settings.CardioVisible = visible
	}
}

func SetSectionsOrder(order []string) Transform {
	order = append([]string(nil), order...)
	return func(p *WorkoutPlan) {
		ensureSettings(p)
		p.Settings.SectionsOrder = append([]string(nil), order...)
	}
}

func SetThemePreference(theme string) Transform {
	return func(p *WorkoutPlan) {
		ensureSettings(p)
		p.Settings.Theme = theme
	}
}

func SetLanguagePreference(language string) Transform {
	return func(p *WorkoutPlan) {
		ensureSettings(p)
		p.Settings.Language = language
	}
}

// SetActiveSplit switches the active schedule. Callers owning session
// state must clear it alongside this write.
func SetActiveSplit(split string) Transform {
	return func(p *WorkoutPlan) {
		if split != SplitFiveDay && split != SplitThreeDay {
			return
		}
		ensureSettings(p)
		p.Settings.ActiveSplit = split
	}
}

func resetDay(day *WorkoutDay) {
	day.IsCompleted = false
	for i := range day.Exercises {
		day.Exercises[i].IsDone = false
	}
}

// ResetDay clears the completion state of one day in the active split.
func ResetDay(dayIndex int) Transform {
	return func(p *WorkoutPlan) {
		day := activeDay(p, dayIndex)
		if day == nil {
			return
		}
		resetDay(day)
	}
}

// ResetWeek clears completion state across the whole active split.
func ResetWeek() Transform {
	return func(p *WorkoutPlan) {
		days := p.ActiveDays()
		for i := range days {
			resetDay(&days[i])
		}
	}
}

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() *WorkoutPlan {
	return Default("Dani")
}

func TestUpdateProgress_PrefixInvariant(t *testing.T) {
	p := testPlan()

	UpdateProgress(0, 0, 0, true)(p)
	UpdateProgress(0, 0, 1, true)(p)
	UpdateProgress(0, 0, 2, true)(p)
	require.Equal(t, []bool{true, true, true}, p.FiveDaySplit[0].Exercises[0].Progress)

	// Unchecking the middle checkpoint clears everything after it.
	UpdateProgress(0, 0, 1, false)(p)
	assert.Equal(t, []bool{true, false, false}, p.FiveDaySplit[0].Exercises[0].Progress)

	UpdateProgress(0, 0, 0, false)(p)
	assert.Equal(t, []bool{false, false, false}, p.FiveDaySplit[0].Exercises[0].Progress)
}

func TestUpdateProgress_OutOfRange(t *testing.T) {
	p := testPlan()
	before := p.Clone()

	UpdateProgress(0, 0, 7, true)(p)
	UpdateProgress(99, 0, 0, true)(p)

	assert.Equal(t, before, p)
}

func TestReorderSplitWeights_LowHighMiddle(t *testing.T) {
	p := testPlan()
	ex := &p.FiveDaySplit[0].Exercises[0]
	ex.SplitWeights = SplitWeights{Set1: "20", Set2: "10", Set3: "15"}

	ReorderSplitWeights(0, 0)(p)

	assert.Equal(t, "10", ex.SplitWeights.Set1)
	assert.Equal(t, "20", ex.SplitWeights.Set2)
	assert.Equal(t, "15", ex.SplitWeights.Set3)
}

func TestReorderSplitWeights_Idempotent(t *testing.T) {
	p := testPlan()
	p.FiveDaySplit[0].Exercises[0].SplitWeights = SplitWeights{Set1: "12.5", Set2: "40", Set3: "17.5"}

	ReorderSplitWeights(0, 0)(p)
	once := p.Clone()
	ReorderSplitWeights(0, 0)(p)

	assert.Equal(t, once, p)
}

func TestReorderSplitWeights_InvalidInputIsNoop(t *testing.T) {
	for _, sw := range []SplitWeights{
		{Set1: "abc", Set2: "10", Set3: "15"},
		{Set1: "0", Set2: "10", Set3: "15"},
		{Set1: "-5", Set2: "10", Set3: "15"},
		{Set1: "", Set2: "10", Set3: "15"},
	} {
		p := testPlan()
		p.FiveDaySplit[0].Exercises[0].SplitWeights = sw
		before := p.Clone()

		ReorderSplitWeights(0, 0)(p)

		assert.Equal(t, before, p, "weights %+v should be rejected untouched", sw)
	}
}

func TestToggleSplitMode_RoundTripKeepsScalarWeight(t *testing.T) {
	p := testPlan()
	ex := &p.FiveDaySplit[0].Exercises[0]
	require.Equal(t, "17.5", ex.Weight)

	ToggleSplitMode(0, 0)(p)
	assert.Equal(t, WeightModeSplit, ex.WeightMode)
	assert.Equal(t, SplitWeights{Set1: "17.5", Set2: "17.5", Set3: "17.5"}, ex.SplitWeights)

	UpdateExercise(0, 0, "splitWeights.set2", "20")(p)

	ToggleSplitMode(0, 0)(p)
	assert.Equal(t, WeightModeStandard, ex.WeightMode)
	assert.Equal(t, "17.5", ex.Weight)
}

func TestToggleSplitMode_EmptyWeightDoesNotSeedSets(t *testing.T) {
	p := testPlan()
	ex := &p.FiveDaySplit[0].Exercises[0]
	ex.Weight = "  "
	ex.SplitWeights = SplitWeights{Set1: "1", Set2: "2", Set3: "3"}

	ToggleSplitMode(0, 0)(p)

	assert.Equal(t, WeightModeSplit, ex.WeightMode)
	assert.Equal(t, SplitWeights{Set1: "1", Set2: "2", Set3: "3"}, ex.SplitWeights)
}

func TestUpdateCardio_CyclesOnlyOnMainAndHigh(t *testing.T) {
	p := testPlan()

	UpdateCardio("main", "cycles", "5")(p)
	UpdateCardio("high", "cycles", "4")(p)
	UpdateCardio("warmup", "cycles", "9")(p)
	UpdateCardio("cooldown", "cycles", "9")(p)

	assert.Equal(t, "5", p.Cardio.Main.Cycles)
	assert.Equal(t, "4", p.Cardio.High.Cycles)
	assert.Empty(t, p.Cardio.Warmup.Cycles)
	assert.Empty(t, p.Cardio.Cooldown.Cycles)
}

func TestUpdateCardio_Fields(t *testing.T) {
	p := testPlan()

	UpdateCardio("warmup", "duration", "10")(p)
	UpdateCardio("cooldown", "rpm", "55")(p)
	UpdateCardio("bogus", "duration", "1")(p)

	assert.Equal(t, "10", p.Cardio.Warmup.Duration)
	assert.Equal(t, "55", p.Cardio.Cooldown.RPM)
}

func TestUpdateExercise_UsesActiveSplit(t *testing.T) {
	p := testPlan()
	p.Settings.ActiveSplit = SplitThreeDay

	UpdateExercise(0, 0, "weight", "99")(p)

	assert.Equal(t, "99", p.ThreeDaySplit[0].Exercises[0].Weight)
	assert.Equal(t, "17.5", p.FiveDaySplit[0].Exercises[0].Weight)
}

func TestResetDay_OnlyTouchesThatDay(t *testing.T) {
	p := testPlan()
	for d := range p.FiveDaySplit {
		for e := range p.FiveDaySplit[d].Exercises {
			p.FiveDaySplit[d].Exercises[e].IsDone = true
		}
		p.FiveDaySplit[d].IsCompleted = true
	}

	ResetDay(1)(p)

	assert.False(t, p.FiveDaySplit[1].IsCompleted)
	for _, ex := range p.FiveDaySplit[1].Exercises {
		assert.False(t, ex.IsDone)
	}
	assert.True(t, p.FiveDaySplit[0].IsCompleted)
	assert.True(t, p.FiveDaySplit[2].IsCompleted)
	for _, ex := range p.FiveDaySplit[0].Exercises {
		assert.True(t, ex.IsDone)
	}
}

func TestResetWeek_ClearsActiveSplitOnly(t *testing.T) {
	p := testPlan()
	p.FiveDaySplit[0].IsCompleted = true
	p.FiveDaySplit[0].Exercises[0].IsDone = true
	p.ThreeDaySplit[0].IsCompleted = true

	ResetWeek()(p)

	assert.False(t, p.FiveDaySplit[0].IsCompleted)
	assert.False(t, p.FiveDaySplit[0].Exercises[0].IsDone)
	assert.True(t, p.ThreeDaySplit[0].IsCompleted, "inactive split stays as it was")
}

func TestSettingsTransforms_MaterializeDefaults(t *testing.T) {
	p := testPlan()
	p.Settings = Settings{}

	SetThemePreference(ThemeDark)(p)

	assert.Equal(t, ThemeDark, p.Settings.Theme)
	assert.Equal(t, SplitFiveDay, p.Settings.ActiveSplit)
	assert.Equal(t, []string{SectionCardio, SectionStrength}, p.Settings.SectionsOrder)
	assert.True(t, p.Settings.CardioVisible)
}

func TestSetSectionsOrder_DetachedFromCaller(t *testing.T) {
	p := testPlan()
	order := []string{SectionStrength, SectionCardio}

	tr := SetSectionsOrder(order)
	order[0] = "mutated"
	tr(p)

	assert.Equal(t, []string{SectionStrength, SectionCardio}, p.Settings.SectionsOrder)
}

func TestSetActiveSplit_RejectsUnknownValue(t *testing.T) {
	p := testPlan()

	SetActiveSplit("7-day")(p)

	assert.Equal(t, SplitFiveDay, p.Settings.ActiveSplit)
}

func TestCompleteAndUndoExercise(t *testing.T) {
	p := testPlan()

	CompleteExercise(0, 0, false)(p)
	assert.True(t, p.FiveDaySplit[0].Exercises[0].IsDone)
	assert.False(t, p.FiveDaySplit[0].IsCompleted)

	CompleteExercise(0, 1, false)(p)
	CompleteExercise(0, 2, true)(p)
	assert.True(t, p.FiveDaySplit[0].IsCompleted)

	UndoExercise(0, 2)(p)
	assert.False(t, p.FiveDaySplit[0].Exercises[2].IsDone)
	assert.False(t, p.FiveDaySplit[0].IsCompleted)
}

func TestClone_Detached(t *testing.T) {
	p := testPlan()
	c := p.Clone()

	c.FiveDaySplit[0].Exercises[0].IsDone = true
	c.FiveDaySplit[0].Exercises[0].Progress[0] = true
	c.Settings.SectionsOrder[0] = "mutated"

	assert.False(t, p.FiveDaySplit[0].Exercises[0].IsDone)
	assert.False(t, p.FiveDaySplit[0].Exercises[0].Progress[0])
	assert.Equal(t, SectionCardio, p.Settings.SectionsOrder[0])
}

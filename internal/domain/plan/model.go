// Package plan holds the shared workout plan document: its model, the pure
// transforms that mutate it, and the engine that keeps a local copy
// synchronized with the remote document store.
package plan

const (
	SplitFiveDay  = "5-day"
	SplitThreeDay = "3-day"

	SectionCardio   = "cardio"
	SectionStrength = "strength"

	WeightModeStandard = "standard"
	WeightModeSplit    = "split"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ProgressSteps is the number of sequential per-exercise checkpoints.
const ProgressSteps = 3

// CardioPhase holds free-form numeric text for one phase of the cardio
// protocol. Cycles is only meaningful on the main and high phases.
type CardioPhase struct {
	Cycles   string `firestore:"cycles,omitempty" json:"cycles,omitempty"`
	Duration string `firestore:"duration" json:"duration"`
	Level    string `firestore:"level" json:"level"`
	RPM      string `firestore:"rpm" json:"rpm"`
}

type CardioProtocol struct {
	Warmup   CardioPhase `firestore:"warmup" json:"warmup"`
	Main     CardioPhase `firestore:"main" json:"main"`
	High     CardioPhase `firestore:"high" json:"high"`
	Cooldown CardioPhase `firestore:"cooldown" json:"cooldown"`
}

type SplitWeights struct {
	Set1 string `firestore:"set1" json:"set1"`
	Set2 string `firestore:"set2" json:"set2"`
	Set3 string `firestore:"set3" json:"set3"`
}

type Exercise struct {
	Name         string       `firestore:"name" json:"name"`
	Hint         string       `firestore:"hint,omitempty" json:"hint,omitempty"`
	Reps         string       `firestore:"reps" json:"reps"`
	WeightMode   string       `firestore:"weightMode" json:"weightMode"`
	Weight       string       `firestore:"weight" json:"weight"`
	SplitWeights SplitWeights `firestore:"splitWeights" json:"splitWeights"`
	Progress     []bool       `firestore:"progress" json:"progress"`
	IsDone       bool         `firestore:"isDone" json:"isDone"`
}

type WorkoutDay struct {
	Day         string     `firestore:"day" json:"day"`
	Icon        string     `firestore:"icon" json:"icon"`
	IsCompleted bool       `firestore:"isCompleted" json:"isCompleted"`
	Exercises   []Exercise `firestore:"exercises" json:"exercises"`
}

type Settings struct {
	CardioVisible bool     `firestore:"cardioVisible" json:"cardioVisible"`
	SectionsOrder []string `firestore:"sectionsOrder" json:"sectionsOrder"`
	ActiveSplit   string   `firestore:"activeSplit" json:"activeSplit"`
	Theme         string   `firestore:"theme" json:"theme"`
	Language      string   `firestore:"language" json:"language"`
}

// WorkoutPlan is the root synced document. OriginClient and OriginRev are
// stamped by the engine on every push so incoming snapshots that merely
// echo this client's own write can be discarded.
type WorkoutPlan struct {
	UserName      string         `firestore:"userName" json:"userName"`
	Cardio        CardioProtocol `firestore:"cardio" json:"cardio"`
	FiveDaySplit  []WorkoutDay   `firestore:"fiveDaySplit" json:"fiveDaySplit"`
	ThreeDaySplit []WorkoutDay   `firestore:"threeDaySplit" json:"threeDaySplit"`
	Settings      Settings       `firestore:"settings" json:"settings"`
	OriginClient  string         `firestore:"originClient,omitempty" json:"originClient,omitempty"`
	OriginRev     int64          `firestore:"originRev,omitempty" json:"originRev,omitempty"`
}

// ActiveDays returns the schedule selected by settings.activeSplit. The
// returned slice shares backing storage with p; transforms rely on that to
// mutate their cloned plan in place.
func (p *WorkoutPlan) ActiveDays() []WorkoutDay {
	if p.Settings.ActiveSplit == SplitThreeDay {
		return p.ThreeDaySplit
	}
	return p.FiveDaySplit
}

func (e Exercise) clone() Exercise {
	e.Progress = append([]bool(nil), e.Progress...)
	return e
}

func (d WorkoutDay) clone() WorkoutDay {
	exercises := make([]Exercise, len(d.Exercises))
	for i, ex := range d.Exercises {
		exercises[i] = ex.clone()
	}
	d.Exercises = exercises
	return d
}

func cloneDays(days []WorkoutDay) []WorkoutDay {
	if days == nil {
		return nil
	}
	out := make([]WorkoutDay, len(days))
	for i, d := range days {
		out[i] = d.clone()
	}
	return out
}

// Clone returns a deep copy. Transforms always run against a clone so the
// current document is never mutated in place.
func (p *WorkoutPlan) Clone() *WorkoutPlan {
	c := *p
	c.FiveDaySplit = cloneDays(p.FiveDaySplit)
	c.ThreeDaySplit = cloneDays(p.ThreeDaySplit)
	c.Settings.SectionsOrder = append([]string(nil), p.Settings.SectionsOrder...)
	return &c
}

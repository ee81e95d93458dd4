package plan

func exercise(name, hint, reps, weight string) Exercise {
	return Exercise{
		Name:         name,
		Hint:         hint,
		Reps:         reps,
		WeightMode:   WeightModeStandard,
		Weight:       weight,
		SplitWeights: SplitWeights{Set1: weight, Set2: weight, Set3: weight},
		Progress:     make([]bool, ProgressSteps),
	}
}

func defaultFiveDaySplit() []WorkoutDay {
	return []WorkoutDay{
		{
			Day:  "StrengthSplit.fiveDaySplit.day1",
			Icon: "IconChest",
			Exercises: []Exercise{
				exercise("Exercises.dumbbellBenchPress", "", "3x8", "17.5"),
				exercise("Exercises.inclineDumbbellBenchPress", "", "3x8", "17.5"),
				exercise("Exercises.machineFly", "", "3x8", "31"),
			},
		},
		{
			Day:  "StrengthSplit.fiveDaySplit.day2",
			Icon: "IconBack",
			Exercises: []Exercise{
				exercise("Exercises.cableLatPulldown", "", "3x8", "36"),
				exercise("Exercises.cableSeatedRow", "", "3x8", "31.5"),
				exercise("Exercises.machineVerticalRow", "", "3x8", "27"),
			},
		},
		{
			Day:  "StrengthSplit.fiveDaySplit.day3",
			Icon: "Footprints",
			Exercises: []Exercise{
				exercise("Exercises.machineSeatedLegCurl", "Exercises.hints.dragDown", "3x8", "25"),
				exercise("Exercises.machineLegExtension", "Exercises.hints.raiseUp", "3x8", "30"),
				exercise("Exercises.machineLegPress", "", "3x8", "27"),
			},
		},
		{
			Day:  "StrengthSplit.fiveDaySplit.day4",
			Icon: "IconShoulder",
			Exercises: []Exercise{
				exercise("Exercises.machineShoulderPress", "", "3x8", "5"),
				exercise("Exercises.machineDeltoidRaise", "", "3x8", "18"),
				exercise("Exercises.facePulls", "", "3x8", "10"),
			},
		},
		{
			Day:  "StrengthSplit.fiveDaySplit.day5",
			Icon: "BicepsFlexed",
			Exercises: []Exercise{
				exercise("Exercises.altBicepCurl", "", "3x8", "10"),
				exercise("Exercises.hammerCurl", "", "3x8", "7.5"),
				exercise("Exercises.machineDip", "", "3x8", "54"),
				exercise("Exercises.cablePushdown", "", "3x8", "15"),
				exercise("Exercises.tricepKickback", "", "3x8", "7.5"),
			},
		},
	}
}

// defaultThreeDaySplit regroups the five-day exercise pool into three
// mixed days, matching the seeded schedule shipped to new users.
func defaultThreeDaySplit(five []WorkoutDay) []WorkoutDay {
	day1 := append(cloneDays(five[0:1])[0].Exercises,
		cloneDays(five[4:5])[0].Exercises[0], // alt bicep curl
		cloneDays(five[4:5])[0].Exercises[1], // hammer curl
	)
	day2 := append(cloneDays(five[1:2])[0].Exercises, cloneDays(five[3:4])[0].Exercises...)
	day3 := append(cloneDays(five[2:3])[0].Exercises,
		cloneDays(five[4:5])[0].Exercises[2], // machine dip
		cloneDays(five[4:5])[0].Exercises[3], // cable pushdown
		cloneDays(five[4:5])[0].Exercises[4], // tricep kickback
	)
	return []WorkoutDay{
		{Day: "StrengthSplit.threeDaySplit.day1", Icon: "IconChest", Exercises: day1},
		{Day: "StrengthSplit.threeDaySplit.day2", Icon: "IconBack", Exercises: day2},
		{Day: "StrengthSplit.threeDaySplit.day3", Icon: "Footprints", Exercises: day3},
	}
}

func defaultSettings() Settings {
	return Settings{
		CardioVisible: true,
		SectionsOrder: []string{SectionCardio, SectionStrength},
		ActiveSplit:   SplitFiveDay,
		Theme:         ThemeLight,
		Language:      "en",
	}
}

// Default returns the seeded plan assigned to a new user.
func Default(userName string) *WorkoutPlan {
	five := defaultFiveDaySplit()
	return &WorkoutPlan{
		UserName: userName,
		Settings: defaultSettings(),
		Cardio: CardioProtocol{
			Warmup:   CardioPhase{Duration: "5", Level: "5", RPM: "60"},
			Main:     CardioPhase{Cycles: "3", Duration: "5", Level: "6", RPM: "60"},
			High:     CardioPhase{Cycles: "3", Duration: "2", Level: "9", RPM: "70"},
			Cooldown: CardioPhase{Duration: "5", Level: "3", RPM: "60"},
		},
		FiveDaySplit:  five,
		ThreeDaySplit: defaultThreeDaySplit(five),
	}
}

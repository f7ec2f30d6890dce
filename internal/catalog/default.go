package catalog

import "github.com/ashureev/arctic-quest/internal/domain"

// Default returns the built-in Arctic content.
func Default() *Catalog {
	c, err := New(defaultRiddles(), gateRiddle(), defaultMissions())
	if err != nil {
		panic("catalog: invalid built-in content: " + err.Error())
	}
	return c
}

func gateRiddle() domain.Riddle {
	return domain.Riddle{
		ID:       "gate-seabirds",
		Question: "Arctic seabirds are threatened by plastic pollution of the ocean. Which action would do the most to save them?",
		Answers: []domain.Answer{
			{ID: 1, Text: "Build more nature reserves on land", Explanation: "Reserves matter, but they do not solve plastic pollution of the ocean."},
			{ID: 2, Text: "Clean plastic out of the ocean and stop it getting in", Correct: true, Explanation: "Right! Removing plastic and preventing new waste is the key to saving seabirds."},
			{ID: 3, Text: "Feed the birds artificial food", Explanation: "A temporary measure that leaves the root cause untouched."},
			{ID: 4, Text: "Move every bird to another region", Explanation: "The birds are adapted to Arctic conditions; relocation would break the ecosystem."},
		},
	}
}

func defaultRiddles() map[int]domain.Riddle {
	return map[int]domain.Riddle{
		2: {
			ID:         "threats",
			Difficulty: domain.DifficultyEasy,
			Question:   "Which main threat to Arctic seabirds is caused by human activity?",
			Answers: []domain.Answer{
				{ID: 1, Text: "The cold climate", Explanation: "Arctic birds have adapted to the cold over thousands of years."},
				{ID: 2, Text: "Ocean pollution by plastic and oil", Correct: true, Explanation: "Correct! Plastic waste and oil spills are the main man-made threats to birds."},
				{ID: 3, Text: "Natural food shortages", Explanation: "Natural scarcity is not the main problem; it is rather a consequence of pollution."},
				{ID: 4, Text: "Predators in the tundra", Explanation: "Natural predators are part of the ecosystem and are not a critical threat."},
			},
			Hints: []domain.Hint{
				{Text: "Think about what people bring into the ocean.", Cost: 5},
				{Text: "The answer is something birds swallow or get stuck in.", Cost: 10},
			},
			TimeLimit:  60,
			BaseReward: 10,
		},
		3: {
			ID:         "rescue-plan",
			Difficulty: domain.DifficultyMedium,
			Question:   "Which comprehensive plan would protect Arctic seabirds most effectively?",
			Answers: []domain.Answer{
				{ID: 1, Text: "Only creating nature reserves", Explanation: "Reserves are important but not enough without tackling ocean pollution."},
				{ID: 2, Text: "Ocean cleanup + reserves + population monitoring + education", Correct: true, Explanation: "Excellent! A comprehensive approach combines cleanup, protected areas, monitoring and outreach."},
				{ID: 3, Text: "Only banning fishing in the Arctic", Explanation: "A full ban would hurt the regional economy and would not remove the plastic."},
				{ID: 4, Text: "Breeding birds in captivity", Explanation: "Captive breeding is a last resort and does not restore the natural habitat."},
			},
			Hints: []domain.Hint{
				{Text: "A single measure is never enough.", Cost: 5},
				{Text: "Look for the answer that combines several actions.", Cost: 10},
			},
			TimeLimit:  90,
			BaseReward: 15,
		},
		4: {
			ID:         "action-sequence",
			Difficulty: domain.DifficultyHard,
			Question:   "You lead a seabird rescue project. Which sequence of actions do you choose?",
			Answers: []domain.Answer{
				{ID: 1, Text: "1) Launch an awareness campaign 2) Study habitats 3) Create reserves 4) Clean the ocean", Explanation: "Awareness matters, but scientific data must come first."},
				{ID: 2, Text: "1) Study the population and threats 2) Plan from the data 3) Clean critical zones 4) Create protected areas 5) Start monitoring", Correct: true, Explanation: "Superb! The scientific approach: data, planning, action, protection, control."},
				{ID: 3, Text: "1) Create reserves immediately 2) Ban all economic activity 3) Relocate the birds", Explanation: "Radical measures without research can harm both the ecosystem and people."},
				{ID: 4, Text: "1) Raise funds 2) Hire staff 3) Hold a conference 4) Start work", Explanation: "The bureaucratic approach takes too long; the birds need help now."},
			},
			Hints: []domain.Hint{
				{Text: "Every good plan starts with research.", Cost: 10},
				{Text: "Monitoring comes last, to check the results.", Cost: 15},
			},
			TimeLimit:  120,
			BaseReward: 20,
		},
	}
}

func defaultMissions() []domain.MissionTemplate {
	return []domain.MissionTemplate{
		{
			ID:          1,
			Title:       "Seabird rescue",
			Description: "Study the Arctic ecosystem and help protect seabirds from ocean pollution.",
			Category:    "ecology",
			Difficulty:  domain.DifficultyMedium,
			Levels: []domain.LevelTemplate{
				{ID: 1, Title: "Meet the seabirds", Description: "Learn the main Arctic bird species.", Points: 10},
				{ID: 2, Title: "Threats to birds", Description: "Find out how pollution affects birds.", Points: 15},
				{ID: 3, Title: "Rescue plan", Description: "Design a protection strategy.", Points: 20},
				{ID: 4, Title: "Project delivery", Description: "Put your knowledge into practice.", Points: 25},
			},
		},
		{
			ID:          2,
			Title:       "Secret of the northern lights",
			Description: "Uncover the science behind the aurora and Earth's magnetic field.",
			Category:    "physics",
			Difficulty:  domain.DifficultyEasy,
			Levels: []domain.LevelTemplate{
				{ID: 1, Title: "What is the aurora?", Description: "Study the nature of the phenomenon.", Points: 10},
				{ID: 2, Title: "Earth's magnetic field", Description: "Understand how the interaction works.", Points: 20},
				{ID: 3, Title: "Observation and forecast", Description: "Learn to predict the aurora.", Points: 30},
			},
		},
		{
			ID:             3,
			Title:          "Peoples of the North",
			Description:    "Discover the culture and traditions of the peoples of the Far North.",
			Category:       "culture",
			Difficulty:     domain.DifficultyHard,
			RequiredLevels: 2,
			Levels: []domain.LevelTemplate{
				{ID: 1, Title: "Peoples of the North", Description: "Learn about the main peoples.", Points: 10},
				{ID: 2, Title: "Traditions and customs", Description: "Discover the cultural heritage.", Points: 15},
				{ID: 3, Title: "Crafts and trades", Description: "Get to know traditional occupations.", Points: 15},
				{ID: 4, Title: "Life today", Description: "Learn about modern life.", Points: 20},
				{ID: 5, Title: "Preserving the culture", Description: "Help preserve the heritage.", Points: 30},
			},
		},
	}
}

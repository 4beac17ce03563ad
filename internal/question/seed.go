package question

// DefaultQuestions is the sample bank loaded into an empty database.
var DefaultQuestions = []CreateRequest{
	{Text: "If you could have dinner with anyone, living or dead, who would it be and why?", Category: CategoryPersonal, Difficulty: DifficultyEasy},
	{Text: "What's the most unusual talent or skill you have?", Category: CategoryPersonal, Difficulty: DifficultyEasy},
	{Text: "If you could live in any time period, which would you choose and why?", Category: CategoryHypothetical, Difficulty: DifficultyMedium},
	{Text: "What's the best piece of advice you've ever received?", Category: CategoryPersonal, Difficulty: DifficultyMedium},
	{Text: "If you could instantly become an expert in any field, what would it be?", Category: CategoryHypothetical, Difficulty: DifficultyEasy},
	{Text: "What's a goal you have that you've never told anyone about?", Category: CategoryPersonal, Difficulty: DifficultyHard},
	{Text: "If you could switch lives with someone for a day, who would it be?", Category: CategoryHypothetical, Difficulty: DifficultyMedium},
	{Text: "What's something you believed as a child that you later found out wasn't true?", Category: CategoryPersonal, Difficulty: DifficultyEasy},
	{Text: "If you could create a new holiday, what would it celebrate?", Category: CategoryCreative, Difficulty: DifficultyMedium},
	{Text: "What's the most spontaneous thing you've ever done?", Category: CategoryPersonal, Difficulty: DifficultyMedium},
	{Text: "If you could have any superpower for just one day, what would it be?", Category: CategoryHypothetical, Difficulty: DifficultyEasy},
	{Text: "What's a skill you wish everyone had to learn in school?", Category: CategoryThoughtful, Difficulty: DifficultyMedium},
	{Text: "If you could redesign your workspace, what would it look like?", Category: CategoryWork, Difficulty: DifficultyEasy},
	{Text: "What's the most interesting documentary or book you've consumed recently?", Category: CategoryPersonal, Difficulty: DifficultyMedium},
	{Text: "If you could start a business tomorrow, what would it be?", Category: CategoryWork, Difficulty: DifficultyMedium},
}

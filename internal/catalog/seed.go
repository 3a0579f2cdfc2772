package catalog

// Task names. Names are catalog keys, so they are spelled exactly as
// persisted in task_responses.
const (
	TaskSimpleWHQuestions    = "Simple WH-Question Exchange"
	TaskAskingBasicQuestions = "Asking Basic Questions"
	TaskRolePlaySimple       = "Role-play (no complication)"
	TaskNarrationPast        = "Narration (Past)"
	TaskNarrationPresent     = "Narration (Present)"
	TaskNarrationFuture      = "Narration (Future)"
	TaskDetailedDescription  = "Detailed Description"
	TaskInstructions         = "Instructions"
	TaskReportingEvents      = "Reporting on current events"
	TaskRolePlayComplication = "Role-play (minor complication)"
	TaskAbstractDiscussion   = "Abstract Discussion"
	TaskSupportingOpinion    = "Supporting Opinion"
	TaskHypothesizing        = "Hypothesizing"
)

var definitions = []TaskDefinition{
	{
		Name:        TaskSimpleWHQuestions,
		Instruction: "Ask the learner 5-6 simple WH-questions about a topic from the warm-up (when, where, with whom, how long, etc.).",
	},
	{
		Name:        TaskAskingBasicQuestions,
		Instruction: "Have the learner ask you 5 questions about a common object or topic (e.g., your phone, your car, your weekend).",
	},
	{
		Name:        TaskRolePlaySimple,
		Instruction: "Read a short, straightforward role-play scenario in English, then play it out in the target language. There should be no problems or complications (e.g., successfully ordering a coffee).",
	},
	{
		Name:        TaskNarrationPast,
		Instruction: "Ask the learner to tell a story about a personal experience, something they did or witnessed, from beginning to end in chronological order with detail. This should ideally be in the past time frame.",
	},
	{
		Name:        TaskNarrationPresent,
		Instruction: "Ask the learner about something they do routinely in detail, from start to finish, in a step-by-step, chronological order (e.g., a daily work routine, exercise plan, or a typical weekend day).",
	},
	{
		Name:        TaskNarrationFuture,
		Instruction: "Ask about the learner's future plans for something specific (e.g., an upcoming trip, project, or celebration).",
	},
	{
		Name:        TaskDetailedDescription,
		Instruction: "Ask the learner to describe something from their life in detail (e.g., their home, a room, a building, a vehicle).",
	},
	{
		Name:        TaskInstructions,
		Instruction: "Ask the learner to explain how to do something, like applying for a job, buying a ticket, or cooking a meal.",
	},
	{
		Name:        TaskReportingEvents,
		Instruction: "Ask the learner to report 5-6 facts about a recent event or something widely discussed (e.g., gas prices, a recent game, a news story).",
	},
	{
		Name:        TaskRolePlayComplication,
		Instruction: "Read a short role-play scenario in English, then play it out in the target language. Introduce a small problem (e.g., a hotel has no rooms available).",
	},
	{
		Name:        TaskAbstractDiscussion,
		Instruction: "Introduce a societal issue (e.g., media influence, technology use). Ask the learner to discuss the topic abstractly: what people say, general perspectives.",
	},
	{
		Name:        TaskSupportingOpinion,
		Instruction: "Present a controversial issue with two sides. Ask the learner which side they support and why. They should express and justify their opinion clearly.",
	},
	{
		Name:        TaskHypothesizing,
		Instruction: "Introduce a scenario and ask the learner to speculate about the consequences. For example, 'What would happen if...?' Use open-ended hypothetical prompts.",
	},
}

var levelSpecs = map[Level]LevelSpec{
	Level1: {
		Level: Level1,
		BaseTasks: []string{
			TaskSimpleWHQuestions,
			TaskSimpleWHQuestions,
			TaskSimpleWHQuestions,
			TaskRolePlaySimple,
			TaskAskingBasicQuestions,
		},
		StretchLevel: Level2,
	},
	Level2: {
		Level: Level2,
		BaseTasks: []string{
			TaskNarrationPast,
			TaskDetailedDescription,
			TaskInstructions,
			TaskReportingEvents,
			TaskRolePlayComplication,
			TaskNarrationFuture,
			TaskNarrationPresent,
		},
		StretchLevel: Level3,
	},
}

var stretchTasks = map[Level][]string{
	Level2: {
		TaskNarrationPast,
		TaskDetailedDescription,
		TaskInstructions,
		TaskRolePlayComplication,
		TaskReportingEvents,
	},
	Level3: {
		TaskAbstractDiscussion,
		TaskSupportingOpinion,
		TaskHypothesizing,
	},
}

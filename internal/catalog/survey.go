package catalog

import "slices"

// SensitiveTopicsNote is shown alongside the warm-up survey.
const SensitiveTopicsNote = "Avoid asking detailed questions about military work, and refrain from inquiring about family matters unless the learner initiates the conversation about it."

// SurveyIntro explains the purpose of the warm-up.
const SurveyIntro = "Ask the following background questions to build rapport and estimate the learner's initial working level. Feel free to ask more questions as needed."

var surveyQuestions = []string{
	"Where are you now? (City, state.)",
	"What do you do? Military? How long have you been working in the military?",
	"What did you do before the military? Did you do any jobs before or during college and high school?",
	"Where do you live? Do you live in a house or a condo? Do you own or rent? How long have you lived there? Who lives with you?",
	"Do you have pets or any animals?",
	"Where are you from originally?",
	"Did you go to college? Where and what did you study?",
	"What do you like to do in your free time? (leisure activities or any other activities like hobbies, workout, spending time with friends and family, etc.)",
	"Where did you travel in or out of the US in the past few years for other than work? How long did you spend there?",
}

// SurveyQuestions returns the warm-up survey questions in order.
func SurveyQuestions() []string {
	return slices.Clone(surveyQuestions)
}

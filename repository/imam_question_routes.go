package repository

import (
	"context"

	"github.com/Zayd-McArdle/MasjidApp/models"
)

type questionQuery = Query[ImamQuestionsRepository, models.ImamQuestionFilter, models.ImamQuestion]

// Presence of the topic and school of thought filters.
const (
	byNone           Presence = 0
	byTopic          Presence = 1 << 0
	bySchool         Presence = 1 << 1
	byTopicAndSchool Presence = byTopic | bySchool
)

const questionCombinations = 4

// Status families. The family index is multiplied by questionCombinations
// to find the first slot of its block.
const (
	familyAll = iota
	familyAnswered
	familyUnanswered
	questionFamilies
)

// QuestionKey maps a filter to its slot: one block of four per status
// family, with the topic/school presence selecting within the block.
func QuestionKey(f models.ImamQuestionFilter) int {
	family := familyAll
	if f.Status != nil {
		switch *f.Status {
		case models.QuestionStatusAnswered:
			family = familyAnswered
		case models.QuestionStatusUnanswered:
			family = familyUnanswered
		}
	}
	return family*questionCombinations + int(PresenceOf(f.Topic != nil, f.SchoolOfThought != nil))
}

// AnsweredQuestionKey is QuestionKey restricted to answered questions.
func AnsweredQuestionKey(f models.AnsweredQuestionFilter) int {
	return int(PresenceOf(f.Topic != nil, f.SchoolOfThought != nil))
}

// QuestionQueries is the full admin table: three status families times four
// topic/school combinations, each served by its own stored function.
func QuestionQueries() []questionQuery {
	var table [questionFamilies * questionCombinations]questionQuery

	all := familyAll * questionCombinations
	table[all+int(byNone)] = questionQuery{OpGetAllQuestions, func(ctx context.Context, r ImamQuestionsRepository, _ models.ImamQuestionFilter) ([]models.ImamQuestion, error) {
		return r.GetAllQuestions(ctx)
	}}
	table[all+int(byTopic)] = questionQuery{OpGetAllQuestionsByTopic, func(ctx context.Context, r ImamQuestionsRepository, f models.ImamQuestionFilter) ([]models.ImamQuestion, error) {
		return r.GetAllQuestionsByTopic(ctx, *f.Topic)
	}}
	table[all+int(bySchool)] = questionQuery{OpGetAllQuestionsBySchoolOfThought, func(ctx context.Context, r ImamQuestionsRepository, f models.ImamQuestionFilter) ([]models.ImamQuestion, error) {
		return r.GetAllQuestionsBySchoolOfThought(ctx, *f.SchoolOfThought)
	}}
	table[all+int(byTopicAndSchool)] = questionQuery{OpGetAllQuestionsByTopicAndSchool, func(ctx context.Context, r ImamQuestionsRepository, f models.ImamQuestionFilter) ([]models.ImamQuestion, error) {
		return r.GetAllQuestionsByTopicAndSchoolOfThought(ctx, *f.Topic, *f.SchoolOfThought)
	}}

	answered := familyAnswered * questionCombinations
	table[answered+int(byNone)] = questionQuery{OpGetAnsweredQuestions, func(ctx context.Context, r ImamQuestionsRepository, _ models.ImamQuestionFilter) ([]models.ImamQuestion, error) {
		return r.GetAnsweredQuestions(ctx)
	}}
	table[answered+int(byTopic)] = questionQuery{OpGetAnsweredQuestionsByTopic, func(ctx context.Context, r ImamQuestionsRepository, f models.ImamQuestionFilter) ([]models.ImamQuestion, error) {
		return r.GetAnsweredQuestionsByTopic(ctx, *f.Topic)
	}}
	table[answered+int(bySchool)] = questionQuery{OpGetAnsweredQuestionsBySchoolOfThought, func(ctx context.Context, r ImamQuestionsRepository, f models.ImamQuestionFilter) ([]models.ImamQuestion, error) {
		return r.GetAnsweredQuestionsBySchoolOfThought(ctx, *f.SchoolOfThought)
	}}
	table[answered+int(byTopicAndSchool)] = questionQuery{OpGetAnsweredQuestionsByTopicAndSchool, func(ctx context.Context, r ImamQuestionsRepository, f models.ImamQuestionFilter) ([]models.ImamQuestion, error) {
		return r.GetAnsweredQuestionsByTopicAndSchoolOfThought(ctx, *f.Topic, *f.SchoolOfThought)
	}}

	unanswered := familyUnanswered * questionCombinations
	table[unanswered+int(byNone)] = questionQuery{OpGetUnansweredQuestions, func(ctx context.Context, r ImamQuestionsRepository, _ models.ImamQuestionFilter) ([]models.ImamQuestion, error) {
		return r.GetUnansweredQuestions(ctx)
	}}
	table[unanswered+int(byTopic)] = questionQuery{OpGetUnansweredQuestionsByTopic, func(ctx context.Context, r ImamQuestionsRepository, f models.ImamQuestionFilter) ([]models.ImamQuestion, error) {
		return r.GetUnansweredQuestionsByTopic(ctx, *f.Topic)
	}}
	table[unanswered+int(bySchool)] = questionQuery{OpGetUnansweredQuestionsBySchoolOfThought, func(ctx context.Context, r ImamQuestionsRepository, f models.ImamQuestionFilter) ([]models.ImamQuestion, error) {
		return r.GetUnansweredQuestionsBySchoolOfThought(ctx, *f.SchoolOfThought)
	}}
	table[unanswered+int(byTopicAndSchool)] = questionQuery{OpGetUnansweredQuestionsByTopicAndSchool, func(ctx context.Context, r ImamQuestionsRepository, f models.ImamQuestionFilter) ([]models.ImamQuestion, error) {
		return r.GetUnansweredQuestionsByTopicAndSchoolOfThought(ctx, *f.Topic, *f.SchoolOfThought)
	}}

	return table[:]
}

type answeredQuery = Query[ImamQuestionsRepository, models.AnsweredQuestionFilter, models.ImamQuestion]

// AnsweredQuestionQueries is the public table over topic and school of
// thought.
func AnsweredQuestionQueries() []answeredQuery {
	return []answeredQuery{
		byNone: {OpGetAnsweredQuestions, func(ctx context.Context, r ImamQuestionsRepository, _ models.AnsweredQuestionFilter) ([]models.ImamQuestion, error) {
			return r.GetAnsweredQuestions(ctx)
		}},
		byTopic: {OpGetAnsweredQuestionsByTopic, func(ctx context.Context, r ImamQuestionsRepository, f models.AnsweredQuestionFilter) ([]models.ImamQuestion, error) {
			return r.GetAnsweredQuestionsByTopic(ctx, *f.Topic)
		}},
		bySchool: {OpGetAnsweredQuestionsBySchoolOfThought, func(ctx context.Context, r ImamQuestionsRepository, f models.AnsweredQuestionFilter) ([]models.ImamQuestion, error) {
			return r.GetAnsweredQuestionsBySchoolOfThought(ctx, *f.SchoolOfThought)
		}},
		byTopicAndSchool: {OpGetAnsweredQuestionsByTopicAndSchool, func(ctx context.Context, r ImamQuestionsRepository, f models.AnsweredQuestionFilter) ([]models.ImamQuestion, error) {
			return r.GetAnsweredQuestionsByTopicAndSchoolOfThought(ctx, *f.Topic, *f.SchoolOfThought)
		}},
	}
}

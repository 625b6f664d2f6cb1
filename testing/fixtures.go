package testing

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/Zayd-McArdle/MasjidApp/utils"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestUser creates a staff user that may author announcements
func (tf *TestFixtures) CreateTestUser(username string) (*models.User, error) {
	user := &models.User{
		FullName: "Test User " + username,
		Username: username,
	}
	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}
	return user, nil
}

// CreateTestEvent creates a confirmed weekly class a week from now
func (tf *TestFixtures) CreateTestEvent(title string) (*models.Event, error) {
	event := &models.Event{
		Title:       title,
		Date:        utils.UTCNow().Add(7 * 24 * time.Hour).Truncate(time.Second),
		Type:        models.EventTypeClass,
		Recurrence:  models.EventRecurrenceWeekly,
		Status:      models.EventStatusConfirmed,
		FullName:    "Event Organiser",
		PhoneNumber: fmt.Sprintf("07700%06d", rand.IntN(1000000)),
	}
	if err := tf.DB.DB.Create(event).Error; err != nil {
		return nil, fmt.Errorf("failed to create test event: %w", err)
	}
	return event, nil
}

// CreateTestQuestion creates a question, answered by imamName when it is
// not empty.
func (tf *TestFixtures) CreateTestQuestion(topic string, school *models.SchoolOfThought, imamName string) (*models.ImamQuestion, error) {
	question := &models.ImamQuestion{
		Title:           "Question about " + topic,
		Topic:           topic,
		SchoolOfThought: school,
		Description:     "What is the ruling on " + topic + "?",
		DateOfQuestion:  utils.UTCNow().Truncate(time.Second),
	}
	if imamName != "" {
		question.ImamName = utils.ToPtr(imamName)
		question.Answer = utils.ToPtr("It depends on the circumstances.")
		question.DateAnswered = utils.ToPtr(utils.UTCNow().Truncate(time.Second))
	}
	if err := tf.DB.DB.Create(question).Error; err != nil {
		return nil, fmt.Errorf("failed to create test question: %w", err)
	}
	return question, nil
}

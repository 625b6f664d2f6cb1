package businessflow

import (
	"github.com/Zayd-McArdle/MasjidApp/repository"
)

// Coordinators holds one tier coordinator per feature.
type Coordinators struct {
	Events        *repository.Coordinator[repository.EventsRepository]
	PrayerTimes   *repository.Coordinator[repository.PrayerTimesRepository]
	ImamQuestions *repository.Coordinator[repository.ImamQuestionsRepository]
	Announcements *repository.Coordinator[repository.AnnouncementsRepository]
}

// Flows groups the use cases exposed over HTTP.
type Flows struct {
	Events        EventsFlow
	PrayerTimes   PrayerTimesFlow
	AskImam       AskImamFlow
	Announcements AnnouncementsFlow
}

func NewFlows(c Coordinators) Flows {
	return Flows{
		Events:        NewEventsFlow(c.Events),
		PrayerTimes:   NewPrayerTimesFlow(c.PrayerTimes),
		AskImam:       NewAskImamFlow(c.ImamQuestions),
		Announcements: NewAnnouncementsFlow(c.Announcements),
	}
}

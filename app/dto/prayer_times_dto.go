package dto

// PrayerTimesSync is the result of a prayer-times read. Data is empty when
// the caller already holds Hash.
type PrayerTimesSync struct {
	Data      []byte
	Hash      string
	Unchanged bool
}

type UpsertPrayerTimesRequest struct {
	Data []byte
	Hash string
}

type UpsertPrayerTimesResponse struct {
	Message string `json:"message"`
	Hash    string `json:"hash"`
}

package models

// TimeSlot is a bookable interval at a service center on a given date.
// Times are "HH:MM" strings in the center's local timezone.
type TimeSlot struct {
	StartTime            string   `bson:"startTime" json:"startTime"`
	EndTime              string   `bson:"endTime" json:"endTime"`
	AvailableTechnicians []string `bson:"availableTechnicians" json:"availableTechnicians"`
}

// Label renders the slot as "HH:MM-HH:MM", the form clients select by.
func (s TimeSlot) Label() string {
	return s.StartTime + "-" + s.EndTime
}

// DaySchedule holds the configured slots for one (center, date) pair.
type DaySchedule struct {
	CenterID string     `bson:"centerId" json:"centerId"`
	Date     string     `bson:"date" json:"date"` // "2006-01-02"
	Slots    []TimeSlot `bson:"slots" json:"slots"`
}

// SlotPage is one page of filtered slots returned to the wizard.
type SlotPage struct {
	Slots   []TimeSlot `json:"slots"`
	HasMore bool       `json:"hasMore"`
	Total   int        `json:"total"`
}

package userctx

// UserContext is the per-user preference document. It is a small free-text
// record the assistant consults when routing prompts and building digests.
type UserContext struct {
	PersonalDetails string `json:"personalDetails"`
	Priorities      string `json:"priorities"`
	Notes           string `json:"notes"`
	ReminderTiming  string `json:"reminderTiming"`
}

const defaultReminderTiming = "15"

// Default returns the document used whenever no stored context is available.
// Absence of prior context must never block downstream features.
func Default() UserContext {
	return UserContext{ReminderTiming: defaultReminderTiming}
}

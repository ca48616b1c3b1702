package reminder

// DefaultCountryCode is prefixed to stored phone numbers.
const DefaultCountryCode = "91"

// Reminder is a payment reminder ready to be sent.
type Reminder struct {
	RecordID int64  `json:"record_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
	Link     string `json:"link"`
	Copied   bool   `json:"copied"`
	Opened   bool   `json:"opened"`
}

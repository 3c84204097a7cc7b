package domain

type NotificationPreferences struct {
	ReceiveFeedbackNotifications bool `json:"receiveFeedbackNotifications"`
}

// DefaultPreferences is used when nothing has been stored yet.
func DefaultPreferences() NotificationPreferences {
	return NotificationPreferences{ReceiveFeedbackNotifications: true}
}

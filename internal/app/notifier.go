package app

// Severity classifies a user-facing notification.
type Severity string

// SeverityInfo and related constants define notification severities.
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is one transient message raised for the user.
type Notification struct {
	Severity Severity
	Message  string
}

// Notifier displays notifications. How they are animated is up to the implementation.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

// Notify calls f.
func (f NotifierFunc) Notify(n Notification) {
	if f != nil {
		f(n)
	}
}

// Notifiers fans one notification out to every non-nil notifier.
func Notifiers(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(n Notification) {
		for _, notifier := range notifiers {
			if notifier != nil {
				notifier.Notify(n)
			}
		}
	})
}

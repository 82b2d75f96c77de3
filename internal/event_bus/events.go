package event_bus

// Event types published after the event store confirmed a write.
const (
	CalendarEventCreated EventType = "calendar.event.created"
	CalendarEventUpdated EventType = "calendar.event.updated"
	CalendarEventDeleted EventType = "calendar.event.deleted"
)

// EventChanged is the payload for all three calendar event lifecycle types.
type EventChanged struct {
	EventId string
	OwnerId string
	Title   string
}

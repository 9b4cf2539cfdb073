package widgets

import "path/filepath"

// Event is a calendar entry. Date and Time are stored as the client sent
// them; the store does no calendar math.
type Event struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Note  string `json:"note"`
}

// EventPatch carries partial updates; nil fields are left untouched.
type EventPatch struct {
	Title *string `json:"title"`
	Date  *string `json:"date"`
	Time  *string `json:"time"`
	Note  *string `json:"note"`
}

// Events is the file-backed calendar.
type Events struct {
	path string
}

// NewEvents creates an event store under the given data directory.
func NewEvents(dir string) *Events {
	return &Events{path: filepath.Join(dir, "events.json")}
}

// List returns all events in insertion order.
func (e *Events) List() ([]Event, error) {
	return readList[Event](e.path)
}

// Create appends an event with the next sequential id.
func (e *Events) Create(title, date, timeOfDay, note string) (Event, error) {
	events, err := readList[Event](e.path)
	if err != nil {
		return Event{}, err
	}

	id := 1
	if len(events) > 0 {
		id = nextID(events[len(events)-1].ID, len(events))
	}
	ev := Event{ID: id, Title: title, Date: date, Time: timeOfDay, Note: note}
	events = append(events, ev)
	if err := writeList(e.path, events); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// Update applies the non-nil patch fields. Returns ErrNotFound for an
// unknown id.
func (e *Events) Update(id int, patch EventPatch) (Event, error) {
	events, err := readList[Event](e.path)
	if err != nil {
		return Event{}, err
	}

	for i := range events {
		if events[i].ID != id {
			continue
		}
		if patch.Title != nil {
			events[i].Title = *patch.Title
		}
		if patch.Date != nil {
			events[i].Date = *patch.Date
		}
		if patch.Time != nil {
			events[i].Time = *patch.Time
		}
		if patch.Note != nil {
			events[i].Note = *patch.Note
		}
		if err := writeList(e.path, events); err != nil {
			return Event{}, err
		}
		return events[i], nil
	}
	return Event{}, ErrNotFound
}

// Delete removes an event and reports whether anything was removed.
func (e *Events) Delete(id int) (bool, error) {
	events, err := readList[Event](e.path)
	if err != nil {
		return false, err
	}

	kept := events[:0]
	for _, ev := range events {
		if ev.ID != id {
			kept = append(kept, ev)
		}
	}
	deleted := len(kept) != len(events)
	if err := writeList(e.path, kept); err != nil {
		return false, err
	}
	return deleted, nil
}

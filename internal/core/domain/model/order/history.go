package order

import "time"

// HistoryEntry records a status the order entered.
type HistoryEntry struct {
	status    Status
	timestamp time.Time
	note      string
}

// NewHistoryEntry creates an entry. The timestamp is stored in UTC.
func NewHistoryEntry(status Status, timestamp time.Time, note string) HistoryEntry {
	return HistoryEntry{status: status, timestamp: timestamp.UTC(), note: note}
}

func (h HistoryEntry) Status() Status { return h.status }
func (h HistoryEntry) Timestamp() time.Time { return h.timestamp }
func (h HistoryEntry) Note() string { return h.note }

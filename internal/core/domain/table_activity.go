package domain

import "time"

// TableActivity describes the most recent write to a storage table.
// Revision grows by one per write statement, so two writes sharing a
// timestamp still produce distinct activities.
type TableActivity struct {
	Table       string
	LastWriteAt time.Time
	Revision    int64
}

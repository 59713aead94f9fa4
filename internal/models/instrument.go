package models

import "time"

// User — владелец инструментов.
type User struct {
	ID          int64
	Email       string
	Active      bool
	DateCreated time.Time
}

// Instrument — музыкальный инструмент.
// ID == 0 означает, что инструмент ещё не сохранён.
type Instrument struct {
	ID          int64
	Type        string
	Make        string
	Model       string
	DateCreated time.Time
}

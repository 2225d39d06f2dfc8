package tui

import "time"

// statusTimeout is how long a status line stays up.
const statusTimeout = 4 * time.Second

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	err   error
	bytes int
}

// clearStatusMsg clears the status line if it is still the one with this id.
type clearStatusMsg struct {
	id int
}

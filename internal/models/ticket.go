package models

import "strings"

// Ticket is the data read from an issue page on every invocation.
type Ticket struct {
	Key     string `json:"key"`
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

// Project returns the part of the key before the first "-".
func (t Ticket) Project() string {
	project, _, _ := strings.Cut(t.Key, "-")
	return project
}

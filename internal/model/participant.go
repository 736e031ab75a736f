package model

import "time"

// Participant is a named session for one connected user.
// The name doubles as the identity token; it is unique among
// active participants.
type Participant struct {
	Name          string    `json:"name"`
	LastHeartbeat time.Time `json:"lastHeartbeat"`
}

// StaleAt reports whether the participant's last heartbeat is older
// than threshold as of now.
func (p *Participant) StaleAt(now time.Time, threshold time.Duration) bool {
	return now.Sub(p.LastHeartbeat) > threshold
}

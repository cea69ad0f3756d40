package entity

import "time"

// Match is the saved state of an unfinished match, keyed by session.
type Match struct {
	SessionID string    `json:"session_id"`
	Board     [][]Chip  `json:"board"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMatch(sessionID string, board [][]Chip) *Match {
	return &Match{
		SessionID: sessionID,
		Board:     board,
		UpdatedAt: time.Now().UTC(),
	}
}

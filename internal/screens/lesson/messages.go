package lesson

import "github.com/abhisek/climassist/internal/rewards"

// recordedMsg is sent once a submitted quiz has been persisted.
type recordedMsg struct {
	Passed bool
	Award  *rewards.Award
}

package room

import "time"

const (
	defaultStaleAfter   = 7 * 24 * time.Hour
	defaultCodeAttempts = 10
	// MaxNicknameLength bounds a player's nickname in characters.
	MaxNicknameLength = 20
)

// Config configures room sessions.
type Config struct {
	// StaleAfter is the idle time after which a room is evicted.
	StaleAfter time.Duration
	// CodeAttempts bounds room code generation retries on collision.
	CodeAttempts int
}

func (c Config) withDefaults() Config {
	if c.StaleAfter <= 0 {
		c.StaleAfter = defaultStaleAfter
	}
	if c.CodeAttempts <= 0 {
		c.CodeAttempts = defaultCodeAttempts
	}
	return c
}

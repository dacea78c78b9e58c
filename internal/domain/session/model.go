package session

import "time"

// Token bearer-токен сотрудника и момент, после которого он не принимается.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

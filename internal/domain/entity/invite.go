package entity

import "time"

// Invite convite de registro: token uuid de uso único con expiración de 24h
// y rol pre-asignado. El email es único mientras el convite esté pendiente.
type Invite struct {
	IDInvite  int64
	SenderID  int64
	Token     string // uuid único
	Email     string // único mientras pendiente
	Role      string
	ExpiresAt time.Time
	Audit
}

// Expired indica si el convite ya venció respecto al instante dado.
func (i Invite) Expired(now time.Time) bool {
	return i.ExpiresAt.Before(now)
}

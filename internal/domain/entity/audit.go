package entity

import "time"

// Audit campos comunes a todas las tablas: borrado lógico vía fl_active,
// timestamps y referencias al usuario creador/actualizador.
type Audit struct {
	FlActive       bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	CreationUserID int64
	UpdateUserID   *int64
}

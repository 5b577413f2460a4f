package entity

// BottleBrand marca de botella. El nombre es único de forma
// case- y accent-insensitive.
type BottleBrand struct {
	IDBottleBrand int64
	Name          string
	Audit
}

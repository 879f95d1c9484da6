package entities

import "fmt"

// LocatedSecret is one secret-bearing field found during a scan pass.
// It is rebuilt on every pass; only its scalar parts are persisted.
type LocatedSecret struct {
	EnvID      string
	EnvName    string
	Field      string
	Value      string
	EnvSortKey float64
}

// Ref identifies the secret without exposing its value.
func (s LocatedSecret) Ref() string {
	return fmt.Sprintf("%s/%s", s.EnvID, s.Field)
}

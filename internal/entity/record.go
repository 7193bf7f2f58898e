package entity

import "github.com/google/uuid"

// Record is a plain Instance value used by the Postgres loader and by
// tests that don't need a richer model.
type Record struct {
	RecordID     uuid.UUID
	Name         string
	Type         *Type
	ParentRecord *Record
}

func (r *Record) ID() uuid.UUID     { return r.RecordID }
func (r *Record) Label() string     { return r.Name }
func (r *Record) EntityType() *Type { return r.Type }

func (r *Record) Parent() Instance {
	if r.ParentRecord == nil {
		return nil
	}
	return r.ParentRecord
}

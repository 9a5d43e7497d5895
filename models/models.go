package models

import (
	"fmt"
	"strings"
)

// Table references a whole table by name.
type Table string

// RecordID references a single record as a table name plus an
// identifier within that table. Encoded on the wire as a two-element
// array under the record id CBOR tag.
type RecordID struct {
	_     struct{} `cbor:",toarray"`
	Table string
	ID    any
}

func NewRecordID(table string, id any) RecordID {
	return RecordID{Table: table, ID: id}
}

// ParseRecordID splits a "table:identifier" string once on the first
// ':'. Reports false for a bare table name.
func ParseRecordID(s string) (RecordID, bool) {
	table, id, ok := strings.Cut(s, ":")
	if !ok {
		return RecordID{}, false
	}
	return RecordID{Table: table, ID: id}, true
}

func (r RecordID) String() string {
	return fmt.Sprintf("%s:%v", r.Table, r.ID)
}

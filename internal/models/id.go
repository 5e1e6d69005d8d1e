package models

import "strconv"

// ID is the server-assigned identity of a persisted entity. Zero means the
// entity has not been persisted yet.
type ID int64

func (id ID) IsSet() bool {
	return id != 0
}

// Ref returns a pointer to id, or nil when id is unset.
func (id ID) Ref() *ID {
	if id == 0 {
		return nil
	}
	return &id
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// Keyed is implemented by every entity pointer type.
type Keyed interface {
	comparable
	Key() (ID, bool)
}

// SameEntity reports whether a and b denote the same persisted entity. Two
// entities are the same when both carry a set, equal ID. An entity without
// an ID is only the same as itself.
func SameEntity[E Keyed](a, b E) bool {
	if a == b {
		return true
	}
	var zero E
	if a == zero || b == zero {
		return false
	}
	ka, okA := a.Key()
	kb, okB := b.Key()
	return okA && okB && ka == kb
}

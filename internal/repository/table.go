package repository

import (
	"fmt"
	"time"

	"coopcycle-service/internal/models"
)

// RootAlias prefixes the columns of the entity a query is fetching.
const RootAlias = "e"

type Kind int

const (
	KindID Kind = iota
	KindText
	KindFloat
	KindTime
	KindEnum
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindText:
		return "text"
	case KindFloat:
		return "float"
	case KindTime:
		return "timestamp"
	case KindEnum:
		return "enum"
	case KindRef:
		return "reference"
	default:
		return "unknown"
	}
}

// Column describes one scalar column of an entity table. get returns the
// value bound as a query argument (nil for an unset nullable field); set
// receives a value already coerced to the Go type of the field.
type Column[E any] struct {
	Name     string
	Property string
	Kind     Kind
	Nullable bool

	enum []string
	get  func(*E) any
	set  func(*E, any)
}

func Text[E any](name, property string, field func(*E) *string) Column[E] {
	return Column[E]{
		Name:     name,
		Property: property,
		Kind:     KindText,
		get:      func(e *E) any { return *field(e) },
		set:      func(e *E, v any) { *field(e) = v.(string) },
	}
}

func OptionalText[E any](name, property string, field func(*E) **string) Column[E] {
	return Column[E]{
		Name:     name,
		Property: property,
		Kind:     KindText,
		Nullable: true,
		get: func(e *E) any {
			if p := *field(e); p != nil {
				return *p
			}
			return nil
		},
		set: func(e *E, v any) {
			s := v.(string)
			*field(e) = &s
		},
	}
}

func Float[E any](name, property string, field func(*E) *float64) Column[E] {
	return Column[E]{
		Name:     name,
		Property: property,
		Kind:     KindFloat,
		get:      func(e *E) any { return *field(e) },
		set:      func(e *E, v any) { *field(e) = v.(float64) },
	}
}

func Timestamp[E any](name, property string, field func(*E) *time.Time) Column[E] {
	return Column[E]{
		Name:     name,
		Property: property,
		Kind:     KindTime,
		get:      func(e *E) any { return *field(e) },
		set:      func(e *E, v any) { *field(e) = v.(time.Time) },
	}
}

func Enum[E any, T ~string](name, property string, field func(*E) *T, values []T) Column[E] {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return Column[E]{
		Name:     name,
		Property: property,
		Kind:     KindEnum,
		enum:     names,
		get:      func(e *E) any { return string(*field(e)) },
		set:      func(e *E, v any) { *field(e) = T(v.(string)) },
	}
}

// Ref is a foreign-key column. It is written as NULL when the id is unset.
func Ref[E any](name, property string, field func(*E) **models.ID) Column[E] {
	return Column[E]{
		Name:     name,
		Property: property,
		Kind:     KindRef,
		Nullable: true,
		get: func(e *E) any {
			if p := *field(e); p != nil && p.IsSet() {
				return int64(*p)
			}
			return nil
		},
		set: func(e *E, v any) {
			id := v.(models.ID)
			*field(e) = &id
		},
	}
}

// group is the type-erased view of a table used when it is joined as
// another table's association.
type group interface {
	tableName() string
	columnNames() []string
	decodeGroup(row Row, prefix string) (any, bool, error)
}

// Relation is a direct one-to-one association stored as FK on the root table
// and fetched with a LEFT OUTER JOIN aliased Alias.
type Relation[E any] struct {
	Alias    string
	FK       string
	Property string

	target group
	attach func(*E, any)
}

// HasOne declares that E references A through fk. attach must keep the
// in-memory object and the fk id consistent (the entity setters do).
func HasOne[E, A any](alias, fk, property string, target *Table[A], attach func(*E, *A)) Relation[E] {
	return Relation[E]{
		Alias:    alias,
		FK:       fk,
		Property: property,
		target:   target,
		attach:   func(e *E, v any) { attach(e, v.(*A)) },
	}
}

// Table is the metadata the generic engine needs for one entity: its table,
// its columns (id first, declared fields, then foreign keys) and its direct
// associations.
type Table[E any] struct {
	Name      string
	Columns   []Column[E]
	Relations []Relation[E]

	id func(*E) *models.ID
}

func NewTable[E any](name string, id func(*E) *models.ID, columns ...Column[E]) *Table[E] {
	idColumn := Column[E]{
		Name:     "id",
		Property: "id",
		Kind:     KindID,
		get:      func(e *E) any { return int64(*id(e)) },
		set:      func(e *E, v any) { *id(e) = v.(models.ID) },
	}
	return &Table[E]{
		Name:    name,
		Columns: append([]Column[E]{idColumn}, columns...),
		id:      id,
	}
}

func (t *Table[E]) ID(e *E) models.ID {
	return *t.id(e)
}

func (t *Table[E]) SetID(e *E, id models.ID) {
	*t.id(e) = id
}

func (t *Table[E]) tableName() string {
	return t.Name
}

func (t *Table[E]) columnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func (t *Table[E]) column(property string) (Column[E], bool) {
	for _, c := range t.Columns {
		if c.Property == property || c.Name == property {
			return c, true
		}
	}
	return Column[E]{}, false
}

func (t *Table[E]) relation(property string) (Relation[E], bool) {
	for _, r := range t.Relations {
		if r.Property == property || r.Alias == property {
			return r, true
		}
	}
	return Relation[E]{}, false
}

// Associations lists the properties of the direct associations of E.
func (t *Table[E]) Associations() []string {
	props := make([]string, len(t.Relations))
	for i, r := range t.Relations {
		props[i] = r.Property
	}
	return props
}

// validate checks that every relation points at a declared foreign key and
// that no two selected columns end up with the same alias.
func (t *Table[E]) validate() error {
	seen := make(map[string]string)
	add := func(alias, owner string) error {
		if prev, dup := seen[alias]; dup {
			return fmt.Errorf("table %s: column alias %q used by %s and %s", t.Name, alias, prev, owner)
		}
		seen[alias] = owner
		return nil
	}

	for _, c := range t.Columns {
		if err := add(RootAlias+"_"+c.Name, t.Name); err != nil {
			return err
		}
	}

	for _, r := range t.Relations {
		if r.Alias == RootAlias {
			return fmt.Errorf("table %s: relation alias %q is reserved", t.Name, r.Alias)
		}
		c, ok := t.column(r.FK)
		if !ok || c.Kind != KindRef {
			return fmt.Errorf("table %s: relation %s has no foreign key column %s", t.Name, r.Alias, r.FK)
		}
		for _, name := range r.target.columnNames() {
			if err := add(r.Alias+"_"+name, r.target.tableName()); err != nil {
				return err
			}
		}
	}
	return nil
}

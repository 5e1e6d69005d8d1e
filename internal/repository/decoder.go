package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Row is one physical result row keyed by column label.
type Row map[string]any

func scanRow(rows pgx.Rows) (Row, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, err
	}

	fields := rows.FieldDescriptions()
	row := make(Row, len(fields))
	for i, fd := range fields {
		if i < len(values) {
			row[fd.Name] = values[i]
		}
	}
	return row, nil
}

// Decode builds one E from the columns labelled <prefix>_<column>. When the
// group's id column is absent or NULL (an outer join without a match) it
// reports ok == false and no entity.
func (t *Table[E]) Decode(row Row, prefix string) (e *E, ok bool, err error) {
	if raw, present := row[prefix+"_id"]; !present || raw == nil {
		return nil, false, nil
	}

	e = new(E)
	for _, c := range t.Columns {
		label := prefix + "_" + c.Name
		raw, present := row[label]
		if !present {
			return nil, false, fmt.Errorf("%w: row has no column %s", ErrConversion, label)
		}
		if raw == nil {
			continue
		}

		v, err := coerce(c.Kind, c.enum, raw)
		if err != nil {
			return nil, false, fmt.Errorf("decode %s.%s: %w", t.Name, label, err)
		}
		c.set(e, v)
	}
	return e, true, nil
}

func (t *Table[E]) decodeGroup(row Row, prefix string) (any, bool, error) {
	e, ok, err := t.Decode(row, prefix)
	if err != nil || !ok {
		return nil, ok, err
	}
	return e, true, nil
}

package repository

import "fmt"

// Assemble decodes the root group of a joined row and wires every
// association whose group decoded to an entity. Missing associations stay
// unset.
func (t *Table[E]) Assemble(row Row) (*E, error) {
	root, ok, err := t.Decode(row, RootAlias)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s row without %s_id", ErrConversion, t.Name, RootAlias)
	}

	for _, rel := range t.Relations {
		v, ok, err := rel.target.decodeGroup(row, rel.Alias)
		if err != nil {
			return nil, fmt.Errorf("assemble %s.%s: %w", t.Name, rel.Alias, err)
		}
		if ok {
			rel.attach(root, v)
		}
	}
	return root, nil
}

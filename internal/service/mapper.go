package service

import "coopcycle-service/internal/models"

// Entity bundles what the service needs to know about one entity type: its
// name in alerts and events, the conversions between the entity graph and
// its transfer object, and the fields a partial update may overwrite.
type Entity[E, D any] struct {
	Name     string
	ToDTO    func(*E) *D
	ToEntity func(*D) *E
	DTOID    func(*D) *models.ID
	Patch    Patch[E, D]
}

// ToDTOs maps a slice, preserving order.
func (m Entity[E, D]) ToDTOs(list []*E) []*D {
	out := make([]*D, 0, len(list))
	for _, e := range list {
		out = append(out, m.ToDTO(e))
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}

func val[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// clone copies an optional value so entity and DTO never share storage.
func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func idOf(p *models.ID) models.ID {
	return val(p)
}

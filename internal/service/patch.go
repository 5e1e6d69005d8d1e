package service

// Patch lists the scalar fields of E a sparse payload D may overwrite. A nil
// field in the payload means "not specified" and leaves the stored value.
type Patch[E, D any] []func(dst *E, src *D)

// Field copies *get(src) into dst through set when the payload carries it.
func Field[E, D, V any](get func(*D) *V, set func(*E, V)) func(*E, *D) {
	return func(dst *E, src *D) {
		if v := get(src); v != nil {
			set(dst, *v)
		}
	}
}

// Apply merges src onto dst. Associations are never touched.
func (p Patch[E, D]) Apply(dst *E, src *D) {
	if dst == nil || src == nil {
		return
	}
	for _, merge := range p {
		merge(dst, src)
	}
}

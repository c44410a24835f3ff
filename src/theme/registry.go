package theme

// GetSchemeByID returns a scheme by id, defaulting to grayscale if not found
func GetSchemeByID(id string) Scheme {
	for _, s := range catalog {
		if s.ID == id {
			s.Slots = append([]Slot(nil), s.Slots...)
			return s
		}
	}
	return DefaultScheme()
}

// HasScheme reports whether id names a catalog scheme
func HasScheme(id string) bool {
	for _, s := range catalog {
		if s.ID == id {
			return true
		}
	}
	return false
}

// DefaultScheme returns the designated default scheme
func DefaultScheme() Scheme {
	s := catalog[0]
	s.Slots = append([]Slot(nil), s.Slots...)
	return s
}

// ListSchemes returns all schemes in catalog order.
// The result is a deep copy; mutating it never touches the catalog.
func ListSchemes() []Scheme {
	out := make([]Scheme, len(catalog))
	for i, s := range catalog {
		s.Slots = append([]Slot(nil), s.Slots...)
		out[i] = s
	}
	return out
}

// SchemeIDs returns the scheme ids in catalog order
func SchemeIDs() []string {
	ids := make([]string, 0, len(catalog))
	for _, s := range catalog {
		ids = append(ids, s.ID)
	}
	return ids
}

// IsLight reports whether a scheme renders in light mode
func IsLight(id string) bool {
	return lightSchemes[id]
}

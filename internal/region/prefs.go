package region

import "github.com/travelnurselog/contractmap/internal/contracts"

// Preferences maps region names to visibility. Absent keys read as
// hidden; there is no error path for unknown or missing entries.
type Preferences map[string]bool

// Enabled reports whether the named region is switched on.
func (p Preferences) Enabled(name string) bool {
	return p[name]
}

// Clone returns an independent copy so cached preference snapshots are
// unaffected by later caller mutation.
func (p Preferences) Clone() Preferences {
	out := make(Preferences, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// AllEnabled returns preferences with every known region switched on.
func AllEnabled() Preferences {
	p := make(Preferences, len(Table)+1)
	for _, name := range Names() {
		p[name] = true
	}
	return p
}

// FilterContracts keeps contracts whose classified region is enabled.
// Rows without usable coordinates are dropped rather than defaulted into
// a region. Input order is preserved and no row is mutated.
func FilterContracts(list []contracts.Contract, prefs Preferences) []contracts.Contract {
	out := make([]contracts.Contract, 0, len(list))
	for _, c := range list {
		if !c.HasCoordinates() {
			continue
		}
		if prefs.Enabled(Classify(float64(c.Latitude), float64(c.Longitude))) {
			out = append(out, c)
		}
	}
	return out
}

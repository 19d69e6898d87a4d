package entity

// ExecutorRecord is one row of the executor table. A zero CaseOffset marks a
// nominative (canonical) name; otherwise the row is an inflected form and its
// nominative lives CaseOffset rows earlier.
type ExecutorRecord struct {
	Name       string `json:"name"`
	CaseOffset int    `json:"case_offset"`
}

// IsNominative reports whether the record is the canonical form.
func (r ExecutorRecord) IsNominative() bool { return r.CaseOffset == 0 }

// ExecutorTable keeps file order; offsets are positional.
type ExecutorTable []ExecutorRecord

// Nominative resolves the record at index i to its canonical record.
func (t ExecutorTable) Nominative(i int) (ExecutorRecord, bool) {
	if i < 0 || i >= len(t) {
		return ExecutorRecord{}, false
	}
	j := i - t[i].CaseOffset
	if j < 0 || j > i {
		return ExecutorRecord{}, false
	}
	return t[j], true
}

// District is the set of plate-code abbreviations of one district.
type District map[string]struct{}

// NewDistrict builds a District from its codes.
func NewDistrict(codes ...string) District {
	d := make(District, len(codes))
	for _, c := range codes {
		d[c] = struct{}{}
	}
	return d
}

// Has reports whether code belongs to the district.
func (d District) Has(code string) bool {
	_, ok := d[code]
	return ok
}

// DistrictTable keeps file order.
type DistrictTable []District

// Contains reports whether any district lists code. It stops at the first hit.
func (t DistrictTable) Contains(code string) bool {
	for _, d := range t {
		if d.Has(code) {
			return true
		}
	}
	return false
}

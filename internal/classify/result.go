package classify

// Result accumulates the three fields of a document. Each field is written at
// most once; later matches for a filled field are ignored.
type Result struct {
	DocType string
	Issuer  string
	Mark    string
	Scanned int // lines consumed before classification stopped
}

func setOnce(field *string, v string) bool {
	if *field != "" || v == "" {
		return false
	}
	*field = v
	return true
}

func (r *Result) SetDocType(v string) bool { return setOnce(&r.DocType, v) }
func (r *Result) SetIssuer(v string) bool  { return setOnce(&r.Issuer, v) }
func (r *Result) SetMark(v string) bool    { return setOnce(&r.Mark, v) }

// Complete reports whether doctype, issuer and mark are all set.
func (r Result) Complete() bool {
	return r.DocType != "" && r.Issuer != "" && r.Mark != ""
}

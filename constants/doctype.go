package constants

// DocType maps a document title phrase, as it appears in the extracted text,
// to the short slug used in the canonical file name.
type DocType struct {
	Phrase string
	Slug   string
}

// DocTypes is compiled, in this order, into one alternation. Matching is
// leftmost-first, so "Oznámenie" wins over the longer phrase starting at
// the same position.
var DocTypes = []DocType{
	{Phrase: "UZNESENIE", Slug: "uznesenie"},
	{Phrase: "Žiadosť", Slug: "ziadost"},
	{Phrase: "Upovedomenie", Slug: "upovedomenie"},
	{Phrase: "EXEKUČNÝ PRÍKAZ", Slug: "ep"},
	{Phrase: "Oznámenie", Slug: "oznamenie"},
	{Phrase: "Oznámenie o ukončení exekúcie", Slug: "oznamenie_ukonceni_exekucie"},
	{Phrase: "Konečné vyúčtovanie", Slug: "vyuctovanie"},
	{Phrase: "Platobný predpis", Slug: "prikaz_na_uhradu"},
}

// DocTypeExclusion is boilerplate ("the notice must be accompanied by ...")
// that contains a title phrase but never names the document itself.
const DocTypeExclusion = "Oznámenie musí byť doložené"

// SlugFor returns the slug registered for phrase.
func SlugFor(phrase string) (string, bool) {
	for _, dt := range DocTypes {
		if dt.Phrase == phrase {
			return dt.Slug, true
		}
	}
	return "", false
}

// CourtIssuerPrefix is prepended to a district court code ("BA1" -> "OSBA1").
const CourtIssuerPrefix = "OS"

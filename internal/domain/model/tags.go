package model

// SmartTag is a tag extracted from reservation notes, with the keyword that
// triggered it.
type SmartTag struct {
	Category string
	Label    string
	Color    string
	Matched  string
}

// CRMTag is a tag produced by the CRM tag analysis of special requests.
type CRMTag struct {
	Tag      string
	Category string
	Color    string
}

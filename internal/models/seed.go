package models

// SeedFile is the document read by the seed loader.
// Comments is a pointer so a missing key can be told apart from an empty list.
type SeedFile struct {
	Comments *[]SeedRecord `json:"comments"`
}

// SeedRecord is one element of the seed document's comments array
type SeedRecord struct {
	Author *string `json:"author"`
	Text   *string `json:"text"`
	Date   string  `json:"date"`
	Likes  *int    `json:"likes"`
	Image  string  `json:"image,omitempty"`
}

package domain

// Word is a single positioned word from the document's text layer.
// X grows rightward; Top grows downward and keeps increasing across page
// boundaries, so vertical comparisons work document-wide.
type Word struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Top  float64 `json:"top"`
}

// Document is the decoded view of one source document: the linear line
// sequence every extractor scans, plus the positioned words the column
// clusterer needs. Words may be empty when the decoder cannot supply a
// coordinate layer; extractors that need it degrade instead of failing.
type Document struct {
	Lines []string `json:"lines"`
	Words []Word   `json:"words"`
}

// HasGeometry reports whether a word-level coordinate layer is available.
func (d *Document) HasGeometry() bool {
	return len(d.Words) > 0
}

package domain

import "strconv"

// Citation is a structured reference from an assistant answer back to
// the document location used as evidence. Citations are owned by the
// assistant turn that produced them and are read-only.
type Citation struct {
	// DocName is the display name of the cited document.
	DocName string

	// DocID identifies the cited document.
	DocID string

	// ChunkSequence is the ordinal of the cited chunk within the
	// document.
	ChunkSequence int

	// HeadingPath is the section path of the chunk, e.g.
	// "Introduction > Background". May be empty.
	HeadingPath string

	// SourcePages is the page range string as reported by the server,
	// e.g. "5" or "5-7". May be empty.
	SourcePages string
}

// FirstPage returns the page a viewer should open for this citation.
// It takes the leading run of decimal digits from SourcePages and
// defaults to page 1 when the range is absent or unparsable.
func (c Citation) FirstPage() int {
	i := 0
	for i < len(c.SourcePages) && c.SourcePages[i] >= '0' && c.SourcePages[i] <= '9' {
		i++
	}
	if i == 0 {
		return 1
	}

	n, err := strconv.Atoi(c.SourcePages[:i])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Package puzzle fetches the daily mini crossword document and decodes it
// into a strict, read-only model. Validation happens eagerly at this
// boundary; the rest of the pipeline never sees partial or optional fields.
package puzzle

import (
	"encoding/json"
	"fmt"
	"time"
)

// Direction identifies a clue list. The set is closed: the mini format has
// exactly these two.
type Direction int

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	switch d {
	case Across:
		return "Across"
	case Down:
		return "Down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// UnmarshalJSON maps the document's direction names onto the enum. Anything
// else is a schema violation.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Across":
		*d = Across
	case "Down":
		*d = Down
	default:
		return fmt.Errorf("unknown clue list direction %q", s)
	}
	return nil
}

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("publication date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Display renders the date the way it appears on the receipt, with no
// zero-padding on the day of month.
func (d Date) Display() string {
	return d.Format("Monday, January 2, 2006")
}

// Puzzle is the fetched document. It is built once by Fetch and read-only
// afterwards.
type Puzzle struct {
	Boards          []Board  `json:"body"`
	Constructors    []string `json:"constructors"`
	Editor          string   `json:"editor"`
	PublicationDate Date     `json:"publicationDate"`
}

// Board is one puzzle board: its SVG markup plus the clues. Only the first
// board of a document is printed; the mini format always has exactly one.
type Board struct {
	Markup    string     `json:"board"`
	ClueLists []ClueList `json:"clueLists"`
	Clues     []Clue     `json:"clues"`
}

// ClueList groups the clue references for one direction. The references are
// positions into Board.Clues and keep the document's display order, which is
// not necessarily numeric order.
type ClueList struct {
	Name  Direction `json:"name"`
	Clues []int     `json:"clues"`
}

// Clue is a single clue with its display label (the clue number).
type Clue struct {
	Label string     `json:"label"`
	Text  []ClueText `json:"text"`
}

// ClueText carries the plain form of a clue. The feed also ships formatted
// variants; this pipeline ignores them.
type ClueText struct {
	Plain string `json:"plain"`
}

// validate checks the decoded document against the shape the pipeline
// relies on. Clue list references are deliberately not range-checked here:
// the composer checks them as it resolves each clue.
func (p *Puzzle) validate() error {
	if len(p.Boards) == 0 {
		return fmt.Errorf("document has no boards")
	}
	if len(p.Constructors) == 0 {
		return fmt.Errorf("document has no constructors")
	}
	if p.Editor == "" {
		return fmt.Errorf("document has no editor")
	}
	if p.PublicationDate.IsZero() {
		return fmt.Errorf("document has no publication date")
	}
	for bi := range p.Boards {
		b := &p.Boards[bi]
		if b.Markup == "" {
			return fmt.Errorf("board %d has no markup", bi)
		}
		for ci := range b.Clues {
			if len(b.Clues[ci].Text) == 0 {
				return fmt.Errorf("board %d clue %d has no text", bi, ci)
			}
		}
	}
	return nil
}

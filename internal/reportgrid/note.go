// Package reportgrid reads the markdown notes attached to report grid
// derived filter groups. A note holds a grid info table followed by a
// filter table.
package reportgrid

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/godilite/overlay-server/internal/repository/models"
)

const (
	GridInfoHeader = "| Grid Name | Grid Identifier | Vantage Point Kind | Vantage Point Id |"
	FilterHeader   = "| Filter Column | Column Option Codes |"
)

var ErrMalformedNote = errors.New("malformed report grid note")

var lineBreak = regexp.MustCompile(`\r?\n`)

// Note is the raw cell text of both tables of a note.
type Note struct {
	GridInfo [][]string `yaml:"gridInfo"`
	Filters  [][]string `yaml:"filters"`
}

// ParseNoteText splits text into its grid info and filter tables. Blank text
// yields nil.
func ParseNoteText(text string) *Note {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lines := lineBreak.Split(text, -1)
	return &Note{
		GridInfo: ParseTableData(lines, GridInfoHeader),
		Filters:  ParseTableData(lines, FilterHeader),
	}
}

// ParseTableData returns the rows of the table introduced by header: the
// lines after the header and its separator row, up to the first line that is
// not a table row. Each row is split on '|' with cells trimmed.
func ParseTableData(lines []string, header string) [][]string {
	rows := [][]string{}
	if len(lines) == 0 || header == "" {
		return rows
	}

	want := strings.TrimSpace(header)
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == want {
			start = i + 2
			break
		}
	}
	if start < 0 {
		return rows
	}

	for _, line := range lines[min(start, len(lines)):] {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			break
		}
		rows = append(rows, splitRow(line))
	}
	return rows
}

func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := strings.Split(line, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// GridInfo identifies the grid a note applies to and the entity it is viewed from.
type GridInfo struct {
	Name         string                 `yaml:"name"`
	ExternalID   string                 `yaml:"externalId"`
	VantagePoint models.EntityReference `yaml:"vantagePoint"`
}

// Filter restricts one grid column to a set of option codes.
type Filter struct {
	Column      string   `yaml:"column"`
	OptionCodes []string `yaml:"optionCodes"`
}

// Grid returns the typed grid info row.
func (n *Note) Grid() (GridInfo, error) {
	if n == nil || len(n.GridInfo) == 0 {
		return GridInfo{}, fmt.Errorf("%w: no grid info row", ErrMalformedNote)
	}
	row := n.GridInfo[0]
	if len(row) != 4 {
		return GridInfo{}, fmt.Errorf("%w: grid info row has %d fields, want 4", ErrMalformedNote, len(row))
	}

	id, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		return GridInfo{}, fmt.Errorf("%w: vantage point id %q", ErrMalformedNote, row[3])
	}
	return GridInfo{
		Name:         row[0],
		ExternalID:   row[1],
		VantagePoint: models.EntityReference{Kind: models.EntityKind(strings.ToUpper(row[2])), ID: id},
	}, nil
}

// FilterList returns the typed filter rows. Option codes are separated by ';'.
func (n *Note) FilterList() ([]Filter, error) {
	if n == nil {
		return nil, nil
	}
	out := make([]Filter, 0, len(n.Filters))
	for i, row := range n.Filters {
		if len(row) != 2 {
			return nil, fmt.Errorf("%w: filter row %d has %d fields, want 2", ErrMalformedNote, i+1, len(row))
		}
		var codes []string
		for _, c := range strings.Split(row[1], ";") {
			if c = strings.TrimSpace(c); c != "" {
				codes = append(codes, c)
			}
		}
		out = append(out, Filter{Column: row[0], OptionCodes: codes})
	}
	return out, nil
}

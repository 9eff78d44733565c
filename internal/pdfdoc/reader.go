package pdfdoc

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"creditcli/pkg/contracts/domain"
)

// ErrTooLittleText marks a document whose text layer is too thin to be a
// credit report; the pipeline aborts for that document.
var ErrTooLittleText = errors.New("document yielded too little text")

const (
	// minLines is the floor under which extraction counts as failed.
	minLines = 5

	// rowTolerance groups glyph fragments whose baselines sit within this
	// many points into one row.
	rowTolerance = 2.0

	// wordJoinGap merges adjacent fragments into one word when the
	// horizontal gap between them is below this many points.
	wordJoinGap = 1.0

	// columnGap renders as a double space in the flattened line so the
	// downstream multi-space splitters can see the column boundary.
	columnGap = 8.0

	// pageGap keeps Top strictly increasing across page boundaries.
	pageGap = 50.0
)

// Extract decodes the document at path into the line sequence and
// positioned word layer the parser consumes. The file handle is released
// before return on every path.
func Extract(path string) (*domain.Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	doc := &domain.Document{}
	offset := 0.0

	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		texts := page.Content().Text
		if len(texts) == 0 {
			continue
		}

		rows := groupRows(texts)
		maxY := texts[0].Y
		for _, t := range texts {
			if t.Y > maxY {
				maxY = t.Y
			}
		}

		for _, row := range rows {
			words := mergeFragments(row.fragments)
			top := offset + (maxY - row.y)
			line := joinRow(words)
			if strings.TrimSpace(line) == "" {
				continue
			}
			doc.Lines = append(doc.Lines, line)
			for _, w := range words {
				doc.Words = append(doc.Words, domain.Word{Text: w.text, X: w.x, Top: top})
			}
		}
		offset += maxY + pageGap
	}

	slog.Debug("document decoded",
		slog.String("path", path),
		slog.Int("lines", len(doc.Lines)),
		slog.Int("words", len(doc.Words)))

	if len(doc.Lines) < minLines {
		return nil, fmt.Errorf("%w: %d lines from %s", ErrTooLittleText, len(doc.Lines), path)
	}
	return doc, nil
}

// row is one baseline's worth of glyph fragments.
type row struct {
	y         float64
	fragments []pdf.Text
}

// groupRows buckets text fragments by Y coordinate. PDF Y grows upward, so
// rows sort descending to read top of page first.
func groupRows(texts []pdf.Text) []row {
	var rows []row
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		placed := false
		for i := range rows {
			if abs(rows[i].y-t.Y) < rowTolerance {
				rows[i].fragments = append(rows[i].fragments, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, row{y: t.Y, fragments: []pdf.Text{t}})
		}
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].y > rows[b].y })
	for i := range rows {
		frags := rows[i].fragments
		sort.SliceStable(frags, func(a, b int) bool { return frags[a].X < frags[b].X })
	}
	return rows
}

// word is a merged run of fragments with its start position and end.
type word struct {
	text string
	x    float64
	endX float64
}

// mergeFragments joins adjacent fragments into words: the text layer often
// splits a single word into per-glyph runs with nearly touching boxes.
func mergeFragments(fragments []pdf.Text) []word {
	var words []word
	for _, f := range fragments {
		if len(words) > 0 && f.X-words[len(words)-1].endX < wordJoinGap {
			last := &words[len(words)-1]
			last.text += f.S
			last.endX = f.X + f.W
			continue
		}
		words = append(words, word{text: f.S, x: f.X, endX: f.X + f.W})
	}
	for i := range words {
		words[i].text = strings.TrimSpace(words[i].text)
	}
	return words
}

// joinRow flattens one row into a text line. Ordinary word gaps become a
// single space; column-sized gaps become a double space so positional
// splitting survives the flattening.
func joinRow(words []word) string {
	var b strings.Builder
	for i, w := range words {
		if w.text == "" {
			continue
		}
		if b.Len() > 0 {
			if words[i-1].endX+columnGap < w.x {
				b.WriteString("  ")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(w.text)
	}
	return b.String()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

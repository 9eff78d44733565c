package parsing

import (
	"math"
	"sort"
	"strings"

	"creditcli/pkg/contracts/domain"
)

// Unavailable marks a clustered field that could not be recovered from the
// coordinate layer (too few words, or no geometry at all).
const Unavailable = "unavailable"

// defaultMinClusterWords is the empirical floor below which a 3-way column
// split produces garbage instead of bureau columns.
const defaultMinClusterWords = 6

// defaultTopTolerance is the vertical tolerance, in text-layer units,
// within which two words belong to the same output line.
const defaultTopTolerance = 3.0

// ColumnClassifier partitions positioned words into the three bureau
// columns. Implementations return ok=false when the input cannot support a
// trustworthy split; callers then report the field as unavailable instead
// of guessing. The strategy sits behind an interface so a calibrated
// fixed-band classifier can replace the clustering without touching
// callers.
type ColumnClassifier interface {
	Classify(words []domain.Word) (columns [3][]domain.Word, ok bool)
}

// kmeansClassifier groups words into three columns by 1-D k-means over the
// x coordinate. Centroids seed deterministically from the min, mid, and max
// observed x, so labeling never depends on input order.
type kmeansClassifier struct {
	minWords int
	maxIter  int
}

func newKMeansClassifier(minWords int) *kmeansClassifier {
	if minWords <= 0 {
		minWords = defaultMinClusterWords
	}
	return &kmeansClassifier{minWords: minWords, maxIter: 50}
}

func (c *kmeansClassifier) Classify(words []domain.Word) ([3][]domain.Word, bool) {
	var columns [3][]domain.Word
	if len(words) < c.minWords {
		return columns, false
	}

	xs := make([]float64, len(words))
	for i, w := range words {
		xs[i] = w.X
	}
	sort.Float64s(xs)

	centroids := [3]float64{xs[0], xs[len(xs)/2], xs[len(xs)-1]}
	if centroids[0] == centroids[2] {
		// Every word in one vertical stack; a 3-way split is meaningless.
		return columns, false
	}

	assignments := make([]int, len(words))
	for iter := 0; iter < c.maxIter; iter++ {
		changed := false
		for i, w := range words {
			best := nearestCentroid(w.X, centroids)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		var sums, counts [3]float64
		for i, w := range words {
			sums[assignments[i]] += w.X
			counts[assignments[i]]++
		}
		for k := 0; k < 3; k++ {
			if counts[k] > 0 {
				centroids[k] = sums[k] / counts[k]
			}
		}
		if !changed && iter > 0 {
			break
		}
	}

	for i, w := range words {
		columns[assignments[i]] = append(columns[assignments[i]], w)
	}
	for k := 0; k < 3; k++ {
		if len(columns[k]) == 0 {
			return [3][]domain.Word{}, false
		}
	}

	// Order columns left to right by mean x; the document convention maps
	// that order onto transunion, experian, equifax.
	sort.SliceStable(columns[:], func(a, b int) bool {
		return meanX(columns[a]) < meanX(columns[b])
	})
	return columns, true
}

func nearestCentroid(x float64, centroids [3]float64) int {
	best, bestDist := 0, math.Inf(1)
	for k, c := range centroids {
		if d := math.Abs(x - c); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

func meanX(words []domain.Word) float64 {
	if len(words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range words {
		sum += w.X
	}
	return sum / float64(len(words))
}

// wordLine is one vertical grouping of words.
type wordLine struct {
	top   float64
	words []domain.Word
}

// groupIntoLines buckets words by vertical position: words whose top
// coordinates differ by less than the tolerance share a line. Lines come
// back top to bottom with their words ordered left to right.
func groupIntoLines(words []domain.Word, tolerance float64) []wordLine {
	if tolerance <= 0 {
		tolerance = defaultTopTolerance
	}
	var lines []wordLine
	for _, w := range words {
		placed := false
		for i := range lines {
			if math.Abs(lines[i].top-w.Top) < tolerance {
				lines[i].words = append(lines[i].words, w)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, wordLine{top: w.Top, words: []domain.Word{w}})
		}
	}

	sort.SliceStable(lines, func(a, b int) bool { return lines[a].top < lines[b].top })
	for i := range lines {
		ws := lines[i].words
		sort.SliceStable(ws, func(a, b int) bool { return ws[a].X < ws[b].X })
	}
	return lines
}

func (l wordLine) text() string {
	parts := make([]string, 0, len(l.words))
	for _, w := range l.words {
		if t := strings.TrimSpace(w.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// joinColumn renders one bureau's word set into a single value: vertical
// line grouping, top-to-bottom order, words joined left to right, lines
// joined with a double space.
func joinColumn(words []domain.Word, tolerance float64) string {
	lines := groupIntoLines(words, tolerance)
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := l.text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "  ")
}

// clusterWindow describes one personal-info block: the keyword that opens
// it and the next-section keywords that close it. First end match wins.
type clusterWindow struct {
	start string
	ends  []string
}

// windowWords selects the words lying vertically between the line carrying
// the start keyword and the first later line carrying an end keyword,
// excluding the label lines themselves.
func windowWords(words []domain.Word, win clusterWindow, tolerance float64) []domain.Word {
	lines := groupIntoLines(words, tolerance)

	startIdx := -1
	for i, l := range lines {
		if containsFold(l.text(), win.start) {
			startIdx = i
			break
		}
	}
	if startIdx < 0 {
		return nil
	}

	endIdx := len(lines)
	for i := startIdx + 1; i < len(lines); i++ {
		for _, end := range win.ends {
			if containsFold(lines[i].text(), end) {
				endIdx = i
				break
			}
		}
		if endIdx != len(lines) {
			break
		}
	}

	var out []domain.Word
	for _, l := range lines[startIdx+1 : endIdx] {
		out = append(out, l.words...)
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// clusterBlockValues recovers the three per-bureau values of one block:
// classify the window's words into columns, then join each column into a
// value. A failed classification reports every bureau as unavailable
// rather than producing a garbage split.
func clusterBlockValues(classifier ColumnClassifier, words []domain.Word, tolerance float64) domain.Bureaus[string] {
	var values domain.Bureaus[string]
	columns, ok := classifier.Classify(words)
	if !ok {
		for _, bureau := range domain.BureauOrder {
			values.Set(bureau, Unavailable)
		}
		return values
	}
	for i, bureau := range domain.BureauOrder {
		v := joinColumn(columns[i], tolerance)
		if v == "" {
			v = Unavailable
		}
		values.Set(bureau, v)
	}
	return values
}

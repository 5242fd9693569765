// Package align implements global pairwise nucleotide alignment with
// affine gap penalties, plus read orientation detection.
package align

// Scoring constants, doubled so the half-point gap-extend penalty stays
// in integer arithmetic. Score() and Align() report the true value.
const (
	scoreMatch    = 4  // +2
	scoreMismatch = -2 // -1
	scoreGapOpen  = -4 // -2, charged for the first column of a gap run
	scoreGapExt   = -1 // -0.5, charged for each additional column

	gapChar = byte('-')

	// Small enough to never overflow when a transition penalty is added.
	negInf = -1 << 30
)

// Alignment is a global alignment of a read against the reference.
// Query and Ref have identical length; no column is a gap on both sides.
type Alignment struct {
	Query string
	Ref   string
	Score float64
}

// Columns returns the number of alignment columns.
func (a Alignment) Columns() int { return len(a.Query) }

func substScore(a, b byte) int {
	if a == b {
		return scoreMatch
	}
	return scoreMismatch
}

// DP states for traceback.
const (
	stateDiag = iota // query base aligned to ref base
	stateUp          // query base aligned to a gap in the reference
	stateLeft        // gap in the query aligned to a ref base
)

// Align computes the best global alignment of query against ref under the
// fixed scoring model (match +2, mismatch -1, gap open -2, gap extend -0.5)
// using the three-state affine-gap recurrence.
//
// When several alignments share the optimal score the traceback prefers,
// in order: diagonal, gap in the reference, gap in the query. Callers must
// not rely on a particular path beyond this rule.
func Align(query, ref string) Alignment {
	n, m := len(query), len(ref)
	if n == 0 || m == 0 {
		return Alignment{}
	}

	w := m + 1

	// Three score matrices, row-major: best score ending in a diagonal
	// step (md), a gap in the reference (mu), a gap in the query (ml).
	md := make([]int, (n+1)*w)
	mu := make([]int, (n+1)*w)
	ml := make([]int, (n+1)*w)

	md[0] = 0
	mu[0], ml[0] = negInf, negInf
	for j := 1; j <= m; j++ {
		md[j] = negInf
		mu[j] = negInf
		ml[j] = scoreGapOpen + (j-1)*scoreGapExt
	}
	for i := 1; i <= n; i++ {
		md[i*w] = negInf
		mu[i*w] = scoreGapOpen + (i-1)*scoreGapExt
		ml[i*w] = negInf
	}

	for i := 1; i <= n; i++ {
		row, prev := i*w, (i-1)*w
		for j := 1; j <= m; j++ {
			s := substScore(query[i-1], ref[j-1])
			md[row+j] = max3(md[prev+j-1], mu[prev+j-1], ml[prev+j-1]) + s
			mu[row+j] = max3(md[prev+j]+scoreGapOpen, mu[prev+j]+scoreGapExt, ml[prev+j]+scoreGapOpen)
			ml[row+j] = max3(md[row+j-1]+scoreGapOpen, mu[row+j-1]+scoreGapOpen, ml[row+j-1]+scoreGapExt)
		}
	}

	end := n*w + m
	state := bestState(md[end], mu[end], ml[end])
	score := pick(md[end], mu[end], ml[end], state)

	qa := make([]byte, 0, n+m)
	ra := make([]byte, 0, n+m)

	i, j := n, m
	for i > 0 || j > 0 {
		row := i * w
		switch state {
		case stateDiag:
			want := md[row+j] - substScore(query[i-1], ref[j-1])
			i--
			j--
			qa = append(qa, query[i])
			ra = append(ra, ref[j])
			state = matchState(want, md[(i)*w+j], mu[(i)*w+j], ml[(i)*w+j])
		case stateUp:
			cur := mu[row+j]
			i--
			qa = append(qa, query[i])
			ra = append(ra, gapChar)
			prev := i * w
			switch {
			case md[prev+j]+scoreGapOpen == cur:
				state = stateDiag
			case mu[prev+j]+scoreGapExt == cur:
				state = stateUp
			default:
				state = stateLeft
			}
		default: // stateLeft
			cur := ml[row+j]
			j--
			qa = append(qa, gapChar)
			ra = append(ra, ref[j])
			switch {
			case md[row+j]+scoreGapOpen == cur:
				state = stateDiag
			case mu[row+j]+scoreGapOpen == cur:
				state = stateUp
			default:
				state = stateLeft
			}
		}
	}

	reverse(qa)
	reverse(ra)

	return Alignment{Query: string(qa), Ref: string(ra), Score: float64(score) / 2}
}

// Score computes the optimal global alignment score without a traceback,
// keeping only two rows of each DP matrix.
func Score(query, ref string) float64 {
	n, m := len(query), len(ref)
	if n == 0 || m == 0 {
		return 0
	}

	md := make([]int, m+1)
	mu := make([]int, m+1)
	ml := make([]int, m+1)
	pd := make([]int, m+1)
	pu := make([]int, m+1)
	pl := make([]int, m+1)

	pd[0], pu[0], pl[0] = 0, negInf, negInf
	for j := 1; j <= m; j++ {
		pd[j] = negInf
		pu[j] = negInf
		pl[j] = scoreGapOpen + (j-1)*scoreGapExt
	}

	for i := 1; i <= n; i++ {
		md[0] = negInf
		mu[0] = scoreGapOpen + (i-1)*scoreGapExt
		ml[0] = negInf
		for j := 1; j <= m; j++ {
			s := substScore(query[i-1], ref[j-1])
			md[j] = max3(pd[j-1], pu[j-1], pl[j-1]) + s
			mu[j] = max3(pd[j]+scoreGapOpen, pu[j]+scoreGapExt, pl[j]+scoreGapOpen)
			ml[j] = max3(md[j-1]+scoreGapOpen, mu[j-1]+scoreGapOpen, ml[j-1]+scoreGapExt)
		}
		pd, md = md, pd
		pu, mu = mu, pu
		pl, ml = ml, pl
	}

	return float64(max3(pd[m], pu[m], pl[m])) / 2
}

// bestState picks the state holding the maximum score, preferring
// diagonal, then gap-in-reference, then gap-in-query on ties.
func bestState(d, u, l int) int {
	if d >= u && d >= l {
		return stateDiag
	}
	if u >= l {
		return stateUp
	}
	return stateLeft
}

// matchState resolves which state produced a diagonal step of known score.
func matchState(want, d, u, l int) int {
	switch {
	case d == want:
		return stateDiag
	case u == want:
		return stateUp
	default:
		return stateLeft
	}
}

func pick(d, u, l, state int) int {
	switch state {
	case stateDiag:
		return d
	case stateUp:
		return u
	default:
		return l
	}
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

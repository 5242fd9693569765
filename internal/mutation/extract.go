package mutation

import "github.com/mutscan/mutscan/internal/align"

// ExtractSubstitutions walks an alignment column by column and returns
// every position where the read and reference both carry a base and
// disagree. Columns with a gap on either side are indels and are
// skipped. Results are ordered by ascending reference position.
func ExtractSubstitutions(aln align.Alignment) []Substitution {
	var subs []Substitution

	readPos, refPos := 0, 0
	for i := 0; i < aln.Columns(); i++ {
		readBase := aln.Query[i]
		refBase := aln.Ref[i]

		if readBase != '-' {
			readPos++
		}
		if refBase != '-' {
			refPos++
		}

		if readBase != refBase && readBase != '-' && refBase != '-' {
			subs = append(subs, Substitution{
				RefPos:   refPos,
				RefBase:  refBase,
				ReadBase: readBase,
			})
		}
	}

	return subs
}

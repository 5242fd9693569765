package align

// Orientation records which direction of a read aligned best.
type Orientation int

const (
	Forward Orientation = iota
	Reverse
)

func (o Orientation) String() string {
	if o == Reverse {
		return "reverse"
	}
	return "forward"
}

// complement maps each nucleotide to its Watson-Crick pair. Ambiguous
// bases (IUPAC codes) map to their complementary code; anything else
// passes through unchanged.
var complement = [256]byte{}

func init() {
	for i := range complement {
		complement[i] = byte(i)
	}
	pairs := map[byte]byte{
		'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C', 'U': 'A',
		'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W', 'K': 'M', 'M': 'K',
		'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D', 'N': 'N',
	}
	for b, c := range pairs {
		complement[b] = c
		complement[b+'a'-'A'] = c + 'a' - 'A'
	}
}

// ReverseComplement returns the sequence read in reverse order with each
// base swapped for its Watson-Crick pair.
func ReverseComplement(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = complement[seq[i]]
	}
	return string(out)
}

// Orient decides whether a read should be used as-is or reverse
// complemented before alignment. It scores the read and its reverse
// complement against the reference and keeps whichever scores higher;
// ties keep the forward read.
func Orient(read, ref string) (Orientation, string) {
	forward := Score(read, ref)
	rc := ReverseComplement(read)
	if Score(rc, ref) > forward {
		return Reverse, rc
	}
	return Forward, read
}

package mutation

import "testing"

func TestTranslateCodon(t *testing.T) {
	tests := []struct {
		name  string
		codon string
		want  byte
	}{
		{"ATG -> Met (start)", "ATG", 'M'},
		{"CCC -> Pro", "CCC", 'P'},
		{"CCG -> Pro", "CCG", 'P'},
		{"AAA -> Lys", "AAA", 'K'},
		{"GAA -> Glu", "GAA", 'E'},

		// Stop codons
		{"TAA -> Stop", "TAA", '*'},
		{"TAG -> Stop", "TAG", '*'},
		{"TGA -> Stop", "TGA", '*'},

		// Codons outside the table
		{"ambiguous base", "ANT", 'X'},
		{"too short", "AT", 'X'},
		{"too long", "ATGG", 'X'},
		{"empty", "", 'X'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateCodon(tt.codon)
			if got != tt.want {
				t.Errorf("TranslateCodon(%q) = %c, want %c", tt.codon, got, tt.want)
			}
		})
	}
}

func TestCodonTableComplete(t *testing.T) {
	bases := "TCAG"
	for _, a := range bases {
		for _, b := range bases {
			for _, c := range bases {
				codon := string(a) + string(b) + string(c)
				if _, ok := codonTable[codon]; !ok {
					t.Errorf("codon %q missing from table", codon)
				}
			}
		}
	}
	if len(codonTable) != 64 {
		t.Errorf("codon table has %d entries, want 64", len(codonTable))
	}
}

func TestIsStopCodon(t *testing.T) {
	for _, codon := range []string{"TAA", "TAG", "TGA"} {
		if !IsStopCodon(codon) {
			t.Errorf("IsStopCodon(%q) = false, want true", codon)
		}
	}
	if IsStopCodon("ATG") {
		t.Error("IsStopCodon(ATG) = true, want false")
	}
}

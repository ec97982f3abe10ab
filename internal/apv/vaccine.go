package apv

import "github.com/kamilpajak/apv/pkg/models"

// DefaultSnippetSize is the number of vaccine examples included in a report
const DefaultSnippetSize = 8

// Source picks random indices. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// VaccineExamples draws n prompt/correction pairs from the fixed pools.
// Prompt and correction are drawn independently, so a correction does not
// necessarily address its prompt.
func VaccineExamples(r Source, n int) []models.VaccineExample {
	if n <= 0 {
		return []models.VaccineExample{}
	}
	out := make([]models.VaccineExample, n)
	for i := range out {
		out[i] = models.VaccineExample{
			Prompt:     reference.Prompts[r.IntN(len(reference.Prompts))],
			Correction: reference.Corrections[r.IntN(len(reference.Corrections))],
		}
	}
	return out
}

// Package mining scans free-text activity notes for delay reasons and
// pending-task phrases using keyword-triggered sentence segmentation. The
// segmentation is a deliberate heuristic: text splits on periods (commas
// are normalized to periods for the pending-task pass), fragments of ten
// characters or fewer are dropped, and no natural-language sentence
// boundary detection is attempted. Clauses separated by semicolons or
// newlines are not split.
package mining

// delayVocabulary flags sentences describing delays, blockers, or
// problems. Keywords are bilingual (Spanish/English) and matched
// case-insensitively as substrings.
var delayVocabulary = []string{
	"atraso", "retraso", "delay", "pendiente", "problema", "issue",
	"bloqueado", "blocked", "esperando", "waiting", "falta", "missing",
	"cancelado", "cancelled", "pospuesto", "postponed",
}

// pendingVocabulary flags sentences describing work still to be done.
var pendingVocabulary = []string{
	"pendiente", "pending", "por hacer", "to do", "falta", "missing",
	"revisar", "review", "completar", "complete", "terminar", "finish",
}

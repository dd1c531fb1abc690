package mining

import (
	"strings"

	"trackpulse/internal/logging"
)

// minFragmentLen filters degenerate fragments: a sentence must exceed this
// length post-trim to be retained.
const minFragmentLen = 10

// DelayReasons returns the sentences in notes that match the delay
// vocabulary, in source order, without deduplication.
func DelayReasons(notes string) []string {
	reasons := matchingSentences(notes, delayVocabulary, false)
	logging.MiningDebug("delay pass: %d reasons from %d bytes of notes", len(reasons), len(notes))
	return reasons
}

// PendingTasks returns the sentences in notes that match the pending-task
// vocabulary. Commas are normalized to periods first so comma-separated
// clauses are treated as sentences too.
func PendingTasks(notes string) []string {
	tasks := matchingSentences(notes, pendingVocabulary, true)
	logging.MiningDebug("pending pass: %d tasks from %d bytes of notes", len(tasks), len(notes))
	return tasks
}

// matchingSentences splits notes on periods and keeps each trimmed
// sentence that contains any vocabulary keyword (case-insensitive) and
// exceeds minFragmentLen characters. The two public passes are
// independent: a sentence may be emitted by both.
func matchingSentences(notes string, vocabulary []string, normalizeCommas bool) []string {
	if notes == "" {
		return nil
	}
	if normalizeCommas {
		notes = strings.ReplaceAll(notes, ",", ".")
	}

	var matches []string
	for _, sentence := range strings.Split(notes, ".") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= minFragmentLen {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, keyword := range vocabulary {
			if strings.Contains(lower, keyword) {
				matches = append(matches, sentence)
				break
			}
		}
	}
	return matches
}

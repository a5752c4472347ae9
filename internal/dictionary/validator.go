package dictionary

// IsReal reports whether the entry carries any data at all. Sources answer
// unknown words with an empty shell, which must never be cached or shown.
func IsReal(entry Entry) bool {
	hasPronunciation := len(entry.Pronunciations.Audio) != 0 || len(entry.Pronunciations.Text) != 0
	hasEtymology := len(entry.Etymology) != 0
	hasDefinitions := len(entry.Definitions) != 0
	return hasPronunciation || hasEtymology || hasDefinitions
}

package chunker

// DefaultSize is the chunk size used when none is configured.
const DefaultSize = 1000

// Split cuts text into consecutive non-overlapping chunks of at most size
// characters; the final chunk may be shorter. Counting is by rune so
// multibyte text is never cut mid-character. Concatenating the result
// reproduces text exactly. Empty text or a non-positive size yields no
// chunks.
func Split(text string, size int) []string {
	if size <= 0 || len(text) == 0 {
		return nil
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

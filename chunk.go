package referent

// DefaultChunkSize is the largest body, in runes, sent to a completion
// service in a single call.
const DefaultChunkSize = 80000

var (
	paragraphBreak = []rune("\n\n")
	sentenceBreak  = []rune(". ")
)

// SplitText splits text into ordered chunks of at most maxLength runes.
//
// Chunk boundaries prefer a paragraph break, then a sentence break, and
// otherwise fall at exactly maxLength. A break is only accepted in the back
// half of the window so chunks do not become degenerately short. The
// separator stays at the end of the earlier chunk, so concatenating the
// chunks always reproduces text exactly.
//
// Text that fits in maxLength, and any text when maxLength is not positive,
// is returned as a single chunk.
func SplitText(text string, maxLength int) []string {
	runes := []rune(text)
	if maxLength <= 0 || len(runes) <= maxLength {
		return []string{text}
	}

	var chunks []string
	for start := 0; start < len(runes); {
		end := start + maxLength
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		end = breakPoint(runes, start, end, maxLength/2)
		chunks = append(chunks, string(runes[start:end]))
		start = end
	}
	return chunks
}

// breakPoint returns the end offset for the chunk starting at start whose
// hard limit is end. Breaks closer than floor runes to start are rejected.
func breakPoint(runes []rune, start, end, floor int) int {
	window := runes[start:end]
	for _, sep := range [][]rune{paragraphBreak, sentenceBreak} {
		if i := lastIndex(window, sep); i >= 0 && i >= floor {
			return start + i + len(sep)
		}
	}
	return end
}

// lastIndex returns the index of the last occurrence of sep in s, or -1.
func lastIndex(s, sep []rune) int {
	for i := len(s) - len(sep); i >= 0; i-- {
		match := true
		for j, r := range sep {
			if s[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

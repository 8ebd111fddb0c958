package model

// historySize is how many recent fingerprints are kept for cycle detection.
const historySize = 5

// History remembers recent world fingerprints to spot still lifes and short
// oscillators
type History struct {
	hashes []string
}

// Observe records fingerprint and reports whether it repeats one of the
// last three generations (period 1, 2 or 3).
func (h *History) Observe(fingerprint string) (stagnant bool) {
	for i := len(h.hashes) - 1; i >= 0 && i >= len(h.hashes)-3; i-- {
		if h.hashes[i] == fingerprint {
			stagnant = true
			break
		}
	}

	h.hashes = append(h.hashes, fingerprint)
	// Keep only the most recent states
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
	return
}

// Reset forgets every recorded fingerprint
func (h *History) Reset() {
	h.hashes = nil
}

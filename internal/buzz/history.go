package buzz

// History is the persisted per-ticker rolling window of past per-run
// mention counts. The detector is its only writer, once per run; the
// caller owns loading and saving the underlying store. A nil map is a
// valid empty history.
type History map[string][]int

// Clone deep-copies the history so updates never mutate the caller's
// snapshot in place.
func (h History) Clone() History {
	out := make(History, len(h))
	for ticker, counts := range h {
		c := make([]int, len(counts))
		copy(c, counts)
		out[ticker] = c
	}
	return out
}

// append1 appends one observation to a window, evicting the oldest
// entries once the window exceeds maxLen.
func append1(window []int, count, maxLen int) []int {
	window = append(window, count)
	if maxLen > 0 && len(window) > maxLen {
		window = window[len(window)-maxLen:]
	}
	return window
}

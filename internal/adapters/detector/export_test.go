package detector

import "os"

// SetIsTerminal replaces the terminal check and returns a restore function.
func SetIsTerminal(fn func(*os.File) bool) func() {
	prev := isTerminal
	isTerminal = fn
	return func() { isTerminal = prev }
}

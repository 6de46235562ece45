package domain

// Command is one invocation of an external program.
type Command struct {
	Program string
	Args    []string
	// Env holds "KEY=VALUE" pairs that override the inherited environment.
	Env []string
	// Capture returns the standard output instead of discarding it.
	Capture bool
}

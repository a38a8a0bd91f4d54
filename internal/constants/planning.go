package constants

const (
	// DefaultMinChunkMinutes is the smallest chunk a task accepts unless it
	// says otherwise.
	DefaultMinChunkMinutes = 25

	// DefaultMaxChunkMinutes is the largest single sitting allocated to one
	// task unless it says otherwise.
	DefaultMaxChunkMinutes = 90

	// DefaultRitualMinutes is the assumed length of a daily ritual with no
	// estimate.
	DefaultRitualMinutes = 20

	// BufferMinutes is the transition gap consumed between consecutive
	// allocated chunks.
	BufferMinutes = 5

	// TopPriorityCount bounds the plan's top-priorities list.
	TopPriorityCount = 3
)

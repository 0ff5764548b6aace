package bot

// UserState tracks the one multi-step flow: /rm_admin with no argument lists
// the admins and waits for the same user to reply with a number.
type UserState struct {
	Step string
}

const (
	StateAwaitingIndex = "awaiting_index"
)

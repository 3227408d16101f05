package kintai

// WorkState is a user's derived position in the work day. It is never
// stored; it falls out of the shape of the day's record.
type WorkState string

const (
	StateOff      = WorkState("off")
	StateWorking  = WorkState("working")
	StateBreaking = WorkState("breaking")
)

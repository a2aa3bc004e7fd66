package engine

// Status is the per-file state of a worklist item. Finished is never stored
// on an item: Advance returns it once the worklist is exhausted.
type Status int

const (
	Unhandled Status = iota
	Copied
	AlreadyExisted
	Failed
	Finished
)

func (s Status) String() string {
	switch s {
	case Unhandled:
		return "Unhandled"
	case Copied:
		return "Copied"
	case AlreadyExisted:
		return "Already Existed"
	case Failed:
		return "Failed"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Terminal reports whether s is an outcome of processing an item.
func (s Status) Terminal() bool {
	return s == Copied || s == AlreadyExisted || s == Failed
}

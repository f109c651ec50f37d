package models

// Status is the lifecycle state of a pedido.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"
	StatusCancelled  Status = "CANCELLED"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// CanTransition reports whether the edge s → to exists in the lifecycle.
// IN_PROGRESS → OPEN is the helper-withdrawal edge, the only backward one;
// it is only ever applied from server-confirmed data.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusOpen:
		return to == StatusInProgress || to == StatusCancelled
	case StatusInProgress:
		return to == StatusFinished || to == StatusCancelled || to == StatusOpen
	default:
		return false
	}
}

package rx

const (
	signalDefault SignalType = iota
	// SignalComplete indicated that subscriber was completed.
	SignalComplete
	// SignalCancel indicates that subscriber was cancelled.
	SignalCancel
	// SignalError indicates that subscriber has some faults.
	SignalError
)

// SignalType is the signal of reactive events like `OnNext`, `OnComplete`, `OnCancel` and `OnError`.
type SignalType int8

func (s SignalType) String() string {
	switch s {
	case SignalComplete:
		return "COMPLETE"
	case SignalCancel:
		return "CANCEL"
	case SignalError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

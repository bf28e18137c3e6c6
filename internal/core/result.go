package core

// Result describes the outcome of applying a single action.
type Result struct {
	Changed bool
	Message string
}

// SuccessChange reports a successful action that modified the system.
func SuccessChange(msg string) Result {
	return Result{Changed: true, Message: msg}
}

// SuccessNoChange reports that the system was already in the desired state.
func SuccessNoChange(msg string) Result {
	return Result{Changed: false, Message: msg}
}

// Failure reports a failed action.
func Failure(err error, msg string) Result {
	return Result{Changed: false, Message: msg + ": " + err.Error()}
}

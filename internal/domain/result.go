package domain

// Result is the uniform outcome returned by every callable operation.
// Callers must inspect Success; failures are never signalled as faults.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ResultFrom converts a service error into a Result.
func ResultFrom(err error) Result {
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true}
}

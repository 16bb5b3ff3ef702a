// Package metrics records parking store activity.
package metrics

// Result labels for recorded operations.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder receives counts of store operations.
type Recorder interface {
	IncTransition(operation, result string)
	IncRegistration(result string)
	IncTableGenerated()
	IncPersistenceReadError(record string)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) IncTransition(string, string)   {}
func (NoopRecorder) IncRegistration(string)         {}
func (NoopRecorder) IncTableGenerated()             {}
func (NoopRecorder) IncPersistenceReadError(string) {}

// Result returns the result label for err.
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

package transcribe

// Stage identifies where in a pipeline run a failure occurred.
type Stage string

const (
	StageValidate   Stage = "validate"
	StageExtract    Stage = "extract"
	StageLoadModel  Stage = "load_model"
	StageTranscribe Stage = "transcribe"
)

// StageError attributes a collaborator failure to a pipeline stage. The
// message stays the collaborator's own, unchanged; the stage travels
// alongside for callers that need it via errors.As.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

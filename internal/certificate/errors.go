package certificate

import "fmt"

// Stage identifies which step of the generation pipeline failed. Every
// failure aborts the whole request, the caller retries by resubmitting.
type Stage string

const (
	// StageTemplate is certificate markup rendering.
	StageTemplate Stage = "template"
	// StageRender is markup to PDF conversion.
	StageRender Stage = "render"
	// StageUpload is the object store write.
	StageUpload Stage = "upload"
	// StageFetch is the attachment fetch inside notification.
	StageFetch Stage = "fetch"
	// StageDeliver is the provider send itself.
	StageDeliver Stage = "deliver"
)

// StageError wraps a pipeline failure with the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

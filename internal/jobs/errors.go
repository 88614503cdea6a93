package jobs

import (
	"errors"
	"fmt"
)

// Stage names the step of a review run that failed.
type Stage string

const (
	StageEvent   Stage = "event"
	StageDiff    Stage = "diff"
	StageReview  Stage = "review"
	StageComment Stage = "comment"
)

// StageError wraps the failure of a single review stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Caught reports whether the failure came from one of the two review HTTP
// calls. Those are reported as "Mamba GPT error" and exit with status 1;
// everything earlier is a setup failure.
func (e *StageError) Caught() bool {
	return e.Stage == StageReview || e.Stage == StageComment
}

// IsCaught reports whether err carries a caught-tier StageError.
func IsCaught(err error) bool {
	var stageErr *StageError
	return errors.As(err, &stageErr) && stageErr.Caught()
}

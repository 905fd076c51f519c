package worker

import (
	"github.com/spec-kit/signup-flow/internal/service"
)

// StartOutcomeRecorder registers the outcome metrics and logging handlers.
func StartOutcomeRecorder(recorder *service.OutcomeRecorder) {
	if recorder == nil {
		return
	}
	recorder.RegisterHandlers()
}

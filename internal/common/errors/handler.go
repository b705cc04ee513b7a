// internal/common/errors/handler.go
package errors

// Logger is the minimal logging surface the handler needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// Handler reports contained preprocessing failures to the diagnostic
// sink and an optional metrics hook. Failures are never re-raised; the
// transformation degrades to defaults instead.
type Handler struct {
	logger    Logger
	onFailure func(stage Stage, code ErrorCode)
}

func NewHandler(logger Logger, onFailure func(Stage, ErrorCode)) *Handler {
	return &Handler{logger: logger, onFailure: onFailure}
}

// Handle logs a contained failure and notifies the metrics hook.
func (h *Handler) Handle(stdErr *StandardError) {
	if stdErr == nil {
		return
	}

	h.logger.Error(stdErr.Message, map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"stage":     string(stdErr.Stage),
		"category":  GetErrorCategory(stdErr.Code),
		"details":   stdErr.Details,
	})

	if h.onFailure != nil {
		h.onFailure(stdErr.Stage, stdErr.Code)
	}
}

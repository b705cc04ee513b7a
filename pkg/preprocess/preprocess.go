// pkg/preprocess/preprocess.go
package preprocess

import (
	"go.uber.org/zap"

	"monitor-preprocessor/internal/common/config"
	"monitor-preprocessor/internal/common/logger"
	"monitor-preprocessor/internal/preprocessor"
	"monitor-preprocessor/internal/record"
)

// Preprocessor is the host-facing handle on the flattening pipeline.
type Preprocessor struct {
	handler *preprocessor.Handler
}

// New builds a Preprocessor from the layered application configuration,
// including its own logger per the logging section.
func New() (*Preprocessor, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	return &Preprocessor{
		handler: preprocessor.NewHandler(preprocessor.FromAppConfig(cfg), log),
	}, nil
}

// NewWithLogger builds a Preprocessor with default settings around a
// logger owned by the monitoring host.
func NewWithLogger(log *zap.Logger) *Preprocessor {
	return &Preprocessor{
		handler: preprocessor.NewHandler(preprocessor.LoadConfig(), logger.NewZapAdapter(log)),
	}
}

// Handle flattens one captured inference record into the positionally
// keyed mapping the monitoring pipeline consumes. The record may be a
// keyed mapping, an attribute-bearing struct, or a sequence. Handle
// never returns an error: degraded input yields schema defaults.
func (p *Preprocessor) Handle(inferenceRecord interface{}) map[string]string {
	return p.handler.Execute(record.Resolve(inferenceRecord))
}

// Handle is the one-call form for hosts that invoke the transformation
// once per record with their own diagnostic sink.
func Handle(inferenceRecord interface{}, log *zap.Logger) map[string]string {
	return NewWithLogger(log).Handle(inferenceRecord)
}

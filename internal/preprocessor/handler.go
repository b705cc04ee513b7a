// internal/preprocessor/handler.go
package preprocessor

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	cerrors "monitor-preprocessor/internal/common/errors"
	"monitor-preprocessor/internal/common/logger"
	"monitor-preprocessor/internal/common/metrics"
	"monitor-preprocessor/internal/common/validation"
	"monitor-preprocessor/internal/record"
)

const TaskType = "flatten-capture-record"

// minRequestFields is the smallest usable comma-separated request
// payload; shorter payloads leave the defaults in place.
const minRequestFields = 6

// Handler flattens one captured inference record into the positionally
// keyed flat mapping consumed by the monitoring pipeline. A Handler is
// stateless; one instance may serve concurrent invocations.
type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute transforms one record. It never fails outward: malformed or
// missing input degrades to schema defaults, and failures surface only
// through the diagnostic sink and metrics.
func (h *Handler) Execute(rec record.Record) map[string]string {
	start := time.Now()
	log := h.logger.WithFields(map[string]interface{}{"recordId": uuid.NewString()})
	failures := cerrors.NewHandler(log, h.onStageFailure)

	log.Debug("processing capture record", map[string]interface{}{"record": rec})

	flat := FlatRecord{}
	degraded := false

	capture := locateCapture(rec)

	if stdErr := h.applyRequestFields(capture, &flat, log); stdErr != nil {
		failures.Handle(stdErr)
		degraded = true
	}

	if stdErr := h.applyResponseScore(capture, &flat, log); stdErr != nil {
		failures.Handle(stdErr)
		degraded = true
	}

	if stdErr := recastFields(&flat); stdErr != nil {
		failures.Handle(stdErr)
		degraded = true
	}

	log.Debug("flat record built", map[string]interface{}{"flatRecord": flat})

	out := flat.Serialize()

	if h.config.ValidateOutput {
		h.validateOutput(out, failures, log)
	}

	if h.config.MetricsEnabled {
		outcome := metrics.OutcomeClean
		if degraded {
			outcome = metrics.OutcomeDegraded
		}
		metrics.RecordsProcessed.WithLabelValues(outcome).Inc()
		metrics.FlattenDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}

	return out
}

func (h *Handler) onStageFailure(stage cerrors.Stage, code cerrors.ErrorCode) {
	if h.config.MetricsEnabled {
		metrics.StageFailures.WithLabelValues(string(stage), string(code)).Inc()
	}
}

// locateCapture finds the capture sub-object under its casing variants,
// falling back to the record itself when neither is present.
func locateCapture(rec record.Record) interface{} {
	capture := record.Lookup(rec, "captureData")
	if capture == nil {
		capture = record.Lookup(rec, "capturedata")
	}
	if capture == nil {
		return rec
	}
	return capture
}

// applyRequestFields parses the comma-separated request payload into
// the six request-derived fields. The update is all-or-nothing: one bad
// field discards the entire batch and the defaults stand.
func (h *Handler) applyRequestFields(capture interface{}, flat *FlatRecord, log logger.Logger) *cerrors.StandardError {
	endpointInput := record.Lookup(capture, "endpointInput")
	if endpointInput == nil {
		endpointInput = record.Lookup(capture, "endpoint_input")
	}

	raw := extractPayload(endpointInput)
	log.Debug("request payload extracted", map[string]interface{}{"payload": raw})

	text, ok := raw.(string)
	if !ok {
		// Already-structured request payloads are skipped, matching the
		// deployed behavior the downstream statistics were tuned on.
		log.Debug("request payload is not text, skipping CSV parse", nil)
		return nil
	}

	fields := splitFields(text)
	log.Debug("csv fields parsed", map[string]interface{}{"fields": fields, "count": len(fields)})
	if len(fields) < minRequestFields {
		return nil
	}

	parsed, stdErr := parseRequestFields(fields)
	if stdErr != nil {
		return stdErr
	}

	flat.applyRequest(*parsed)
	return nil
}

func parseRequestFields(fields []string) (*requestFields, *cerrors.StandardError) {
	var rf requestFields
	var err error

	if rf.Sqft, err = cast.ToFloat64E(fields[0]); err != nil {
		return nil, cerrors.NewCSVConversionError("sqft", err)
	}
	if rf.Bedrooms, err = cast.ToIntE(fields[1]); err != nil {
		return nil, cerrors.NewCSVConversionError("bedrooms", err)
	}
	if rf.Bathrooms, err = cast.ToFloat64E(fields[2]); err != nil {
		return nil, cerrors.NewCSVConversionError("bathrooms", err)
	}
	rf.Location = fields[3]
	if rf.YearBuilt, err = cast.ToIntE(fields[4]); err != nil {
		return nil, cerrors.NewCSVConversionError("year_built", err)
	}
	rf.Condition = fields[5]

	return &rf, nil
}

// applyResponseScore reads predictions[0].score out of the structured
// response payload into the price field. Every failure mode leaves
// price at its current value.
func (h *Handler) applyResponseScore(capture interface{}, flat *FlatRecord, log logger.Logger) *cerrors.StandardError {
	endpointOutput := record.Lookup(capture, "endpointOutput")
	if endpointOutput == nil {
		endpointOutput = record.Lookup(capture, "endpoint_output")
	}

	raw := extractPayload(endpointOutput)
	log.Debug("response payload extracted", map[string]interface{}{"payload": raw})

	doc := decodeResponse(raw)
	log.Debug("prediction document parsed", map[string]interface{}{"document": doc})
	if doc == nil || !record.IsMapping(doc) {
		return nil
	}

	predictions := record.Lookup(doc, "predictions")
	if predictions == nil {
		predictions = []interface{}{map[string]interface{}{}}
	}

	items, ok := record.Elements(predictions)
	if !ok || len(items) == 0 {
		return nil
	}

	score := record.Lookup(items[0], "score")
	if score == nil {
		return nil
	}

	price, err := cast.ToFloat64E(score)
	if err != nil {
		return cerrors.NewScoreConversionError(score, err)
	}

	flat.Price = price
	return nil
}

// recastFields forces every field back to its schema type before
// serialization. Intermediate stages may leave partially-typed values
// under error paths; on failure the record is returned as-is, not
// re-defaulted.
func recastFields(flat *FlatRecord) *cerrors.StandardError {
	var err error

	if flat.Sqft, err = cast.ToFloat64E(flat.Sqft); err != nil {
		return cerrors.NewTypeCastError("sqft", err)
	}
	if flat.Bathrooms, err = cast.ToFloat64E(flat.Bathrooms); err != nil {
		return cerrors.NewTypeCastError("bathrooms", err)
	}
	if flat.Bedrooms, err = cast.ToIntE(flat.Bedrooms); err != nil {
		return cerrors.NewTypeCastError("bedrooms", err)
	}
	if flat.YearBuilt, err = cast.ToIntE(flat.YearBuilt); err != nil {
		return cerrors.NewTypeCastError("year_built", err)
	}
	if flat.Price, err = cast.ToFloat64E(flat.Price); err != nil {
		return cerrors.NewTypeCastError("price", err)
	}
	if flat.Location, err = cast.ToStringE(flat.Location); err != nil {
		return cerrors.NewTypeCastError("location", err)
	}
	if flat.Condition, err = cast.ToStringE(flat.Condition); err != nil {
		return cerrors.NewTypeCastError("condition", err)
	}

	return nil
}

func (h *Handler) validateOutput(out map[string]string, failures *cerrors.Handler, log logger.Logger) {
	result, err := validation.ValidateOutput(out)
	if err != nil {
		log.WithError(err).Error("output validation could not run", nil)
		return
	}
	if !result.Valid {
		failures.Handle(cerrors.NewOutputContractError(fmt.Sprintf("%v", result.Errors)))
	}
}

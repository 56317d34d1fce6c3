package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rakhimovb/staylist/internal/common/constants"
	commonerrors "github.com/rakhimovb/staylist/internal/common/errors"
	"github.com/rakhimovb/staylist/internal/common/httpmetrics"
	"github.com/rakhimovb/staylist/internal/common/logger"
	"github.com/rakhimovb/staylist/internal/observability/metrics"
)

// HandleError translates service errors into HTTP responses at the boundary:
// validation message sets become 422 bodies, domain errors map to their
// status, anything else is downgraded to an opaque 500.
func HandleError(w http.ResponseWriter, r *http.Request, err error, log *logger.Logger) {
	if err == nil {
		return
	}

	ctx := r.Context()
	traceID := getTraceIDFromContext(ctx)

	if vErrs, ok := commonerrors.AsValidationErrors(err); ok {
		metrics.HTTPErrorsTotal.WithLabelValues(
			strconv.Itoa(http.StatusUnprocessableEntity),
			httpmetrics.NormalizePath(r.URL.Path),
			r.Method,
		).Inc()
		WriteValidationErrors(w, vErrs)
		return
	}

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		status := domainErr.HTTPStatus()

		logFields := logger.Fields{
			"error_code": domainErr.Code(),
			"category":   string(domainErr.Category()),
			"status":     status,
			"action":     "domain_error",
		}
		if traceID != "" {
			logFields["trace_id"] = traceID
			w.Header().Set("X-Trace-ID", traceID)
		}
		if log.ShouldLog(logger.DEBUG) {
			log.WithFields(ctx, logFields).Debugf("domain error: %s", domainErr.Error())
		}

		metrics.DomainErrorsTotal.WithLabelValues(
			string(domainErr.Category()),
			domainErr.Code(),
			strconv.Itoa(status),
		).Inc()
		metrics.HTTPErrorsTotal.WithLabelValues(
			strconv.Itoa(status),
			httpmetrics.NormalizePath(r.URL.Path),
			r.Method,
		).Inc()

		WriteError(w, status, domainErr.Message())
		return
	}

	logFields := logger.Fields{
		"error":  err.Error(),
		"action": "unhandled_error",
	}
	if traceID != "" {
		logFields["trace_id"] = traceID
		w.Header().Set("X-Trace-ID", traceID)
	}
	log.WithFields(ctx, logFields).Errorf("unhandled error: %v", err)

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteError(w, http.StatusInternalServerError, "internal server error")
}

func getTraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, ok := ctx.Value(constants.TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

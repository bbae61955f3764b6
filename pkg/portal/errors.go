package portal

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"jobportal_backend/internal/apperrors"
)

// ErrStaleResponse marks a response that was superseded before it arrived:
// either the session it was issued under ended, or a newer fetch replaced
// it. Callers must discard the result.
var ErrStaleResponse = errors.New("portal: response superseded")

type errorEnvelope struct {
	Error *apperrors.AppError `json:"error"`
}

// decodeError rebuilds the server's AppError from the wire envelope, so
// callers classify failures with apperrors.IsAuthError and
// apperrors.Retryable. A body that is not the envelope did not come from
// the application (proxy, gateway) and maps to SERVICE_UNAVAILABLE.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		env.Error.HTTPCode = resp.StatusCode
		return env.Error
	}
	return apperrors.New(apperrors.CodeUnavailable, http.StatusText(resp.StatusCode), resp.StatusCode)
}

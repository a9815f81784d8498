package notification

import "fmt"

// Outcome classifies a single dispatch.
type Outcome string

const (
	Success          Outcome = "success"
	HTTPFailure      Outcome = "http_failure"
	TransportFailure Outcome = "transport_failure"
)

// Result is what a dispatcher returns for one request.
//
// StatusCode is set for Success and HTTPFailure, ResponseBody only for
// HTTPFailure, ErrorDetail only for TransportFailure.
type Result struct {
	Outcome      Outcome `json:"outcome"`
	StatusCode   int     `json:"status_code,omitempty"`
	ResponseBody string  `json:"response_body,omitempty"`
	ErrorDetail  string  `json:"error_detail,omitempty"`
}

// Succeeded builds a Success result.
func Succeeded(status int) Result {
	return Result{Outcome: Success, StatusCode: status}
}

// Rejected builds an HTTPFailure result.
func Rejected(status int, body string) Result {
	return Result{Outcome: HTTPFailure, StatusCode: status, ResponseBody: body}
}

// Unreachable builds a TransportFailure result from the transport error.
func Unreachable(err error) Result {
	detail := "unknown transport error"
	if err != nil && err.Error() != "" {
		detail = err.Error()
	}
	return Result{Outcome: TransportFailure, ErrorDetail: detail}
}

// OK reports whether the message was accepted.
func (r Result) OK() bool { return r.Outcome == Success }

// Err returns nil for Success and a *DispatchError otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &DispatchError{Result: r}
}

// DispatchError carries a failed Result through error-returning call paths.
type DispatchError struct {
	Result Result
}

func (e *DispatchError) Error() string {
	switch e.Result.Outcome {
	case HTTPFailure:
		return fmt.Sprintf("Failed to post to Google Chat. Response code: %d | Response body: %s",
			e.Result.StatusCode, e.Result.ResponseBody)
	case TransportFailure:
		return "Failed to post to Google Chat: " + e.Result.ErrorDetail
	default:
		return fmt.Sprintf("Failed to post to Google Chat: unexpected outcome %q", e.Result.Outcome)
	}
}

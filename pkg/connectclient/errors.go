package connectclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
	"github.com/sony/gobreaker"
)

type APIError struct {
	Region  string `json:"region"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("connect api error in %s (%d %s): %s", e.Region, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("connect api error in %s (%s): %s", e.Region, e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// toAPIError normalizes SDK errors so callers can inspect status and code.
func toAPIError(region string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}

	out := &APIError{Region: region, Code: "Unknown", Message: err.Error(), Err: err}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		out.Status = respErr.HTTPStatusCode()
	}
	var smithyErr smithy.APIError
	if errors.As(err, &smithyErr) {
		out.Code = smithyErr.ErrorCode()
		if msg := smithyErr.ErrorMessage(); msg != "" {
			out.Message = msg
		}
	}
	return out
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return apiErr.Status == http.StatusTooManyRequests || apiErr.Status >= http.StatusInternalServerError
	}
	return true
}

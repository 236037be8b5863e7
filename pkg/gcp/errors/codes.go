package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrInvalidCredentials marks failures caused by a malformed, expired or
// revoked access token.
var ErrInvalidCredentials = stderrors.New("invalid credentials")

// apiError unwraps err into a googleapi error if it carries one.
func apiError(err error) (*googleapi.Error, bool) {
	var gerr *googleapi.Error
	if stderrors.As(err, &gerr) {
		return gerr, true
	}
	return nil, false
}

// reasons collects the machine readable reasons attached to an API error,
// both from the legacy error items and from the structured details.
func reasons(gerr *googleapi.Error) []string {
	var out []string
	for _, item := range gerr.Errors {
		if item.Reason != "" {
			out = append(out, item.Reason)
		}
	}
	for _, detail := range gerr.Details {
		if detailMap, ok := detail.(map[string]any); ok {
			if reason, ok := detailMap["reason"].(string); ok && reason != "" {
				out = append(out, reason)
			}
		}
	}
	return out
}

func hasReason(gerr *googleapi.Error, want ...string) bool {
	for _, reason := range reasons(gerr) {
		for _, w := range want {
			if reason == w {
				return true
			}
		}
	}
	return false
}

// IsUnauthenticated checks if an error indicates the credentials were rejected.
func IsUnauthenticated(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, ErrInvalidCredentials) {
		return true
	}
	if gerr, ok := apiError(err); ok {
		return gerr.Code == http.StatusUnauthorized
	}
	return false
}

// IsServiceDisabled checks if an error indicates a GCP API service is disabled.
// This typically means the API needs to be enabled in the GCP project.
func IsServiceDisabled(err error) bool {
	if err == nil {
		return false
	}
	if gerr, ok := apiError(err); ok {
		if gerr.Code != http.StatusForbidden {
			return false
		}
		if hasReason(gerr, "SERVICE_DISABLED", "accessNotConfigured") {
			return true
		}
		return strings.Contains(gerr.Body, "has not been used") ||
			strings.Contains(gerr.Body, "it is disabled")
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "SERVICE_DISABLED") ||
		strings.Contains(errMsg, "API has not been used in project") ||
		strings.Contains(errMsg, "Access Not Configured")
}

// IsBillingDisabled checks if an error indicates billing is disabled for the project.
func IsBillingDisabled(err error) bool {
	if err == nil {
		return false
	}
	if gerr, ok := apiError(err); ok {
		if gerr.Code != http.StatusForbidden {
			return false
		}
		if hasReason(gerr, "BILLING_DISABLED", "accountDisabled") {
			return true
		}
		return strings.Contains(gerr.Body, "billing account") && strings.Contains(gerr.Body, "disabled")
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "BILLING_DISABLED") || strings.Contains(errMsg, "billing is disabled")
}

// IsPermissionDenied checks if an error is a permission denied error that is
// not explained by a disabled API or billing account.
func IsPermissionDenied(err error) bool {
	gerr, ok := apiError(err)
	if !ok || gerr.Code != http.StatusForbidden {
		return false
	}
	return !IsServiceDisabled(err) && !IsBillingDisabled(err)
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	gerr, ok := apiError(err)
	return ok && gerr.Code == http.StatusNotFound
}

// Classify tags provider credential rejections with ErrInvalidCredentials so
// callers can match them with errors.Is. Other errors are returned as is.
func Classify(err error) error {
	if err == nil || stderrors.Is(err, ErrInvalidCredentials) {
		return err
	}
	if IsUnauthenticated(err) {
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	return err
}

// Describe renders err for an operator, prefixing the common project level
// causes with a hint on how to fix them.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case IsServiceDisabled(err):
		return "Compute Engine API is not enabled for the project: " + err.Error()
	case IsBillingDisabled(err):
		return "billing is disabled for the project: " + err.Error()
	default:
		return err.Error()
	}
}

package llm

import (
	"context"
	"errors"
	"net"
	"net/http"

	"wikiquiz/internal/domain"

	"google.golang.org/genai"
)

// classifyError maps a backend failure to MODEL_UNAVAILABLE (the backend
// could not be reached or is overloaded) or MODEL_CALL_ERROR (anything else).
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	// genai returns APIError by value.
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return classifyStatus(apiErrPtr.Code, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.NewModelCallError(err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return domain.NewModelUnavailableError(err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return domain.NewModelUnavailableError(err)
	}

	return domain.NewModelCallError(err)
}

func classifyStatus(code int, err error) error {
	if code == http.StatusTooManyRequests || code >= 500 {
		return domain.NewModelUnavailableError(err)
	}
	return domain.NewModelCallError(err)
}

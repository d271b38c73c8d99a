package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/tablestaff/tablestaff/internal"
	"github.com/tablestaff/tablestaff/internal/data"

	"github.com/cenkalti/backoff/v5"
	"github.com/pkg/errors"
)

func correlationId(ctx context.Context) string {
	if correlationId := internal.CorrelationIdFromCtx(ctx); correlationId != "" {
		return correlationId
	}
	return internal.GenerateId()
}

func tlsTransport(caCrt string) (*http.Transport, error) {
	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	if caCrt != "" {
		bytes, err := os.ReadFile(caCrt)
		if err != nil {
			return nil, err
		}
		if !pool.AppendCertsFromPEM(bytes) {
			return nil, errors.Errorf("unable to append certificate: %s", caCrt)
		}
	}
	return &http.Transport{
		TLSClientConfig: &tls.Config{RootCAs: pool},
	}, nil
}

func errFromResponse(statusCode int, bytes []byte) error {
	response := &data.Response{}
	if err := json.Unmarshal(bytes, response); err == nil && response.Error != "" {
		return errors.Errorf("%s (%d)", response.Error, statusCode)
	}
	return errors.Errorf("unexpected status code: %d", statusCode)
}

// execute performs the request, retrying on server errors when retries are
// configured; client errors are never retried.
func (c *client) execute(ctx context.Context, request *http.Request) ([]byte, error) {
	operation := func() ([]byte, error) {
		attempt := request.Clone(ctx)
		if request.GetBody != nil {
			body, err := request.GetBody()
			if err != nil {
				return nil, backoff.Permanent(err)
			}
			attempt.Body = body
		}
		response, err := c.Do(attempt)
		if err != nil {
			return nil, err
		}
		defer response.Body.Close()
		bytes, err := io.ReadAll(response.Body)
		if err != nil {
			return nil, err
		}
		switch {
		case response.StatusCode >= http.StatusInternalServerError:
			return nil, errFromResponse(response.StatusCode, bytes)
		case response.StatusCode >= http.StatusBadRequest:
			return nil, backoff.Permanent(errFromResponse(response.StatusCode, bytes))
		}
		return bytes, nil
	}
	if c.config.maxRetries == 0 {
		return operation()
	}
	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.config.maxRetries+1))
}

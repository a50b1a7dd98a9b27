package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// APICheck returns a CheckFunc that verifies an upstream HTTP API is
// reachable. It issues a HEAD to baseURL and treats any response below 500
// as healthy; a delivery endpoint answering 401, 404, or 405 at its root
// still proves network and TLS reachability.
func APICheck(client *http.Client, baseURL string) CheckFunc {
	if client == nil {
		client = http.DefaultClient
	}

	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, baseURL, nil)
		if err != nil {
			return errors.Join(ErrCheckFailed, err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return errors.Join(ErrCheckFailed, err)
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: upstream returned %d", ErrCheckFailed, resp.StatusCode)
		}
		return nil
	}
}

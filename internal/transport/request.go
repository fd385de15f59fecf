package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/logging"
)

// ReadBody reads and closes the response body. Any status other than
// 200 becomes an *errors.APIError attributed to provider.
func ReadBody(resp *http.Response, provider string) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.APIError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   resp.Request.URL.String(),
		}
	}
	return body, nil
}

// DecodeResponse decodes a JSON response into the target structure.
func DecodeResponse(resp *http.Response, provider string, target any) error {
	body, err := ReadBody(resp, provider)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}
	return nil
}

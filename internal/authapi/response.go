package authapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/finarchitect/resetpass/internal/domain"
)

// maxBodyBytes caps how much of a response body is buffered.
const maxBodyBytes = 1 << 20

// decodeResponse normalizes an HTTP response into either a decoded T or a
// *domain.APIError. The body is always read as text first since the server
// does not reliably send well-formed JSON.
func decodeResponse[T any](resp *http.Response) (*T, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	text := string(raw)

	slog.Debug("Auth API response", "status", resp.StatusCode, "body", text)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := domain.NewAPIError(domain.ErrServerError, resp.StatusCode, errorMessage(raw))
		slog.Error("Auth API error", "status", apiErr.Status, "error", apiErr.Message)
		return nil, apiErr
	}

	// A literal null decodes without error but carries no data.
	var out *T
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		apiErr := domain.NewAPIError(domain.ErrInvalidResponse, resp.StatusCode, domain.MessageInvalidResponse)
		slog.Error("Auth API returned unparseable success body", "status", resp.StatusCode, "error", err)
		return nil, apiErr
	}
	return out, nil
}

// errorMessage picks the user-facing message out of a failure body. Bodies
// that are not JSON at all are shown as they are. JSON bodies contribute
// their "message" or "detail" field when it holds a scalar.
func errorMessage(raw []byte) string {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		if len(bytes.TrimSpace(raw)) == 0 {
			return domain.MessageServerError
		}
		return string(raw)
	}

	fields, ok := body.(map[string]any)
	if !ok {
		return domain.MessageServerError
	}
	if msg := scalarText(fields["message"]); msg != "" {
		return msg
	}
	if msg := scalarText(fields["detail"]); msg != "" {
		return msg
	}
	return domain.MessageServerError
}

// scalarText renders a non-empty JSON scalar as text. Zero values, objects
// and arrays yield "".
func scalarText(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
	}
	return ""
}

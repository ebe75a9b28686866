package longpoll

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vladislavprovich/vk-relay/pkg/client/vk"
)

// CursorError means a poll response carried no usable ts. The session
// cannot continue safely without one.
type CursorError struct {
	// Failed is the server's "failed" code, if it sent one (2: key expired, 3: info lost).
	Failed int
	Body   string
	Err    error
}

func (e *CursorError) Error() string {
	if e.Failed != 0 {
		return fmt.Sprintf("long poll response has no usable ts (failed=%d): %v: %s", e.Failed, e.Err, e.Body)
	}
	return fmt.Sprintf("long poll response has no usable ts: %v: %s", e.Err, e.Body)
}

func (e *CursorError) Unwrap() error {
	return e.Err
}

var errMissingTS = errors.New("ts field is missing")

// extractTS reads only the ts field, tolerating any shape of the rest of the document.
func extractTS(body []byte) (vk.Timestamp, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return 0, &CursorError{Body: string(body), Err: err}
	}

	var failed int
	if raw, ok := doc["failed"]; ok {
		_ = json.Unmarshal(raw, &failed)
	}

	raw, ok := doc["ts"]
	if !ok {
		return 0, &CursorError{Failed: failed, Body: string(body), Err: errMissingTS}
	}

	var ts vk.Timestamp
	if err := json.Unmarshal(raw, &ts); err != nil {
		return 0, &CursorError{Failed: failed, Body: string(body), Err: err}
	}
	return ts, nil
}

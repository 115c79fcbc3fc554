package models

import (
	"encoding/json"
	"strings"
)

// AccessEntry is one decoded Traefik JSON access log record. Every field is
// optional: Traefik omits fields depending on its accessLog configuration,
// and the monitor must keep working on whatever subset is present.
type AccessEntry struct {
	ClientAddr       string `json:"ClientAddr,omitempty"`
	ClientHost       string `json:"ClientHost,omitempty"`
	RequestPath      string `json:"RequestPath,omitempty"`
	RequestMethod    string `json:"RequestMethod,omitempty"`
	RequestProtocol  string `json:"RequestProtocol,omitempty"`
	OriginStatus     int    `json:"OriginStatus,omitempty"`
	DownstreamStatus int    `json:"DownstreamStatus,omitempty"`
	UserAgent        string `json:"request_User-Agent,omitempty"`
}

// ParseAccessEntry decodes one log line into an AccessEntry. The caller
// guarantees the line is non-empty and trimmed. A malformed line is a
// recoverable per-line error: the caller skips it and keeps reading.
func ParseAccessEntry(line string) (*AccessEntry, error) {
	var entry AccessEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ClientIP returns the client identifier for aggregation. ClientHost wins
// when present; otherwise ClientAddr is used with a trailing :port stripped
// on the last colon (the whole value when it has no colon). Returns false
// when the record carries no usable identifier.
func (e *AccessEntry) ClientIP() (string, bool) {
	if e.ClientHost != "" {
		return e.ClientHost, true
	}

	if e.ClientAddr == "" {
		return "", false
	}
	if idx := strings.LastIndex(e.ClientAddr, ":"); idx >= 0 {
		return e.ClientAddr[:idx], true
	}
	return e.ClientAddr, true
}

// Path returns the request path, defaulting to "/" when absent.
func (e *AccessEntry) Path() string {
	if e.RequestPath == "" {
		return "/"
	}
	return e.RequestPath
}

// Agent returns the raw User-Agent header, which may be empty.
func (e *AccessEntry) Agent() string {
	return e.UserAgent
}

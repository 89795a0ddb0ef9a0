package api

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// The backend answers some endpoints with a bare array and others with a
// {"data": ...} envelope, and has changed its mind between deployments.
// Every response goes through these two functions so no page ever has to
// unwrap defensively.

func decodeList[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || string(body) == "null" {
		return []T{}, nil
	}

	if body[0] == '[' {
		var list []T
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return []T{}, nil
	}
	var list []T
	if err := json.Unmarshal(envelope.Data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func decodeOne[T any](body []byte) (T, error) {
	var zero T
	body = bytes.TrimSpace(body)
	if len(body) == 0 || string(body) == "null" {
		return zero, errors.New("empty response body")
	}

	// Try the envelope first: {"data": {...}} with possible sibling keys.
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		var item T
		if err := json.Unmarshal(envelope.Data, &item); err == nil {
			return item, nil
		}
	}

	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return zero, err
	}
	return item, nil
}

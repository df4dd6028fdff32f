package models

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ugorji/go/codec"
)

var jsonHandle codec.JsonHandle

// ErrMalformedRecord is returned when a push payload is not a {time, digits} object.
var ErrMalformedRecord = errors.New("malformed record")

// DecodeRecord parses one push frame. The frame must be a single JSON object
// whose time and digits members are both strings.
func DecodeRecord(data []byte) (Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return Record{}, fmt.Errorf("%w: not an object", ErrMalformedRecord)
	}

	var fields map[string]interface{}
	dec := codec.NewDecoderBytes(data, &jsonHandle)
	if err := dec.Decode(&fields); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if rest := bytes.TrimSpace(data[dec.NumBytesRead():]); len(rest) > 0 {
		return Record{}, fmt.Errorf("%w: trailing data", ErrMalformedRecord)
	}

	timeStr, err := stringField(fields, "time")
	if err != nil {
		return Record{}, err
	}
	digits, err := stringField(fields, "digits")
	if err != nil {
		return Record{}, err
	}
	return Record{Time: timeStr, Digits: digits}, nil
}

func stringField(fields map[string]interface{}, name string) (string, error) {
	v, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("%w: missing %s", ErrMalformedRecord, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, not a string", ErrMalformedRecord, name, v)
	}
	return s, nil
}

// EncodeSendRequest produces the JSON body for a submission.
func EncodeSendRequest(digits string) ([]byte, error) {
	return EncodeJSON(SendRequest{Digits: digits})
}

// EncodeJSON encodes v with the shared JSON handle.
func EncodeJSON(v any) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, &jsonHandle).Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return out, nil
}

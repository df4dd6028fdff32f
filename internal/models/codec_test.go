package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecord(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"time":"10:15:32","digits":"1111"}`))
	require.NoError(t, err)
	assert.Equal(t, Record{Time: "10:15:32", Digits: "1111"}, rec)
}

func TestDecodeRecordIgnoresUnknownFields(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"digits":"0042","time":"23:59","extra":true}`))
	require.NoError(t, err)
	assert.Equal(t, Record{Time: "23:59", Digits: "0042"}, rec)
}

func TestDecodeRecordAllowsSurroundingWhitespace(t *testing.T) {
	rec, err := DecodeRecord([]byte(" \n{\"time\":\"10:15\",\"digits\":\"1234\"}\n"))
	require.NoError(t, err)
	assert.Equal(t, Record{Time: "10:15", Digits: "1234"}, rec)
}

func TestDecodeRecordMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `hello`},
		{"truncated", `{"time":"10:15"`},
		{"missing digits", `{"time":"10:15:00"}`},
		{"missing time", `{"digits":"1234"}`},
		{"empty object", `{}`},
		{"null", `null`},
		{"array", `[1,2]`},
		{"array of strings", `["10:15","1234"]`},
		{"numeric time", `{"time":5,"digits":"1234"}`},
		{"numeric digits", `{"time":"10:15","digits":1234}`},
		{"null digits", `{"time":"10:15","digits":null}`},
		{"trailing data", `{"time":"10:15","digits":"1234"} garbage`},
		{"two objects", `{"time":"10:15","digits":"1234"}{"time":"10:16","digits":"5678"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecord([]byte(tt.payload))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedRecord))
		})
	}
}

func TestEncodeSendRequest(t *testing.T) {
	body, err := EncodeSendRequest("1234")
	require.NoError(t, err)
	assert.JSONEq(t, `{"digits":"1234"}`, string(body))
}

func TestGroupedViewLookup(t *testing.T) {
	view := GroupedView{
		{Minute: "10:16", Digits: []string{"3333"}},
		{Minute: "10:15", Digits: []string{"2222", "1111"}},
	}

	digits, ok := view.Lookup("10:15")
	assert.True(t, ok)
	assert.Equal(t, []string{"2222", "1111"}, digits)

	_, ok = view.Lookup("11:00")
	assert.False(t, ok)

	assert.Equal(t, []string{"10:16", "10:15"}, view.Minutes())
}

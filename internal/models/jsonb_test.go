package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBValueDefaultsToEmptyObject(t *testing.T) {
	var j JSONB
	v, err := j.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), v)
}

func TestJSONBScan(t *testing.T) {
	var j JSONB
	require.NoError(t, j.Scan([]byte(`{"stock_id":"abc"}`)))
	assert.JSONEq(t, `{"stock_id":"abc"}`, string(j))

	require.NoError(t, j.Scan(`{"n":1}`))
	assert.JSONEq(t, `{"n":1}`, string(j))

	require.NoError(t, j.Scan(nil))
	assert.Equal(t, "{}", string(j))
}

func TestMeta(t *testing.T) {
	j := Meta(map[string]any{"request_id": "r1", "quantity": 4})
	assert.JSONEq(t, `{"request_id":"r1","quantity":4}`, string(j))
}

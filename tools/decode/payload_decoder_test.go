package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDecodeMapByJSONTag(t *testing.T) {
	out, err := DecodeMap[samplePayload](map[string]any{"name": "a", "count": 3})
	require.NoError(t, err)
	assert.Equal(t, "a", out.Name)
	assert.Equal(t, 3, out.Count)
}

func TestDecodeMapWeakTyping(t *testing.T) {
	// numbers arrive as float64 from encoding/json
	out, err := DecodeMap[samplePayload](map[string]any{"count": float64(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, out.Count)
}

func TestDecodeMapNil(t *testing.T) {
	_, err := DecodeMap[samplePayload](nil)
	assert.Error(t, err)
}

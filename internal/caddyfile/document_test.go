package caddyfile

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPort_UnmarshalJSON(t *testing.T) {
	var cfg struct {
		A Port `json:"a"`
		B Port `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": "8080", "b": 443}`), &cfg))
	assert.Equal(t, Port("8080"), cfg.A)
	assert.Equal(t, PortNumber(443), cfg.B)

	var p Port
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{}`), &p))
}

func TestDocument_AddAutomaticBlockJSON(t *testing.T) {
	doc := &Document{}
	require.NoError(t, doc.AddAutomaticBlockJSON(`{"hostname": "test.net", "email": "te@test.net", "service": "someService", "port": "8080"}`))
	assert.Equal(t, []AutomaticBlockConfig{testNet}, doc.Automatic)

	err := doc.AddAutomaticBlockJSON(`{"hostname": "x"}`)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Len(t, doc.Automatic, 1)
}

func TestDocument_SetAutomaticBlock(t *testing.T) {
	doc := &Document{}
	doc.AddAutomaticBlock(testNet)
	doc.AddAutomaticBlock(AutomaticBlockConfig{Hostname: "b.net", Email: "e", Service: "s", Port: "1"})

	updated := testNet
	updated.Port = "9090"
	assert.True(t, doc.SetAutomaticBlock(updated))
	assert.Equal(t, []string{"test.net", "b.net"}, doc.Hostnames())
	got, ok := doc.AutomaticBlock("test.net")
	require.True(t, ok)
	assert.Equal(t, Port("9090"), got.Port)

	assert.False(t, doc.SetAutomaticBlock(AutomaticBlockConfig{Hostname: "c.net"}))
	assert.Equal(t, []string{"test.net", "b.net", "c.net"}, doc.Hostnames())
}

func TestDocument_RemoveAutomaticBlock(t *testing.T) {
	doc := &Document{}
	doc.AddAutomaticBlock(testNet)
	doc.AddAutomaticBlock(AutomaticBlockConfig{Hostname: "b.net"})

	assert.True(t, doc.RemoveAutomaticBlock("test.net"))
	assert.False(t, doc.RemoveAutomaticBlock("test.net"))
	assert.Equal(t, []string{"b.net"}, doc.Hostnames())

	_, ok := doc.AutomaticBlock("test.net")
	assert.False(t, ok)
}

func TestAutomaticBlockConfig_Validate(t *testing.T) {
	assert.NoError(t, testNet.Validate())

	c := testNet
	c.Service = ""
	var pe *ParamError
	require.ErrorAs(t, c.Validate(), &pe)
	assert.Equal(t, "service", pe.Key)
	assert.Equal(t, -1, pe.Index)
}

package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdered_PreservesKeyOrder(t *testing.T) {
	o := Ordered[int]{
		{Key: "Fiji Village", Value: 4},
		{Key: "Fiji Times", Value: 2},
		{Key: "Awesome", Value: 1},
	}

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{"Fiji Village":4,"Fiji Times":2,"Awesome":1}`, string(data))

	var decoded Ordered[int]
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, o, decoded)
	assert.Equal(t, []string{"Fiji Village", "Fiji Times", "Awesome"}, decoded.Keys())

	v, ok := decoded.Get("Fiji Times")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = decoded.Get("Fiji Sun")
	assert.False(t, ok)
}

func TestOrdered_EmptyEncodesAsObject(t *testing.T) {
	var o Ordered[[]string]

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestOrdered_RejectsNonObject(t *testing.T) {
	var o Ordered[int]
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &o))
	assert.Error(t, json.Unmarshal([]byte(`{"a":"b"}`), &o))
}

func TestMitigationStrategy_OmitsZeroArticles(t *testing.T) {
	data, err := json.Marshal(MitigationStrategy{Type: "general", Description: "keep watching"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"general","description":"keep watching"}`, string(data))

	data, err = json.Marshal(MitigationStrategy{Type: "coup", Description: "x", Articles: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"coup","description":"x","articles":2}`, string(data))
}

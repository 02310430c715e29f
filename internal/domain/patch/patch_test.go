package patch

import (
	"encoding/json"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type update struct {
	Name  Patch[string] `json:"name,omitzero"`
	Notes Patch[string] `json:"notes,omitzero"`
	Count Patch[int]    `json:"count,omitzero"`
}

func TestDecode(t *testing.T) {
	var u update
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Decks","notes":null}`), &u))

	name, ok := u.Name.Get()
	assert.True(t, ok)
	assert.Equal(t, "Decks", name)
	assert.True(t, u.Notes.IsClear())
	assert.True(t, u.Count.IsIgnore())
}

func TestDecodeTypeMismatch(t *testing.T) {
	var u update
	assert.Error(t, json.Unmarshal([]byte(`{"count":"four"}`), &u))
}

func TestEncodeOmitsIgnore(t *testing.T) {
	out, err := json.Marshal(update{Name: Set("Decks"), Notes: Clear[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Decks","notes":null}`, string(out))
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   update
		wire string
	}{
		{"ignore", update{}, `{}`},
		{"clear", update{Notes: Clear[string]()}, `{"notes":null}`},
		{"set", update{Name: Set("Decks"), Count: Set(0)}, `{"name":"Decks","count":0}`},
		{"set empty string", update{Notes: Set("")}, `{"notes":""}`},
		{"mixed", update{Name: Set("Decks"), Notes: Clear[string]()}, `{"name":"Decks","notes":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wire, string(out))

			var back update
			require.NoError(t, json.Unmarshal(out, &back))
			assert.Equal(t, tt.in, back)
		})
	}
}

func TestApply(t *testing.T) {
	current := "old"

	assert.Equal(t, &current, Ignore[string]().Apply(&current))
	assert.Nil(t, Clear[string]().Apply(&current))

	got := Set("new").Apply(&current)
	require.NotNil(t, got)
	assert.Equal(t, "new", *got)
	assert.Equal(t, "old", current)
}

func TestRules(t *testing.T) {
	tests := []struct {
		name    string
		value   Patch[int]
		wantErr bool
	}{
		{"ignore", Ignore[int](), false},
		{"set valid", Set(5), false},
		{"set invalid", Set(50), true},
		{"clear", Clear[int](), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, NotClear, Each(validation.Max(10)))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "ignore", Ignore[int]().String())
	assert.Equal(t, "clear", Clear[int]().String())
	assert.Equal(t, "set(7)", Set(7).String())
}

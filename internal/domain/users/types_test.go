package users

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefResolvesBothForms(t *testing.T) {
	bare := RefID(7)
	expanded := RefUser(&User{ID: 7, Username: "alice"})

	for name, ref := range map[string]Ref{"bare": bare, "expanded": expanded} {
		t.Run(name, func(t *testing.T) {
			id, ok := ref.ID()
			require.True(t, ok)
			assert.Equal(t, int64(7), id)
			assert.True(t, ref.Is(7))
			assert.False(t, ref.Is(8))
		})
	}

	assert.False(t, bare.Expanded())
	assert.Nil(t, bare.User())
	assert.True(t, expanded.Expanded())
	assert.Equal(t, "alice", expanded.User().Username)
}

func TestEmptyRef(t *testing.T) {
	var ref Ref
	_, ok := ref.ID()
	assert.False(t, ok)
	assert.False(t, ref.Is(0))

	assert.Equal(t, Ref{}, RefUser(nil))
}

func TestRefJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		A Ref `json:"a"`
		B Ref `json:"b"`
		C Ref `json:"c"`
	}{RefID(3), RefUser(&User{ID: 4, Username: "bob", Email: "b@x.com"}), Ref{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":{"id":4,"username":"bob"},"c":null}`, string(raw))
}

func TestPassword(t *testing.T) {
	var u User
	require.NoError(t, u.Password.Set("Secret123!"))
	assert.NoError(t, u.Password.Compare("Secret123!"))
	assert.Error(t, u.Password.Compare("secret123!"))

	var loaded User
	loaded.Password.SetHash(u.Password.Hash())
	assert.NoError(t, loaded.Password.Compare("Secret123!"))
}

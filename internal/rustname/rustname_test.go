package rustname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"res://bob.pup", "bob_pup"},
		{"res://scripts/bob.pup", "scripts_bob_pup"},
		{"/home/me/game/res/scripts/test/bob.pup", "scripts_test_bob_pup"},
		{`res://scripts\Enemy.PUP`, "scripts_enemy_pup"},
		{"res://ui/main-menu.pup", "ui_main_menu_pup"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			id, err := Identifier(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}

	_, err := Identifier("res://scripts/noext")
	assert.Error(t, err)
}

func TestPascal(t *testing.T) {
	assert.Equal(t, "ScriptsBobPup", Pascal("scripts_bob_pup"))
	assert.Equal(t, "BobPup", Pascal("__bob__pup"))
	assert.Equal(t, "ScriptsBobPupScript", StructName("scripts_bob_pup"))
}

func TestReserved(t *testing.T) {
	names := Reserved("scripts_bob_pup")
	for _, name := range []string{
		"Cow", "HashMap", "fmt", "FromStr", "BigInt", "Decimal", "FromPrimitive",
		"Deserialize", "Serialize", "json", "Value", "smallvec",
		"NodeID", "ScriptApi", "ScriptObject", "ScriptsBobPupScript",
	} {
		assert.True(t, names[name], name)
	}
	assert.False(t, names["*"])
	assert.False(t, names["prelude"])
	assert.False(t, names["Enemy"])

	assert.Len(t, Reserved(""), len(names)-1, "no script struct without an id")
}

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"chat-reply",
		"simulate-crop",
		"search-products",
		"toggle-product-selection",
		"lookup-location",
		"toggle-voice",
		"toggle-connectivity",
		"build-dashboard",
	}, reg.TaskTypes())

	for _, a := range reg.Activities {
		assert.NotEmpty(t, a.InputSchema, a.TaskType)
		assert.NotEmpty(t, a.ErrorCodes, a.TaskType)
	}
}

func TestActivityRegistry_InputSchema(t *testing.T) {
	reg := MustDefault()

	schema, err := reg.InputSchema("simulate-crop")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"crop", "area"}, schema["required"])

	_, err = reg.InputSchema("unknown")
	assert.Error(t, err)
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	require.NoError(t, os.WriteFile(path, embeddedActivities, 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	_, ok := reg.Lookup("chat-reply")
	assert.True(t, ok)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, MustDefault().Validate())

	activity := func(id, taskType string) Activity {
		return Activity{ID: id, DisplayName: id, TaskType: taskType, Category: "advisory"}
	}

	tests := []struct {
		name string
		reg  ActivityRegistry
		want string
	}{
		{"empty", ActivityRegistry{}, "no activities"},
		{"duplicate id", ActivityRegistry{Activities: []Activity{activity("a", "a"), activity("a", "b")}}, "duplicate activity ID"},
		{"duplicate task type", ActivityRegistry{Activities: []Activity{activity("a", "x"), activity("b", "x")}}, "duplicate task type"},
		{"missing category", ActivityRegistry{Activities: []Activity{{ID: "a", DisplayName: "A", TaskType: "a"}}}, "Category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.reg.Validate(), tt.want)
		})
	}
}

package envutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBool(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		def   bool
		want  bool
	}{
		{name: "unset", def: true, want: true},
		{name: "true", value: ptr("1"), want: true},
		{name: "false", value: ptr("false"), def: true, want: false},
		{name: "invalid", value: ptr("maybe"), def: true, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const env = "ENVUTIL_TEST_BOOL"
			if tt.value != nil {
				t.Setenv(env, *tt.value)
			}
			assert.Equal(t, tt.want, Bool(env, tt.def))
		})
	}
}

func TestString(t *testing.T) {
	const env = "ENVUTIL_TEST_STRING"
	assert.Equal(t, "def", String(env, "def"))

	t.Setenv(env, "")
	assert.Equal(t, "def", String(env, "def"))

	t.Setenv(env, "val")
	assert.Equal(t, "val", String(env, "def"))
}

func ptr(s string) *string { return &s }

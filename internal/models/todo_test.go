package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTodoPatch_ApplyTo(t *testing.T) {
	title := "new title"
	empty := ""
	done := true

	tests := []struct {
		name  string
		patch TodoPatch
		want  Todo
	}{
		{
			name:  "empty patch keeps everything",
			patch: TodoPatch{},
			want:  Todo{ID: 1, Title: "t", Description: "d", Completed: false},
		},
		{
			name:  "only completed",
			patch: TodoPatch{Completed: &done},
			want:  Todo{ID: 1, Title: "t", Description: "d", Completed: true},
		},
		{
			name:  "explicit empty string overwrites",
			patch: TodoPatch{Title: &title, Description: &empty},
			want:  Todo{ID: 1, Title: "new title", Description: "", Completed: false},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			todo := Todo{ID: 1, Title: "t", Description: "d"}
			tc.patch.ApplyTo(&todo)
			assert.Equal(t, tc.want, todo)
		})
	}
}

func TestTodoPatch_NewTodo(t *testing.T) {
	assert.Equal(t, &Todo{}, TodoPatch{}.NewTodo())

	title := "A"
	got := TodoPatch{Title: &title}.NewTodo()
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "", got.Description)
	assert.False(t, got.Completed)
}

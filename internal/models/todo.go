// Package modelsはTodoを定義します。
package models

import (
	"time"
)

// 文字数の上限 (テーブル定義と同じ値)
const (
	TitleMaxLength       = 100
	DescriptionMaxLength = 200
)

type Todo struct {
	ID          int       `json:"id"`          // 主キー (自動採番、削除後も再利用されない)
	Title       string    `json:"title"`       // タスクのタイトル
	Description string    `json:"description"` // タスクの説明
	Completed   bool      `json:"completed"`   // 完了状態
	CreatedAt   time.Time `json:"created_at"`  // 作成日時 (作成後は変更しない)
	UpdatedAt   time.Time `json:"updated_at"`  // 更新日時 (更新のたびに進める)
}

// TodoPatch は作成・更新リクエストのボディです。
// nil のフィールドは「指定なし」を表し、空文字列とは区別されます。
type TodoPatch struct {
	Title       *string `json:"title" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=200"`
	Completed   *bool   `json:"completed"`
}

// NewTodo はパッチから新しいTodoを組み立てます。指定のないフィールドはゼロ値になります。
func (p TodoPatch) NewTodo() *Todo {
	t := &Todo{}
	p.ApplyTo(t)
	return t
}

// ApplyTo は指定されたフィールドだけを t に上書きします。
func (p TodoPatch) ApplyTo(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

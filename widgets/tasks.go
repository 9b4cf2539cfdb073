package widgets

import "path/filepath"

// Task is a single to-do item.
type Task struct {
	ID         int    `json:"id"`
	Text       string `json:"text"`
	Completed  bool   `json:"completed"`
	Note       string `json:"note"`
	Importance string `json:"importance"`
}

// TaskPatch carries partial updates; nil fields are left untouched.
type TaskPatch struct {
	Text       *string `json:"text"`
	Importance *string `json:"importance"`
	Note       *string `json:"note"`
	Completed  *bool   `json:"completed"`
}

// Tasks is the file-backed task list.
type Tasks struct {
	path string
}

// NewTasks creates a task store under the given data directory.
func NewTasks(dir string) *Tasks {
	return &Tasks{path: filepath.Join(dir, "tasks.json")}
}

// List returns all tasks in insertion order.
func (t *Tasks) List() ([]Task, error) {
	return readList[Task](t.path)
}

// Create appends a task with the next sequential id.
func (t *Tasks) Create(text, importance, note string) (Task, error) {
	tasks, err := readList[Task](t.path)
	if err != nil {
		return Task{}, err
	}

	id := 1
	if len(tasks) > 0 {
		id = nextID(tasks[len(tasks)-1].ID, len(tasks))
	}
	task := Task{ID: id, Text: text, Importance: importance, Note: note}
	tasks = append(tasks, task)
	if err := writeList(t.path, tasks); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Update applies the non-nil patch fields. Returns ErrNotFound for an
// unknown id.
func (t *Tasks) Update(id int, patch TaskPatch) (Task, error) {
	tasks, err := readList[Task](t.path)
	if err != nil {
		return Task{}, err
	}

	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		if patch.Text != nil {
			tasks[i].Text = *patch.Text
		}
		if patch.Importance != nil {
			tasks[i].Importance = *patch.Importance
		}
		if patch.Note != nil {
			tasks[i].Note = *patch.Note
		}
		if patch.Completed != nil {
			tasks[i].Completed = *patch.Completed
		}
		if err := writeList(t.path, tasks); err != nil {
			return Task{}, err
		}
		return tasks[i], nil
	}
	return Task{}, ErrNotFound
}

// Delete removes a task and reports whether anything was removed.
func (t *Tasks) Delete(id int) (bool, error) {
	tasks, err := readList[Task](t.path)
	if err != nil {
		return false, err
	}

	kept := tasks[:0]
	for _, task := range tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	deleted := len(kept) != len(tasks)
	if err := writeList(t.path, kept); err != nil {
		return false, err
	}
	return deleted, nil
}

package todo

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/harrisonrobin/todo/pkg/model"
)

// Collection is the ordered set of tasks for one session. Order is
// insertion order and is also the order written to disk.
type Collection struct {
	tasks []model.Task
	now   func() time.Time
}

// New wraps tasks, usually the result of a storage load. A nil slice is an
// empty collection.
func New(tasks []model.Task) *Collection {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return &Collection{tasks: tasks, now: time.Now}
}

// WithClock replaces the clock used to stamp created_at.
func (c *Collection) WithClock(now func() time.Time) *Collection {
	c.now = now
	return c
}

// Tasks returns the tasks for handing to storage. Callers must not modify
// the slice; Delete never shifts it in place.
func (c *Collection) Tasks() []model.Task {
	return c.tasks
}

// Len returns the number of tasks.
func (c *Collection) Len() int {
	return len(c.tasks)
}

// List returns a copy of the tasks in stored order.
func (c *Collection) List() []model.Task {
	out := make([]model.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Add appends a new pending task and returns it. Nothing is appended when
// the description is blank.
func (c *Collection) Add(description string, tags []string, dueDate string) (model.Task, error) {
	description = clean(description)
	if description == "" {
		return model.Task{}, ErrEmptyDescription
	}

	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized = append(normalized, clean(tag))
	}

	task := model.Task{
		ID:          c.nextID(),
		Description: description,
		Status:      model.PENDING,
		CreatedAt:   model.NewTimestamp(c.now()),
		Tags:        normalized,
		DueDate:     clean(dueDate),
	}
	c.tasks = append(c.tasks, task)
	return task, nil
}

// Complete marks the first task with the given id as done. Completing a done
// task is a no-op that still returns the task.
func (c *Collection) Complete(id int) (model.Task, error) {
	i := c.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	c.tasks[i].Status = model.DONE
	return c.tasks[i], nil
}

// Delete removes the first task with the given id and returns it.
func (c *Collection) Delete(id int) (model.Task, error) {
	i := c.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	removed := c.tasks[i]
	// Copy first so slices handed out by Tasks keep their contents.
	c.tasks = slices.Delete(slices.Clone(c.tasks), i, i+1)
	return removed, nil
}

// clean trims s and replaces invalid UTF-8, which not every storage format
// can encode, with U+FFFD.
func clean(s string) string {
	return strings.TrimSpace(strings.ToValidUTF8(s, "\uFFFD"))
}

func (c *Collection) indexOf(id int) int {
	for i, task := range c.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) nextID() int {
	highest := 0
	for _, task := range c.tasks {
		if task.ID > highest {
			highest = task.ID
		}
	}
	return highest + 1
}

// ParseTags splits the comma separated tag prompt. Blank input means no tags.
func ParseTags(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return []string{}
	}
	parts := strings.Split(input, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

package todo

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/harrisonrobin/todo/pkg/model"
)

func fixedClock() func() time.Time {
	now := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func ids(tasks []model.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func TestAdd_AssignsSequentialIDs(t *testing.T) {
	c := New(nil).WithClock(fixedClock())

	for i := 1; i <= 5; i++ {
		task, err := c.Add("task", nil, "")
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if task.ID != i {
			t.Errorf("Expected ID %d, got %d", i, task.ID)
		}
		if task.Status != model.PENDING {
			t.Errorf("Expected status pending, got %s", task.Status)
		}
	}

	if got := ids(c.List()); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("Expected ids [1 2 3 4 5], got %v", got)
	}
}

func TestAdd_UsesMaxExistingID(t *testing.T) {
	c := New([]model.Task{
		{ID: 7, Description: "a", Status: model.PENDING},
		{ID: 3, Description: "b", Status: model.DONE},
	})

	task, err := c.Add("c", nil, "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if task.ID != 8 {
		t.Errorf("Expected ID 8, got %d", task.ID)
	}
	if got := ids(c.List()); !reflect.DeepEqual(got, []int{7, 3, 8}) {
		t.Errorf("Expected new task appended at the end, got %v", got)
	}
}

func TestAdd_NormalizesInput(t *testing.T) {
	clock := fixedClock()
	c := New(nil).WithClock(clock)

	task, err := c.Add("  Buy milk  ", []string{" food ", "errand"}, " 2024-02-01 ")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if task.Description != "Buy milk" {
		t.Errorf("Expected Description 'Buy milk', got '%s'", task.Description)
	}
	if !reflect.DeepEqual(task.Tags, []string{"food", "errand"}) {
		t.Errorf("Expected tags [food errand], got %q", task.Tags)
	}
	if task.DueDate != "2024-02-01" {
		t.Errorf("Expected DueDate '2024-02-01', got '%s'", task.DueDate)
	}
	if !task.CreatedAt.Equal(clock()) {
		t.Errorf("Expected CreatedAt %v, got %v", clock(), task.CreatedAt.Time)
	}
	if task.Tags == nil {
		t.Error("Expected non-nil tags")
	}
}

func TestAdd_EmptyDescription(t *testing.T) {
	for _, desc := range []string{"", "   ", "\t\n"} {
		c := New([]model.Task{{ID: 1, Description: "keep", Status: model.PENDING}})

		_, err := c.Add(desc, []string{"x"}, "")
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Add(%q): expected ErrValidation, got %v", desc, err)
		}
		if c.Len() != 1 {
			t.Errorf("Add(%q): expected collection unchanged, got %d tasks", desc, c.Len())
		}
	}
}

func TestComplete(t *testing.T) {
	c := New(nil).WithClock(fixedClock())
	first, _ := c.Add("first", nil, "")
	second, _ := c.Add("second", nil, "")

	done, err := c.Complete(second.ID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if done.Status != model.DONE {
		t.Errorf("Expected status done, got %s", done.Status)
	}

	// idempotent
	again, err := c.Complete(second.ID)
	if err != nil {
		t.Fatalf("second Complete failed: %v", err)
	}
	if again.Status != model.DONE {
		t.Errorf("Expected status done after repeat, got %s", again.Status)
	}

	tasks := c.List()
	if !reflect.DeepEqual(tasks[0], first) {
		t.Errorf("Expected first task unchanged, got %+v", tasks[0])
	}
	if tasks[1].Status != model.DONE {
		t.Errorf("Expected stored task done, got %s", tasks[1].Status)
	}
}

func TestComplete_NotFound(t *testing.T) {
	c := New(nil).WithClock(fixedClock())
	c.Add("only", nil, "")
	before := c.List()

	_, err := c.Complete(42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if !reflect.DeepEqual(c.List(), before) {
		t.Errorf("Expected collection unchanged, got %+v", c.List())
	}
}

func TestDelete(t *testing.T) {
	c := New(nil).WithClock(fixedClock())
	for _, desc := range []string{"a", "b", "c", "d"} {
		c.Add(desc, nil, "")
	}

	removed, err := c.Delete(2)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed.Description != "b" {
		t.Errorf("Expected removed task 'b', got '%s'", removed.Description)
	}
	if got := ids(c.List()); !reflect.DeepEqual(got, []int{1, 3, 4}) {
		t.Errorf("Expected ids [1 3 4], got %v", got)
	}
}

func TestDelete_NotFound(t *testing.T) {
	c := New(nil).WithClock(fixedClock())
	c.Add("a", nil, "")
	c.Delete(1)

	_, err := c.Delete(1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty collection, got %d tasks", c.Len())
	}
}

func TestDelete_NotFoundKeepsOrder(t *testing.T) {
	c := New(nil).WithClock(fixedClock())
	for _, desc := range []string{"a", "b", "c"} {
		c.Add(desc, nil, "")
	}
	c.Complete(2)
	before := c.List()

	_, err := c.Delete(99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if got := ids(c.List()); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("Expected ids [1 2 3], got %v", got)
	}
	if !reflect.DeepEqual(c.List(), before) {
		t.Errorf("Expected collection unchanged, got %+v", c.List())
	}
}

func TestDelete_LeavesEarlierTasksSliceIntact(t *testing.T) {
	c := New(nil).WithClock(fixedClock())
	for _, desc := range []string{"a", "b", "c"} {
		c.Add(desc, nil, "")
	}
	held := c.Tasks()

	if _, err := c.Delete(1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got := ids(held); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("Expected earlier slice to keep ids [1 2 3], got %v", got)
	}
	if got := ids(c.Tasks()); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("Expected ids [2 3], got %v", got)
	}
}

func TestAdd_ReplacesInvalidUTF8(t *testing.T) {
	c := New(nil).WithClock(fixedClock())

	task, err := c.Add("caf\xe9", []string{" \xff "}, "2024\xfe")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if task.Description != "caf\uFFFD" {
		t.Errorf("Expected description 'caf\uFFFD', got %q", task.Description)
	}
	if !reflect.DeepEqual(task.Tags, []string{"\uFFFD"}) {
		t.Errorf("Expected tags [\uFFFD], got %q", task.Tags)
	}
	if task.DueDate != "2024\uFFFD" {
		t.Errorf("Expected due date '2024\uFFFD', got %q", task.DueDate)
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	c := New(nil).WithClock(fixedClock())
	c.Add("a", nil, "")

	list := c.List()
	list[0].Description = "changed"

	if c.List()[0].Description != "a" {
		t.Error("Expected List to return a copy")
	}
}

func TestScenario(t *testing.T) {
	c := New(nil).WithClock(fixedClock())

	milk, err := c.Add("Buy milk", []string{}, "")
	if err != nil || milk.ID != 1 || milk.Status != model.PENDING {
		t.Fatalf("Expected task 1 pending, got %+v (err %v)", milk, err)
	}
	bills, err := c.Add("Pay bills", []string{"finance"}, "2024-01-01")
	if err != nil || bills.ID != 2 {
		t.Fatalf("Expected task 2, got %+v (err %v)", bills, err)
	}

	if _, err := c.Complete(2); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got := c.List()[0]; got.Status != model.PENDING {
		t.Errorf("Expected task 1 still pending, got %s", got.Status)
	}

	if _, err := c.Delete(1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	tasks := c.List()
	if len(tasks) != 1 || tasks[0].ID != 2 || tasks[0].Status != model.DONE {
		t.Errorf("Expected only task 2 done, got %+v", tasks)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"work", []string{"work"}},
		{"work, home ,urgent", []string{"work", "home", "urgent"}},
	}
	for _, tt := range tests {
		if got := ParseTags(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTags(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/todo/pkg/logger"
	"github.com/harrisonrobin/todo/pkg/model"
	"github.com/harrisonrobin/todo/pkg/storage"
	"github.com/harrisonrobin/todo/pkg/todo"
)

var ErrInvalidID = errors.New("invalid task id")

// errEOF ends the session when stdin is exhausted.
var errEOF = errors.New("end of input")

// Store is the persistence the session needs. *storage.Store satisfies it.
type Store interface {
	Load() ([]model.Task, error)
	Save(tasks []model.Task) error
}

// Session owns the task collection for one run of the menu.
type Session struct {
	store Store
	in    *bufio.Reader
	out   io.Writer
	now   func() time.Time
	tasks *todo.Collection
}

func NewSession(store Store, in io.Reader, out io.Writer) *Session {
	return &Session{
		store: store,
		in:    bufio.NewReader(in),
		out:   out,
		now:   time.Now,
	}
}

// WithClock sets the clock used for created_at and overdue checks.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

// Tasks returns the session's collection. It is nil before Run.
func (s *Session) Tasks() *todo.Collection {
	return s.tasks
}

// Run loads the collection and serves the menu until the user exits or
// input runs out. Every error is reported and the loop continues.
func (s *Session) Run() error {
	fmt.Fprintln(s.out, "Welcome to your To-Do List Manager!")

	loaded, err := s.store.Load()
	if err != nil {
		s.report(err)
	}
	s.tasks = todo.New(loaded).WithClock(s.now)
	logger.Debug("session started", "tasks", s.tasks.Len())

	for {
		printMenu(s.out)
		choice, err := s.prompt("Choose an option: ")
		if err != nil {
			fmt.Fprintln(s.out, "\nGoodbye!")
			return nil
		}

		switch choice {
		case "1":
			err = s.add()
		case "2":
			RenderTasks(s.out, s.tasks.List(), s.now())
			continue
		case "3":
			err = s.complete()
		case "4":
			err = s.delete()
		case "5":
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
			continue
		}

		if errors.Is(err, errEOF) {
			fmt.Fprintln(s.out, "\nGoodbye!")
			return nil
		}
		if err != nil {
			s.report(err)
		}
		s.save()
	}
}

func printMenu(w io.Writer) {
	fmt.Fprintln(w, "\n=== To-Do List Manager ===")
	fmt.Fprintln(w, "1. Add Task")
	fmt.Fprintln(w, "2. View Tasks")
	fmt.Fprintln(w, "3. Mark Task Done")
	fmt.Fprintln(w, "4. Delete Task")
	fmt.Fprintln(w, "5. Exit")
}

func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		// A final line without a newline still counts as input.
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if !errors.Is(err, io.EOF) {
			logger.Error("failed to read input", "error", err)
		}
		return "", errEOF
	}
	return strings.TrimSpace(line), nil
}

func (s *Session) add() error {
	description, err := s.prompt("Enter task description: ")
	if err != nil {
		return err
	}
	if description == "" {
		return todo.ErrEmptyDescription
	}
	tagsInput, err := s.prompt("Enter tags (comma separated, optional): ")
	if err != nil {
		return err
	}
	dueDate, err := s.prompt("Enter due date (YYYY-MM-DD, optional): ")
	if err != nil {
		return err
	}

	task, err := s.tasks.Add(description, todo.ParseTags(tagsInput), dueDate)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Task '%s' added with ID %d.\n", task.Description, task.ID)
	logger.Info("task added", "id", task.ID)
	return nil
}

func (s *Session) complete() error {
	RenderTasks(s.out, s.tasks.List(), s.now())
	id, err := s.promptID("Enter ID of task to mark done: ")
	if err != nil {
		return err
	}
	task, err := s.tasks.Complete(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Task %d marked as done.\n", task.ID)
	logger.Info("task completed", "id", task.ID)
	return nil
}

func (s *Session) delete() error {
	RenderTasks(s.out, s.tasks.List(), s.now())
	id, err := s.promptID("Enter ID of task to delete: ")
	if err != nil {
		return err
	}
	task, err := s.tasks.Delete(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Task '%s' deleted.\n", task.Description)
	logger.Info("task deleted", "id", task.ID)
	return nil
}

func (s *Session) promptID(label string) (int, error) {
	input, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, input)
	}
	return id, nil
}

func (s *Session) save() {
	if err := s.store.Save(s.tasks.Tasks()); err != nil {
		s.report(err)
		return
	}
	fmt.Fprintln(s.out, "Tasks saved successfully.")
}

// report prints a user-facing message for err and logs it.
func (s *Session) report(err error) {
	logger.Warn("operation failed", "error", err)

	switch {
	case errors.Is(err, todo.ErrValidation):
		fmt.Fprintln(s.out, "Description cannot be empty.")
	case errors.Is(err, todo.ErrNotFound):
		fmt.Fprintln(s.out, "Task not found.")
	case errors.Is(err, ErrInvalidID):
		fmt.Fprintln(s.out, "Invalid input. Please enter a valid numeric ID.")
	case errors.Is(err, storage.ErrRead):
		fmt.Fprintf(s.out, "Error loading tasks: %v\n", err)
	case errors.Is(err, storage.ErrWrite):
		fmt.Fprintf(s.out, "Error saving tasks: %v\n", err)
	default:
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

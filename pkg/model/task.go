package model

type Status string

const (
	PENDING Status = "pending"
	DONE    Status = "done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == PENDING || s == DONE
}

// Task is a single to-do item. Field tags cover every format the storage
// package can write.
type Task struct {
	ID          int       `json:"id" yaml:"id" toml:"id"`
	Description string    `json:"description" yaml:"description" toml:"description"`
	Status      Status    `json:"status" yaml:"status" toml:"status"`
	CreatedAt   Timestamp `json:"created_at" yaml:"created_at" toml:"created_at"`
	Tags        []string  `json:"tags" yaml:"tags" toml:"tags"`
	DueDate     string    `json:"due_date" yaml:"due_date" toml:"due_date"`
}

// IsDone reports whether the task has been completed.
func (t Task) IsDone() bool {
	return t.Status == DONE
}

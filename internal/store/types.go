package store

// Note 项目记忆条目，只增不改
// Note is one project-memory entry. Append-only: save and ranked search are
// the only operations.
type Note struct {
	Note      string `json:"note"`
	Tag       string `json:"tag,omitempty"`
	Session   string `json:"session,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Task is a single item inside a hand. Status is todo/doing/done.
type Task struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Detail  string `json:"detail,omitempty"`
	Status  string `json:"status"`
	Created string `json:"created"`
}

// Hand 具名任务集合；session 为空表示共享
// Hand is a named task collection. Empty Session means shared across
// sessions.
type Hand struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Goal      string `json:"goal,omitempty"`
	Session   string `json:"session,omitempty"`
	Tasks     []Task `json:"tasks"`
	CreatedAt string `json:"created_at"`
}

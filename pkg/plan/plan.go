package plan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var (
	// ErrDuplicateTaskID is returned by [Load] when two tasks share an id.
	ErrDuplicateTaskID = errors.New("duplicate task id")

	// ErrUnknownNeed is returned by [Load] when a task's needs list
	// references a task id that is not declared in the plan.
	ErrUnknownNeed = errors.New("unknown task in needs")

	// ErrUntitledTask is returned by [Load] when a task has neither a
	// title nor an explicit branch name, leaving it without an identity.
	ErrUntitledTask = errors.New("task needs a title or a branch name")
)

// Task is a planned unit of work that is not yet a real branch.
// ID is an opaque identifier (a UUID when Branchboard generates it), never
// a branch name. Branch, when set, pins the branch the task will become;
// otherwise the branch name is derived from Title via [Task.EffectiveBranch].
type Task struct {
	ID     string `json:"id" bson:"id" yaml:"id"`
	Title  string `json:"title" bson:"title" yaml:"title"`
	Branch string `json:"branch,omitempty" bson:"branch,omitempty" yaml:"branch,omitempty"`
}

// Dependency is a directed parent→child edge between two tasks,
// referencing them by task id.
type Dependency struct {
	Parent string `json:"parent" bson:"parent" yaml:"parent"`
	Child  string `json:"child" bson:"child" yaml:"child"`
}

// Plan is a tentative task graph: tasks plus their dependency edges.
type Plan struct {
	Tasks []Task       `json:"tasks" bson:"tasks" yaml:"tasks"`
	Deps  []Dependency `json:"deps,omitempty" bson:"deps,omitempty" yaml:"deps,omitempty"`
}

const (
	// branchPrefix namespaces derived branch names away from real branches.
	branchPrefix = "task/"

	// maxSlugLen caps the derived slug before the prefix is applied.
	maxSlugLen = 30

	// idFallbackLen is how much of the task id is used when the title
	// produces an empty slug.
	idFallbackLen = 8
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	invalidRe    = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRunRe  = regexp.MustCompile(`-{2,}`)
)

// Slug derives a branch-safe slug from a task title: lowercase, whitespace
// collapsed to hyphens, characters outside [a-z0-9-] stripped, hyphen runs
// collapsed, leading/trailing hyphens trimmed, truncated to 30 characters.
// Returns "" when nothing survives.
func Slug(title string) string {
	s := strings.ToLower(title)
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = invalidRe.ReplaceAllString(s, "")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	return s
}

// EffectiveBranch returns the branch name the task would materialize as:
// the explicit Branch when set, otherwise "task/" + Slug(Title). When the
// slug is empty the first 8 characters of the task id are used instead, so
// the result is non-empty for any task with a non-empty id.
func (t Task) EffectiveBranch() string {
	if t.Branch != "" {
		return t.Branch
	}
	s := Slug(t.Title)
	if s == "" {
		s = t.ID
		if len(s) > idFallbackLen {
			s = s[:idFallbackLen]
		}
	}
	return branchPrefix + s
}

// taskEntry is the YAML authoring shape; `needs` lists parent task ids.
type taskEntry struct {
	ID     string   `yaml:"id"`
	Title  string   `yaml:"title"`
	Branch string   `yaml:"branch"`
	Needs  []string `yaml:"needs"`
}

type planFile struct {
	Tasks []taskEntry `yaml:"tasks"`
}

// Load reads a YAML plan from r. Tasks without an id get a generated UUID.
// Returns ErrDuplicateTaskID, ErrUntitledTask, or ErrUnknownNeed for
// authoring mistakes; needs can only reference explicitly declared ids.
func Load(r io.Reader) (*Plan, error) {
	var pf planFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&pf); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode plan: %w", err)
	}

	p := &Plan{}
	seen := make(map[string]bool, len(pf.Tasks))
	for i, e := range pf.Tasks {
		if e.Title == "" && e.Branch == "" {
			return nil, fmt.Errorf("task %d: %w", i, ErrUntitledTask)
		}
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		if seen[id] {
			return nil, fmt.Errorf("task %q: %w", id, ErrDuplicateTaskID)
		}
		seen[id] = true
		p.Tasks = append(p.Tasks, Task{ID: id, Title: e.Title, Branch: e.Branch})
	}

	for i, e := range pf.Tasks {
		for _, need := range e.Needs {
			if !seen[need] {
				return nil, fmt.Errorf("task %q needs %q: %w", p.Tasks[i].ID, need, ErrUnknownNeed)
			}
			p.Deps = append(p.Deps, Dependency{Parent: need, Child: p.Tasks[i].ID})
		}
	}

	return p, nil
}

// LoadFile reads a YAML plan from disk.
func LoadFile(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

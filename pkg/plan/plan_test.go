package plan

import (
	"errors"
	"strings"
	"testing"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"Simple", "Add Auth", "add-auth"},
		{"CollapsesWhitespace", "fix   the \t build", "fix-the-build"},
		{"StripsPunctuation", "Fix: login (v2)!", "fix-login-v2"},
		{"CollapsesHyphens", "a -- b", "a-b"},
		{"TrimsHyphens", "-- padded --", "padded"},
		{"Truncates", strings.Repeat("abcde-", 10), "abcde-abcde-abcde-abcde-abcde"},
		{"Empty", "", ""},
		{"OnlyPunctuation", "!!! ???", ""},
		{"Unicode", "héllo wörld", "hllo-wrld"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.title); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestEffectiveBranch(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want string
	}{
		{"Derived", Task{ID: "uuid-1", Title: "Add Auth"}, "task/add-auth"},
		{"Explicit", Task{ID: "uuid-1", Title: "Add Auth", Branch: "auth/login"}, "auth/login"},
		{"IDFallback", Task{ID: "8d4f2a1c-77aa", Title: "???"}, "task/8d4f2a1c"},
		{"ShortIDFallback", Task{ID: "ab", Title: ""}, "task/ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.EffectiveBranch(); got != tt.want {
				t.Errorf("EffectiveBranch() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	input := `
tasks:
  - id: auth
    title: Add Auth
  - id: auth-mw
    title: Auth middleware
    needs: [auth]
  - title: Untracked idea
    branch: spike/idea
`
	p, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(p.Tasks) != 3 {
		t.Fatalf("tasks = %d, want 3", len(p.Tasks))
	}
	if len(p.Deps) != 1 {
		t.Fatalf("deps = %d, want 1", len(p.Deps))
	}
	if p.Deps[0] != (Dependency{Parent: "auth", Child: "auth-mw"}) {
		t.Errorf("dep = %+v", p.Deps[0])
	}

	// Missing id is generated.
	if p.Tasks[2].ID == "" {
		t.Error("task without id should get a generated one")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{
			name:  "DuplicateID",
			input: "tasks:\n  - id: x\n    title: a\n  - id: x\n    title: b\n",
			want:  ErrDuplicateTaskID,
		},
		{
			name:  "UnknownNeed",
			input: "tasks:\n  - id: x\n    title: a\n    needs: [missing]\n",
			want:  ErrUnknownNeed,
		},
		{
			name:  "Untitled",
			input: "tasks:\n  - id: x\n",
			want:  ErrUntitledTask,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	p, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Tasks) != 0 {
		t.Errorf("tasks = %d, want 0", len(p.Tasks))
	}
}

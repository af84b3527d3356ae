package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

//go:embed activities.json
var embeddedActivities []byte

var (
	defaultOnce     sync.Once
	defaultRegistry *ActivityRegistry
	defaultErr      error
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

// Default returns the registry compiled into the binary.
func Default() (*ActivityRegistry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = parse(embeddedActivities)
	})
	return defaultRegistry, defaultErr
}

// MustDefault is Default for package-level initialisation.
func MustDefault() *ActivityRegistry {
	reg, err := Default()
	if err != nil {
		panic(err)
	}
	return reg
}

func parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse activity registry: %w", err)
	}
	return &reg, nil
}

func (r *ActivityRegistry) Lookup(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// InputSchema returns the JSON schema for taskType's job variables.
func (r *ActivityRegistry) InputSchema(taskType string) (map[string]interface{}, error) {
	a, ok := r.Lookup(taskType)
	if !ok {
		return nil, fmt.Errorf("unknown task type %q", taskType)
	}
	if a.InputSchema == nil {
		return nil, fmt.Errorf("task type %q has no input schema", taskType)
	}
	return a.InputSchema, nil
}

func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, a.TaskType)
	}
	return out
}

// Validate checks that every activity names its id, display name, task type
// and category, and that ids and task types are unique.
func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)
	for _, activity := range r.Activities {
		if activity.ID == "" {
			return fmt.Errorf("activity missing required field: ID")
		}
		if ids[activity.ID] {
			return fmt.Errorf("duplicate activity ID: %s", activity.ID)
		}
		ids[activity.ID] = true

		if activity.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", activity.ID)
		}
		if activity.TaskType == "" {
			return fmt.Errorf("activity %s missing required field: TaskType", activity.ID)
		}
		if taskTypes[activity.TaskType] {
			return fmt.Errorf("duplicate task type: %s", activity.TaskType)
		}
		taskTypes[activity.TaskType] = true

		if activity.Category == "" {
			return fmt.Errorf("activity %s missing required field: Category", activity.ID)
		}
	}
	return nil
}

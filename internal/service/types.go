// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Owner is the user a task belongs to.
type Owner struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullName returns "First Last", trimmed.
func (o Owner) FullName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// Task represents a single task as returned by the API.
// Updates send the whole object back, so fields this client does not model
// are kept in Extra and written out again.
type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   Timestamp  `json:"createdAt"`
	ModifiedAt  *Timestamp `json:"modifiedAt"`
	UserID      int        `json:"userId"`
	User        Owner      `json:"user"`

	Extra map[string]json.RawMessage `json:"-"`
}

// taskFields has Task's fields without its JSON methods.
type taskFields Task

func (t *Task) UnmarshalJSON(data []byte) error {
	var known taskFields
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range modelled() {
		delete(all, k)
	}
	*t = Task(known)
	t.Extra = nil
	if len(all) > 0 {
		t.Extra = all
	}
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(taskFields(t))
	if err != nil || len(t.Extra) == 0 {
		return known, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range t.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// modelled lists the JSON keys Task decodes into named fields.
func modelled() []string {
	return []string{"id", "title", "description", "completed", "createdAt", "modifiedAt", "userId", "user"}
}

// TaskInput holds the user-editable fields of a task.
type TaskInput struct {
	Title       string `json:"title" label:"Title" validate:"min=3,notblank" message:"Title must be at least 3 characters"`
	Description string `json:"description" label:"Description" validate:"max=500" message:"Description is too long"`
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" label:"Email" validate:"notblank,emailshape"`
	Password string `json:"password" label:"Password" validate:"notblank"`
}

// Registration is the register form.
type Registration struct {
	FirstName    string `json:"firstName" label:"First Name" validate:"notblank"`
	LastName     string `json:"lastName" label:"Last Name" validate:"notblank"`
	Email        string `json:"email" label:"Email" validate:"notblank,emailshape"`
	MobileNumber string `json:"mobileNumber" label:"Mobile Number" validate:"notblank"`
	Password     string `json:"password" label:"Password" validate:"notblank"`
}

// AuthResult is returned by login and register.
type AuthResult struct {
	Token    string `json:"token"`
	UserName string `json:"userName"`
}

// timestampLayouts are tried in order. The API may omit the zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Timestamp is a server time that remembers its original text so a task can
// be sent back unchanged.
type Timestamp struct {
	time.Time
	raw string
}

// NewTimestamp wraps t; it marshals as RFC 3339.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses any of the accepted layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, raw: s}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp: %q", s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.raw != "" {
		return json.Marshal(ts.raw)
	}
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Format(time.RFC3339Nano))
}

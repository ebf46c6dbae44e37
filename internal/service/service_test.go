package service_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskwave/internal/service"
)

func TestTask_SentBackUnchanged(t *testing.T) {
	// Zone-less times with odd precision must survive a fetch/update cycle.
	in := `{"id":3,"title":"Write report","description":"","completed":false,` +
		`"createdAt":"2024-05-01T08:00:00.1234567","modifiedAt":null,"userId":1,` +
		`"user":{"id":1,"email":"a@b.com","firstName":"A","lastName":"B"}}`

	var task service.Task
	require.NoError(t, json.Unmarshal([]byte(in), &task))
	assert.Equal(t, 2024, task.CreatedAt.Year())
	assert.Nil(t, task.ModifiedAt)
	assert.Equal(t, "A B", task.User.FullName())

	task.Completed = true
	out, err := json.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"createdAt":"2024-05-01T08:00:00.1234567"`)
	assert.Contains(t, string(out), `"completed":true`)
}

func TestTask_KeepsUnknownFields(t *testing.T) {
	in := `{"id":3,"title":"Write report","description":"","completed":false,` +
		`"createdAt":"2024-05-01T08:00:00","modifiedAt":null,"userId":1,` +
		`"user":{"id":1,"email":"a@b.com","firstName":"A","lastName":"B"},` +
		`"priority":2,"tags":["home"]}`

	var task service.Task
	require.NoError(t, json.Unmarshal([]byte(in), &task))
	assert.Len(t, task.Extra, 2)

	task.Title = "Write the report"
	out, err := json.Marshal(task)
	require.NoError(t, err)
	want := `{"id":3,"title":"Write the report","description":"","completed":false,` +
		`"createdAt":"2024-05-01T08:00:00","modifiedAt":null,"userId":1,` +
		`"user":{"id":1,"email":"a@b.com","firstName":"A","lastName":"B"},` +
		`"priority":2,"tags":["home"]}`
	assert.JSONEq(t, want, string(out))

	var plain service.Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":4,"title":"abc"}`), &plain))
	assert.Nil(t, plain.Extra)
}

func TestParseTimestamp(t *testing.T) {
	for _, s := range []string{
		"2024-05-01T08:00:00Z",
		"2024-05-01T08:00:00+02:00",
		"2024-05-01T08:00:00",
		"2024-05-01 08:00:00",
	} {
		ts, err := service.ParseTimestamp(s)
		require.NoError(t, err, s)
		assert.Equal(t, 8, ts.Hour(), s)
	}

	_, err := service.ParseTimestamp("yesterday")
	assert.EqualError(t, err, `invalid timestamp: "yesterday"`)
}

func TestTimestamp_NewMarshalsRFC3339(t *testing.T) {
	ts := service.NewTimestamp(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01T08:00:00Z"`, string(out))

	out, err = json.Marshal(service.Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestOwner_FullName(t *testing.T) {
	assert.Equal(t, "A B", service.Owner{FirstName: "A", LastName: "B"}.FullName())
	assert.Equal(t, "A", service.Owner{FirstName: "A"}.FullName())
	assert.Equal(t, "", service.Owner{}.FullName())
}

func TestAPIError(t *testing.T) {
	assert.Equal(t, "status 404: Task not found", (&service.APIError{Status: 404, Message: "Task not found"}).Error())
	assert.Equal(t, "status 500", (&service.APIError{Status: 500}).Error())
	assert.Equal(t, "request failed: connection refused", (&service.APIError{Message: "connection refused"}).Error())

	wrapped := fmt.Errorf("Failed to fetch tasks: %w", &service.APIError{Status: 401})
	assert.True(t, service.IsUnauthorized(wrapped))
	assert.True(t, service.IsUnauthorized(&service.APIError{Status: 403}))
	assert.False(t, service.IsUnauthorized(&service.APIError{Status: 400}))
	assert.False(t, service.IsUnauthorized(assert.AnError))
}

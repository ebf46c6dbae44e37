package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskwave/internal/config"
	"taskwave/internal/exitcode"
	"taskwave/internal/service"
	"taskwave/internal/session"
	"taskwave/internal/tasklist"
	"taskwave/internal/validate"
)

func init() {
	Register(&UpdateCmd{})
}

// UpdateCmd implements the update command. Fields without a flag keep
// their current value.
type UpdateCmd struct {
	title       optionalString
	description optionalString
}

// optionalString is a flag.Value that remembers whether it was set, so an
// empty description can be told apart from no change.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value, o.set = s, true
	return nil
}

// SetFields sets the flag values (for testing). Nil leaves a field unchanged.
func (c *UpdateCmd) SetFields(title, description *string) {
	c.title, c.description = optionalString{}, optionalString{}
	if title != nil {
		_ = c.title.Set(*title)
	}
	if description != nil {
		_ = c.description.Set(*description)
	}
}

func (c *UpdateCmd) Name() string      { return "update" }
func (c *UpdateCmd) Aliases() []string { return []string{"edit"} }
func (c *UpdateCmd) Synopsis() string  { return "Change a task's title or description" }
func (c *UpdateCmd) Usage() string {
	return "taskwave update [--title <text>] [--description <text>] <id>"
}
func (c *UpdateCmd) NeedsService() bool { return true }

func (c *UpdateCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.description = optionalString{}, optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
}

func (c *UpdateCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !c.title.set && !c.description.set {
		fmt.Fprintln(errOut, "error: nothing to update (use --title or --description)")
		return exitcode.UserError
	}

	// Check the supplied fields before the lookup fetches the list.
	var fields []string
	if c.title.set {
		fields = append(fields, "Title")
	}
	if c.description.set {
		fields = append(fields, "Description")
	}
	edit := service.TaskInput{Title: c.title.value, Description: c.description.value}
	if err := validate.Fields(edit, fields...); err != nil {
		return report(errOut, err)
	}

	view := tasklist.New(svc, sess, printer(cfg, out))
	if err := view.CheckUpdate(); err != nil {
		return report(errOut, err)
	}
	task, err := findTask(ctx, view, id)
	if err != nil {
		return report(errOut, err)
	}

	view.OpenUpdate(task)
	title, description := task.Title, task.Description
	if c.title.set {
		title = c.title.value
	}
	if c.description.set {
		description = c.description.value
	}
	if err := view.Update(ctx, title, description); err != nil {
		return report(errOut, err)
	}
	return exitcode.Success
}

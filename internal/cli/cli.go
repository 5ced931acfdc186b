package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tiwariParth/tasklist/internal/app"
	"github.com/tiwariParth/tasklist/internal/models"
)

// CLI represents the interactive menu.
type CLI struct {
	App *app.TodoApp
	in  *bufio.Reader
	out io.Writer
}

// NewCLI initializes a new CLI reading choices from in and writing to out.
func NewCLI(a *app.TodoApp, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		App: a,
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Run loops over the menu until the user exits or input ends. Errors from
// the task operations, other than the ones reported inline, end the loop
// and are returned.
func (c *CLI) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.printMenu()
		choice, err := c.prompt(ctx, "Select an option: ")
		if err != nil {
			return ignoreEOF(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = c.add(ctx)
		case "2":
			err = c.remove(ctx)
		case "3":
			c.list()
		case "4":
			err = c.prioritize(ctx)
		case "5":
			c.recommend()
		case "6":
			fmt.Fprintln(c.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(c.out, Red("Invalid option. Please select a valid option."))
		}
		if err != nil {
			return ignoreEOF(err)
		}
	}
}

func (c *CLI) printMenu() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, Bold("Task Management App"))
	fmt.Fprintln(c.out, "1. Add Task")
	fmt.Fprintln(c.out, "2. Remove Task")
	fmt.Fprintln(c.out, "3. List Tasks")
	fmt.Fprintln(c.out, "4. Prioritize Tasks")
	fmt.Fprintln(c.out, "5. Recommend Task")
	fmt.Fprintln(c.out, "6. Exit")
}

func (c *CLI) add(ctx context.Context) error {
	description, err := c.prompt(ctx, "Enter task description: ")
	if err != nil {
		return err
	}
	input, err := c.prompt(ctx, "Enter task priority (Low/Medium/High): ")
	if err != nil {
		return err
	}

	priority, err := ParsePriorityInput(input)
	if err != nil {
		fmt.Fprintln(c.out, Red("Invalid priority! Please enter Low, Medium, or High."))
		return nil
	}
	if err := c.App.AddTask(ctx, description, priority); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	fmt.Fprintln(c.out, Green("Task added successfully."))
	return nil
}

func (c *CLI) remove(ctx context.Context) error {
	description, err := c.prompt(ctx, "Enter task description to remove: ")
	if err != nil {
		return err
	}
	if _, err := c.App.RemoveTask(ctx, description); err != nil {
		return fmt.Errorf("failed to remove task: %w", err)
	}
	fmt.Fprintln(c.out, Green("Task removed successfully."))
	return nil
}

func (c *CLI) list() {
	tasks := c.App.ListTasks()
	if len(tasks) == 0 {
		fmt.Fprintln(c.out, "No tasks available.")
		return
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDESCRIPTION\tPRIORITY")
	for i, t := range tasks {
		// The colored cell is last so escapes do not skew column widths.
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, t.Description, priorityLabel(t.Priority))
	}
	tw.Flush()
}

func (c *CLI) prioritize(ctx context.Context) error {
	if err := c.App.PrioritizeTasks(ctx); err != nil {
		return fmt.Errorf("failed to prioritize tasks: %w", err)
	}
	fmt.Fprintln(c.out, Green("Tasks prioritized successfully."))
	return nil
}

func (c *CLI) recommend() {
	rec, err := c.App.RecommendTask()
	switch {
	case errors.Is(err, app.ErrNoTasks):
		fmt.Fprintln(c.out, "No tasks available for recommendations.")
	case err != nil:
		fmt.Fprintf(c.out, "%s %v\n", Yellow("No recommendation:"), err)
	default:
		fmt.Fprintf(c.out, "Recommended task: %s - Priority: %s\n", Bold(rec.Task.Description), priorityLabel(rec.Predicted))
	}
}

// prompt writes label and reads one line without its line terminator. A
// final line without a newline is returned normally; io.EOF is returned
// only when nothing was read. Cancelling ctx abandons the pending read and
// returns ctx.Err().
func (c *CLI) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(c.out, Cyan(label))

	type result struct {
		line string
		err  error
	}
	// Buffered so the reader goroutine never blocks once Run has returned.
	done := make(chan result, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		done <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil && !(errors.Is(r.err, io.EOF) && r.line != "") {
			return "", r.err
		}
		return strings.TrimRight(r.line, "\r\n"), nil
	}
}

// ParsePriorityInput normalises free-form input ("high", "HIGH ") to a
// priority.
func ParsePriorityInput(input string) (models.Priority, error) {
	return models.ParsePriority(cases.Title(language.English).String(strings.TrimSpace(input)))
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

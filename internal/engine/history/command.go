package history

import (
	"fmt"
)

// Command is a reversible unit of document mutation.
//
// A command is bound to its target when constructed. Execute applies the
// mutation and captures whatever Undo needs to reverse it. After Undo, a
// second Execute must reproduce the same result (redo).
type Command interface {
	// Execute applies the command and returns a description of what it did.
	Execute() (string, error)

	// Undo reverses the most recent Execute.
	Undo() (string, error)

	// Description returns a stable human-readable label.
	Description() string
}

// Batch groups commands as one undo unit.
type Batch struct {
	Name     string
	Commands []Command
}

// NewBatch creates a batch from already constructed commands.
func NewBatch(name string, commands ...Command) *Batch {
	return &Batch{
		Name:     name,
		Commands: commands,
	}
}

// Execute runs all commands in order. If one fails, the commands already
// applied are undone in reverse order before the error is returned.
func (b *Batch) Execute() (string, error) {
	for i, cmd := range b.Commands {
		if _, err := cmd.Execute(); err != nil {
			for j := i - 1; j >= 0; j-- {
				_, _ = b.Commands[j].Undo()
			}
			return "", fmt.Errorf("batch %q step %d: %w", b.Description(), i, err)
		}
	}
	return b.Description(), nil
}

// Undo reverses all commands in reverse order. If one fails, the commands
// already undone are executed again so the document is left as it was.
func (b *Batch) Undo() (string, error) {
	for i := len(b.Commands) - 1; i >= 0; i-- {
		if _, err := b.Commands[i].Undo(); err != nil {
			for j := i + 1; j < len(b.Commands); j++ {
				_, _ = b.Commands[j].Execute()
			}
			return "", fmt.Errorf("undo batch %q step %d: %w", b.Description(), i, err)
		}
	}
	return b.Description(), nil
}

// Description returns the batch name, the single member's description, or
// a member count.
func (b *Batch) Description() string {
	if b.Name != "" {
		return b.Name
	}
	if len(b.Commands) == 1 {
		return b.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(b.Commands))
}

// Add appends a command to the batch.
func (b *Batch) Add(cmd Command) {
	b.Commands = append(b.Commands, cmd)
}

// Len returns the number of commands in the batch.
func (b *Batch) Len() int {
	return len(b.Commands)
}

// IsEmpty reports whether the batch has no commands.
func (b *Batch) IsEmpty() bool {
	return len(b.Commands) == 0
}

// Func adapts a pair of closures to the Command interface.
// It is handy for one-off commands and tests.
type Func struct {
	Name   string
	Do     func() error
	Revert func() error
}

// Execute implements Command.
func (f *Func) Execute() (string, error) {
	if f.Do != nil {
		if err := f.Do(); err != nil {
			return "", err
		}
	}
	return f.Name, nil
}

// Undo implements Command.
func (f *Func) Undo() (string, error) {
	if f.Revert != nil {
		if err := f.Revert(); err != nil {
			return "", err
		}
	}
	return f.Name, nil
}

// Description implements Command.
func (f *Func) Description() string {
	return f.Name
}

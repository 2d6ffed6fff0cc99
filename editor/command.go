package editor

// maxUndo bounds the undo stack. Commands carry full clip snapshots, so an
// unbounded stack would grow with the project.
const maxUndo = 256

type (
	// Command is a single reversible unit of state mutation. Apply performs
	// the mutation, including any overlap-resolution side effects on other
	// clips, and reports whether anything changed; a false return cancels
	// the command and it is never pushed onto the undo stack. Revert undoes
	// everything Apply did, using snapshots the command captured during
	// Apply.
	//
	// Apply must be repeatable: after a Revert, a second Apply (redo) must
	// reproduce the exact post-apply state, including any ids that were
	// allocated the first time. Commands therefore record allocated ids and
	// resolved plans on first Apply and replay them on subsequent Applies
	// instead of recomputing.
	Command interface {
		Apply(e *Editor) bool
		Revert(e *Editor)
		Description() string
	}

	// Composite aggregates several commands into one undo unit, e.g. a
	// batch delete. Apply runs the children in order; Revert runs their
	// reverts in reverse order, which keeps order-dependent children
	// correct. The description is supplied by the caller, as no automatic
	// derivation reads well in an undo menu.
	Composite struct {
		Label    string
		Children []Command
	}

	// CommandLog is the undo/redo manager. Execute, Undo and Redo are the
	// only entry points that may mutate clip state or call mutating engine
	// functions, and each runs to completion before the next one starts.
	// Listeners are notified only after state has fully settled.
	CommandLog struct {
		editor    *Editor
		undoStack []Command
		redoStack []Command
		listeners []func()
	}
)

func (c *Composite) Apply(e *Editor) bool {
	changed := false
	for _, child := range c.Children {
		if child.Apply(e) {
			changed = true
		}
	}
	return changed
}

func (c *Composite) Revert(e *Editor) {
	for i := len(c.Children) - 1; i >= 0; i-- {
		c.Children[i].Revert(e)
	}
}

func (c *Composite) Description() string { return c.Label }

// Execute applies the command and pushes it onto the undo stack. The redo
// stack is cleared: executing anything after an undo discards the redone
// branch of history. A cancelled command (Apply returned false) leaves the
// stacks untouched.
func (l *CommandLog) Execute(cmd Command) bool {
	if !l.editor.noteExecuting() {
		return false
	}
	defer l.editor.doneExecuting()
	if !cmd.Apply(l.editor) {
		return false
	}
	if len(l.undoStack) >= maxUndo {
		l.undoStack = l.undoStack[1:]
	}
	l.undoStack = append(l.undoStack, cmd)
	l.redoStack = l.redoStack[:0]
	l.notify()
	return true
}

// Undo reverts the most recent command and moves it to the redo stack. With
// an empty undo stack this is a no-op returning false.
func (l *CommandLog) Undo() bool {
	if len(l.undoStack) == 0 {
		return false
	}
	if !l.editor.noteExecuting() {
		return false
	}
	defer l.editor.doneExecuting()
	cmd := l.undoStack[len(l.undoStack)-1]
	l.undoStack = l.undoStack[:len(l.undoStack)-1]
	cmd.Revert(l.editor)
	l.redoStack = append(l.redoStack, cmd)
	l.notify()
	return true
}

// Redo re-applies the most recently undone command and moves it back to the
// undo stack. With an empty redo stack this is a no-op returning false.
func (l *CommandLog) Redo() bool {
	if len(l.redoStack) == 0 {
		return false
	}
	if !l.editor.noteExecuting() {
		return false
	}
	defer l.editor.doneExecuting()
	cmd := l.redoStack[len(l.redoStack)-1]
	l.redoStack = l.redoStack[:len(l.redoStack)-1]
	cmd.Apply(l.editor)
	l.undoStack = append(l.undoStack, cmd)
	l.notify()
	return true
}

// Clear empties both stacks without reverting anything. This is the hard
// reset used when a new project is created or loaded, not an undo sequence.
func (l *CommandLog) Clear() {
	l.undoStack = l.undoStack[:0]
	l.redoStack = l.redoStack[:0]
	l.notify()
}

// UndoDescription returns the description of the command Undo would revert,
// for menu labels like "Undo Delete clip". Empty when there is nothing to
// undo.
func (l *CommandLog) UndoDescription() string {
	if len(l.undoStack) == 0 {
		return ""
	}
	return l.undoStack[len(l.undoStack)-1].Description()
}

// RedoDescription is the redo-side counterpart of UndoDescription.
func (l *CommandLog) RedoDescription() string {
	if len(l.redoStack) == 0 {
		return ""
	}
	return l.redoStack[len(l.redoStack)-1].Description()
}

func (l *CommandLog) CanUndo() bool { return len(l.undoStack) > 0 }
func (l *CommandLog) CanRedo() bool { return len(l.redoStack) > 0 }

// AddListener registers a function called after every completed execute,
// undo, redo or clear, once the arrangement is consistent again.
func (l *CommandLog) AddListener(f func()) {
	l.listeners = append(l.listeners, f)
}

func (l *CommandLog) notify() {
	for _, f := range l.listeners {
		f()
	}
}

package checkpoint

// DefaultLimit is the number of groups kept on each stack.
const DefaultLimit = 256

// Store holds undo and redo stacks of checkpoint groups. A group is the
// set of checkpoints recorded by one gesture and is undone atomically.
type Store struct {
	undo  [][]Checkpoint
	redo  [][]Checkpoint
	limit int
}

// Option configures a Store.
type Option func(*Store)

// WithLimit caps each stack at n groups, dropping the oldest.
// n <= 0 removes the cap.
func WithLimit(n int) Option {
	return func(s *Store) {
		s.limit = n
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{limit: DefaultLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push records a group from a new edit and clears the redo stack.
// Empty groups are ignored.
func (s *Store) Push(group ...Checkpoint) {
	if len(group) == 0 {
		return
	}
	s.undo = s.push(s.undo, group)
	s.redo = nil
}

// Undo restores the most recent group in reverse order and moves its
// inverse onto the redo stack. It reports false when there is nothing to undo.
func (s *Store) Undo(target Restorer) bool {
	group, ok := pop(&s.undo)
	if !ok {
		return false
	}
	s.redo = s.push(s.redo, apply(target, group))
	return true
}

// Redo reapplies the most recently undone group and moves its inverse back
// onto the undo stack. The redo stack is not cleared.
func (s *Store) Redo(target Restorer) bool {
	group, ok := pop(&s.redo)
	if !ok {
		return false
	}
	s.undo = s.push(s.undo, apply(target, group))
	return true
}

// UndoLen returns the number of undoable groups.
func (s *Store) UndoLen() int { return len(s.undo) }

// RedoLen returns the number of redoable groups.
func (s *Store) RedoLen() int { return len(s.redo) }

// NeedsSave reports whether there are unsaved edits.
func (s *Store) NeedsSave() bool { return len(s.undo) > 0 }

// Clear drops both stacks, typically after a successful save.
func (s *Store) Clear() {
	s.undo = nil
	s.redo = nil
}

func (s *Store) push(stack [][]Checkpoint, group []Checkpoint) [][]Checkpoint {
	stack = append(stack, group)
	if s.limit > 0 && len(stack) > s.limit {
		n := copy(stack, stack[len(stack)-s.limit:])
		clear(stack[n:])
		stack = stack[:n]
	}
	return stack
}

func pop(stack *[][]Checkpoint) ([]Checkpoint, bool) {
	n := len(*stack)
	if n == 0 {
		return nil, false
	}
	group := (*stack)[n-1]
	(*stack)[n-1] = nil
	*stack = (*stack)[:n-1]
	return group, true
}

// apply restores group in reverse order and returns the inverse group in
// the order that undoes it again.
func apply(target Restorer, group []Checkpoint) []Checkpoint {
	inverse := make([]Checkpoint, len(group))
	for i := len(group) - 1; i >= 0; i-- {
		inverse[len(group)-1-i] = target.Restore(group[i])
	}
	return inverse
}

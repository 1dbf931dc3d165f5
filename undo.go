package main

// CommandStack is the drawing: an append-only history of operations plus
// the operations undone since the last push. The committed surface is only
// ever painted by replaying the history from scratch.
type CommandStack struct {
	history   []Operation
	redo      []Operation
	boundary  int
	bootstrap func() []Operation
	ctx       *DrawingContext
	surface   Surface
	log       *Logger
}

// NewCommandStack builds a stack whose history starts with the operations
// returned by bootstrap, and paints it onto surface.
func NewCommandStack(ctx *DrawingContext, surface Surface, bootstrap func() []Operation, log *Logger) *CommandStack {
	if log == nil {
		log = DiscardLogger()
	}
	cs := &CommandStack{
		ctx:       ctx,
		surface:   surface,
		bootstrap: bootstrap,
		log:       log.WithPrefix("history"),
	}
	cs.Reset()
	return cs
}

func (cs *CommandStack) Push(op Operation) {
	cs.history = append(cs.history, op)
	cs.redo = cs.redo[:0]
	cs.log.Debug("push %s (%d ops)", op.Kind(), len(cs.history))
	cs.Replay(cs.surface)
}

// Undo moves the last operation to the redo buffer. The bootstrap prefix
// cannot be undone.
func (cs *CommandStack) Undo() bool {
	if len(cs.history) <= cs.boundary {
		cs.log.Debug("undo at boundary %d ignored", cs.boundary)
		return false
	}
	last := len(cs.history) - 1
	op := cs.history[last]
	cs.history = cs.history[:last]
	cs.redo = append(cs.redo, op)
	cs.Replay(cs.surface)
	return true
}

func (cs *CommandStack) Redo() bool {
	if len(cs.redo) == 0 {
		return false
	}
	last := len(cs.redo) - 1
	op := cs.redo[last]
	cs.redo = cs.redo[:last]
	cs.history = append(cs.history, op)
	cs.Replay(cs.surface)
	return true
}

// Reset discards the drawing and restores the bootstrap history.
func (cs *CommandStack) Reset() {
	cs.history = append([]Operation(nil), cs.bootstrap()...)
	cs.redo = nil
	cs.boundary = len(cs.history)
	cs.Replay(cs.surface)
}

// Load replaces the history with ops. A history that does not begin with
// the bootstrap context operations gets them prepended.
func (cs *CommandStack) Load(ops []Operation) {
	if !hasBootstrapPrefix(ops) {
		ops = append(cs.bootstrap(), ops...)
	}
	cs.history = append([]Operation(nil), ops...)
	cs.redo = nil
	cs.boundary = bootstrapOps
	cs.log.Info("loaded %d ops", len(ops))
	cs.Replay(cs.surface)
}

func hasBootstrapPrefix(ops []Operation) bool {
	if len(ops) < bootstrapOps {
		return false
	}
	for _, op := range ops[:bootstrapOps] {
		switch op.Kind() {
		case KindColor, KindStyle, KindSymmetry:
		default:
			return false
		}
	}
	return true
}

// Replay clears s and renders every operation in order, starting from an
// empty drawing context. Context listeners hear about the result once.
func (cs *CommandStack) Replay(s Surface) {
	before := cs.ctx.Snapshot()
	cs.ctx.clear()
	s.Clear()
	for _, op := range cs.history {
		op.Render(cs.ctx, s)
	}
	if cs.ctx.Snapshot() != before {
		cs.ctx.publish()
	}
}

// History returns a copy of the committed operations.
func (cs *CommandStack) History() []Operation {
	return append([]Operation(nil), cs.history...)
}

func (cs *CommandStack) Len() int { return len(cs.history) }

func (cs *CommandStack) Boundary() int { return cs.boundary }

func (cs *CommandStack) CanUndo() bool { return len(cs.history) > cs.boundary }

func (cs *CommandStack) CanRedo() bool { return len(cs.redo) > 0 }

// Document encodes the whole history for saving.
func (cs *CommandStack) Document() Document {
	return EncodeHistory(cs.history)
}

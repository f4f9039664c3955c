package domain

// HistoryEventKind names the operation that triggered a history notification.
type HistoryEventKind string

const (
	EventInit     HistoryEventKind = "init"
	EventDispatch HistoryEventKind = "dispatch"
	EventUndo     HistoryEventKind = "undo"
	EventRedo     HistoryEventKind = "redo"
	EventClear    HistoryEventKind = "clear"
)

// HistorySnapshot is a read-only view of the undo/redo stacks.
type HistorySnapshot struct {
	UndoDepth int  `json:"undoDepth"`
	RedoDepth int  `json:"redoDepth"`
	CanUndo   bool `json:"canUndo"`
	CanRedo   bool `json:"canRedo"`
}

// HistoryEvent is delivered to history subscribers.
type HistoryEvent struct {
	Event HistoryEventKind `json:"event"`
	HistorySnapshot
	// CmdType is the forward command type for dispatch events and the executed
	// command type for undo/redo events. Empty for init and clear.
	CmdType CommandType `json:"cmdType,omitempty"`
}

// HistoryListener receives history events synchronously.
type HistoryListener func(HistoryEvent)

// HistoryHooks observe the command bus without taking part in it.
// Every hook is optional.
type HistoryHooks struct {
	// OnDispatch fires after a history-visible dispatch. Coalesced is true
	// when the command merged into the top frame.
	OnDispatch func(cmd Command, coalesced bool)
	// OnNoop fires when a dispatch produced no inverse.
	OnNoop func(cmd Command)
	OnUndo func(inverse Command)
	OnRedo func(forward Command)
	OnClear func()
	// OnFault fires when the executor failed or panicked.
	OnFault func(cmd Command, err error)
}

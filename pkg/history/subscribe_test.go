package history_test

import (
	"testing"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_Events(t *testing.T) {
	eng, _, _ := newEngine(t)

	var got []domain.HistoryEvent
	unsubscribe := eng.Subscribe(func(ev domain.HistoryEvent) { got = append(got, ev) })

	// 1. Immediate init
	require.Len(t, got, 1)
	assert.Equal(t, domain.EventInit, got[0].Event)

	// 2. Dispatch / undo / redo / clear
	eng.Dispatch(move(1))
	eng.Undo()
	eng.Redo()
	eng.Clear()

	require.Len(t, got, 5)
	assert.Equal(t, domain.HistoryEvent{
		Event:           domain.EventDispatch,
		HistorySnapshot: domain.HistorySnapshot{UndoDepth: 1, CanUndo: true},
		CmdType:         domain.CmdMoveShapesDelta,
	}, got[1])
	assert.Equal(t, domain.EventUndo, got[2].Event)
	assert.Equal(t, domain.CmdSetPositions, got[2].CmdType)
	assert.Equal(t, 1, got[2].RedoDepth)
	assert.Equal(t, domain.EventRedo, got[3].Event)
	assert.Equal(t, domain.EventClear, got[4].Event)
	assert.Empty(t, got[4].CmdType)

	// 3. No-ops are silent
	eng.Dispatch(domain.NewCommand(domain.CmdDeleteShapes, domain.DeleteShapesPayload{IDs: []string{}}))
	assert.Len(t, got, 5)

	// 4. Unsubscribe, twice
	unsubscribe()
	unsubscribe()
	eng.Dispatch(move(1))
	assert.Len(t, got, 5)
}

func TestSubscribe_ListenerPanic(t *testing.T) {
	eng, _, _ := newEngine(t)

	eng.Subscribe(func(ev domain.HistoryEvent) {
		if ev.Event == domain.EventDispatch {
			panic("listener broke")
		}
	})
	var calls int
	eng.Subscribe(func(domain.HistoryEvent) { calls++ })

	var inv *domain.Command
	assert.NotPanics(t, func() { inv = eng.Dispatch(move(2)) })
	assert.NotNil(t, inv, "the triggering operation still succeeds")
	assert.Equal(t, 2, calls, "init + dispatch reach the second listener")
	assert.Equal(t, 1, eng.Snapshot().UndoDepth)
}

func TestSubscribe_UnsubscribeDuringNotify(t *testing.T) {
	eng, _, _ := newEngine(t)

	var unsubscribe func()
	var first, second int
	unsubscribe = eng.Subscribe(func(ev domain.HistoryEvent) {
		first++
		if ev.Event == domain.EventDispatch {
			unsubscribe()
		}
	})
	eng.Subscribe(func(domain.HistoryEvent) { second++ })

	eng.Dispatch(move(1))
	eng.Dispatch(move(1))
	assert.Equal(t, 2, first)
	assert.Equal(t, 3, second)
}

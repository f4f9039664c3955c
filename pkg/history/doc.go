/*
Package history implements the command bus: dispatch, undo, redo and the
coalescing policy that folds bursts of fine-grained edits into one undo step.

An Engine owns its stacks and its listeners; create one per document. It is
synchronous and performs no locking, so a host with several actors must
serialize calls (see pkg/session).

Listeners are called synchronously from inside Dispatch, Undo, Redo and Clear.
A listener must not call back into the same Engine; queue the call instead.

	eng := history.New(executor, history.WithLogger(logger))
	eng.Dispatch(cmd, history.WithCoalesceKey("fill-drag"))
	eng.Undo()
*/
package history

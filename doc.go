/*
Package easel is a command/history engine for 2D scene editors.

Every user-visible edit is expressed as a Command: a tagged, serializable value
that the structural executor applies to the scene. Applying a command yields
its inverse, which the history engine keeps on an undo stack. Undo executes the
inverse and records the resulting forward command for redo.

# Concept

Easel does not own rendering or input. The host application ("Host") provides
the scene collaborators (shape store, selection, canvas background) behind the
interfaces in pkg/ports, and drives the editor with commands. A built-in
in-memory scene is used when no host is injected, which is what the CLI, the
HTTP server and the MCP server run on.

# Key Features

  - Invertible commands: add, delete, duplicate, move, align, lock, style and transform commits.
  - Coalescing: bursts of the same command under one key collapse into a single undo step.
  - Bounds clamping: moves and alignment keep shapes inside the canvas background.
  - Subscriptions: listeners receive a snapshot of the stack depths after every change.

# Usage

	ed, err := easel.New("doc-1", easel.WithBackground(800, 600))
	if err != nil {
		log.Fatal(err)
	}

	ed.Dispatch(dsl.Rect(40, 40, 100, 60).Fill("#f00").Add())
	ed.Dispatch(dsl.Move(10, 0).Command(), history.WithCoalesceKey("drag"))

	ed.Undo()
	ed.Redo()
*/
package easel

/*
Package runner executes command scripts against an Easel editor.

A script is a YAML (or JSON) document listing steps: commands to dispatch,
undo/redo/clear operations, simulated clock advances for coalescing, and
expectations on the resulting history and scene. The runner reports each step
through a pluggable Reporter (plain text or JSON lines).

# Script Format

	document: demo
	background: {width: 400, height: 300}
	steps:
	  - command: {type: ADD_SHAPE, payload: {shape: {kind: rect, width: 50, height: 20}}}
	  - command: {type: MOVE_SHAPES_DELTA, payload: {dx: 5}}
	    coalesce_key: drag
	  - advance_ms: 100
	  - undo: true
	  - expect: {undo_depth: 1, redo_depth: 1, shapes: 1}

# Usage

	script, err := runner.LoadScript("demo.yaml")
	if err != nil {
		log.Fatal(err)
	}

	r := runner.NewRunner(runner.WithReporter(runner.NewTextReporter(os.Stdout)))
	if _, err := r.Run(ctx, script); err != nil {
		log.Fatal(err)
	}
*/
package runner

/*
Package domain contains the core models of the Easel command/history engine.

It defines the entities that flow between the executor, the history engine and
the host collaborators. This package is kept pure and free of I/O, following the
same Hexagonal Architecture split as the rest of the module.

# Key Entities

  - Shape: a plain-value scene entity (id, kind, transform, style, lock state).
  - Command: a tagged, forward-only description of an intended mutation.
  - HistorySnapshot / HistoryEvent: read-only views of the undo/redo stacks.
  - Scene: a serializable snapshot of a document (shapes, selection, background).

Shapes are always referenced by id inside command payloads. Live handles never
cross the history boundary, so an inverse that resurrects a deleted shape carries
a Shape value and rebuilds it through the store factory.
*/
package domain

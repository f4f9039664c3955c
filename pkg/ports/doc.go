/*
Package ports defines the driven ports (interfaces) for the Easel engine.

These interfaces decouple the command executor and the history engine from
the host that owns the scene, allowing the same core to run against an
in-memory scene, a canvas bridge, or a test double.

# Key Interfaces

  - ShapeStore: canonical list of shapes addressed by id, plus the shape factory.
  - Selection: the host's current selection and transient group frame.
  - Background: the optional bounds rectangle used for clamping and canvas alignment.
  - Executor: maps a command to a mutation and its inverse.
  - SceneStore: persists scene snapshots per document (memory, Redis).
  - DistributedLocker: provides distributed locking for concurrent document access.
*/
package ports

/*
Package session implements per-document editor management.

The history engine performs no locking. The Manager owns one easel.Editor per
document, serializes every access to it behind a per-document mutex (and an
optional distributed lock), and persists scene snapshots to a SceneStore after
each operation so a document can be reopened by another replica. Undo history
is process-local and is not persisted.
*/
package session

/*
Package geometry implements the scene-space math shared by the structural
command handlers: absolute bounding boxes of transformed shapes, the
bounds-clamp used by translations and the axis-isolated alignment reference.

Shape transforms are expressed as seehuhn.de/go/geom matrices, in the same
[a b c d e f] layout used by PDF content streams: a local point (x, y) maps to
(a·x + c·y + e, b·x + d·y + f).
*/
package geometry

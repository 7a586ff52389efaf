// Package circular computes radial layouts for mind maps.
//
// Every tree of a mind map forest is arranged on concentric circles around a
// center: roots sit on the inner ring, and each further generation sits one
// level spacing further out. The engine consists of a few small stages:
//
//   - [FindRootNodes] and [BuildTree] turn the flat node and edge maps into
//     trees with subtree sizes.
//   - [CalculateFlexibleSectors] divides the circle among root trees in
//     proportion to their direct child counts.
//   - [AdjustNodeSpacing] iteratively equalizes the border gaps between root
//     rectangles, growing the inner ring when they do not fit.
//   - [PlaceChildrenOnCircle] fans children across their parent's sector and
//     pushes the fan outward until it clears every placed node.
//
// [Engine.ApplyCircularLayout] lays out a whole graph. [Engine.ApplyCircularToSelected]
// re-centers the subtree of one node around that node's current position.
//
// # Angles
//
// [Params.StartAngle] is given in degrees with 0° pointing up. Internally
// angles are radians in screen coordinates (y down) so that increasing angles
// run clockwise; [Params.Clockwise] selects the sign of every angular step.
//
// # Results
//
// The engine reads and writes positions through a [PositionSink]. Writes are
// staged for the whole pass and committed only when the pass succeeds, so a
// failed call leaves the sink untouched.
//
// # Complexity
//
// Every candidate child position is tested against every node placed so far,
// and a fan may be retried several times, so a full layout is O(n²) in the
// node count.
//
// # Concurrency
//
// An Engine holds no per-call state and may be shared. A sink must not be
// used by concurrent calls.
package circular

// Package model declares the type chains template resolution walks. Go has no
// runtime inheritance to introspect, so every domain type declares an ordered
// list of descriptors (namespace plus type name), either by registering a
// prototype with a Registry or by implementing Chainer. Optional capability
// interfaces (PathProvider, Slugged, FullSlugged, Typed) let a value replace or
// widen the default candidate list through static interface dispatch.
package model

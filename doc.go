// Package layout renders domain objects with templates chosen from their type
// hierarchy. For an object and a view name it computes candidate paths such as
//
//	layout/news/article/full.html
//	layout/content/item/full.html
//
// and renders the first one that exists, with the object available to the
// template as "object". Objects may provide their own candidates, or widen
// them by slug, full slug or a shared type object; see package model.
package layout

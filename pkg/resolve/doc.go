// Package resolve turns an object and a view name into an ordered list of
// candidate template paths, most specific first. Basic walks the declared type
// chain; ModelProvided additionally honours the capability interfaces from the
// model package; Themed prefixes candidates with theme folders.
package resolve

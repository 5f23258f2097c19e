// Package scaffold renders a resource scaffold from a template set and writes
// it into a Laravel project. A template set is a directory holding
// scaffold.yaml, which lists the artifacts to produce in write order, and
// the Go text/template files they are rendered from. Templates use [[ ]]
// delimiters so Blade's {{ }} passes through untouched. The built-in
// "laravel" set is embedded in the binary; any directory with the same
// layout can replace it.
package scaffold

// Package ast holds the values produced by parsing a TRA file: string
// literals, WeiDU string expressions, entries, comments and the fragments that
// wrap them. Values are immutable after construction.
package ast

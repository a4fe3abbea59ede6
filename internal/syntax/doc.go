// Package syntax is a small lexer and declaration scanner for Rust-like
// source text. It recovers typed constants, zero-argument functions, enums
// with their variants and match arms, and string arrays without a grammar:
// tokens plus balanced-delimiter scanning. Input that cannot be delimited
// is skipped, never reported as an error.
package syntax

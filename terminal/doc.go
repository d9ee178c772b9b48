// Package terminal provides direct ANSI terminal control with zero-alloc rendering.
//
// Features:
//   - True color (24-bit) and 256-color palette support
//   - Double-buffered output with per-cell, per-line, and adaptive diffing
//   - SGR-coalescing line serialization with per-frame output statistics
//   - Raw stdin input parsing with escape sequence, mouse, and paste handling
//   - SIGWINCH resize detection; pluggable backends for remote sessions
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal

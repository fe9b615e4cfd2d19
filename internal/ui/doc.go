// Package ui contains the Bubble Tea program that hosts menu windows on a
// terminal.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry.
//   - Key presses are matched against a bubbles/key map and mouse messages are
//     translated into pointer and wheel events. Both are forwarded, in order,
//     on the channel returned by Model.Events, which a track.Session reads.
//   - The session draws through the Compositor. Every change wakes a waiting
//     command so the program re-renders; View composes the visible windows
//     over the background with ANSI-aware cuts.
//   - When the session ends the done channel closes, DoneMsg arrives and the
//     program quits.
package ui

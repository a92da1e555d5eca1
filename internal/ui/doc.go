// Package ui provides the terminal user interface for zapdeck.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It owns no domain state: once per
// second it reads an immutable hub.Snapshot and renders it, and every
// operator command is dispatched to the hub as a tea.Cmd whose result
// comes back as a message. The engine keeps moving whether or not a
// frame is being drawn, so a slow terminal never stalls polling or the
// push channel.
//
// # Package Structure
//
//   - app.go: Model, Options, message types, Init/Update, the Run entry point
//   - keys.go: key dispatch per view and for the two text inputs
//   - layout.go: header, banner, footer, and shared list rendering
//   - devices.go: device list and the pairing pane
//   - chat.go: contact list, timeline, and the reply composer
//   - logic.go: logic-file listing for the selected device
//   - theme.go: color palettes and pre-built Lipgloss styles
//   - help.go: keyboard reference overlay
//
// # Views
//
// Three views share the screen, switched with 1/2/3 or tab:
//
//   - Devices: every known session with its lifecycle status, plus the
//     pairing pane for the selected one (QR artifact, retry prompt
//     after repeated poll failures, connected confirmation)
//   - Chat: contacts ordered by most recent activity and the live
//     timeline of the open conversation
//   - Logic: the logic-definition files uploaded for the device
//
// The header shows the push-channel and assistant health dots; a
// banner line below it surfaces connectivity problems, with
// transport-policy mismatches spelled out rather than folded into a
// generic failure.
package ui

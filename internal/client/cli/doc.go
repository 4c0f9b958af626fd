// Package cli provides the interactive Collective command-line client.
//
// It wires configuration, local storage, the REST API client, the session
// store and an interactive REPL. Typical flow: resolve the route guard
// (prompting for sign-in or profile completion as needed), start the
// background storage and connectivity watchers, and execute user commands.
//
// Key features:
//   - Login / Logout
//   - Profile show/edit, interest management
//   - Events with RSVP, benefits, content library with course progress
//   - Membership upgrade requests
//   - Admin mode and the membership-approval console
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

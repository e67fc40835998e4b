// Package controller owns the screen state of the client and the
// optimistic update, persist and reload cycle behind every mutation.
//
// Operations return tea.Cmds that perform I/O off the UI goroutine. Their
// results come back as messages that must be passed to the controller's
// Update method, which is the only place state changes after the initial
// optimistic edit.
package controller

// NavigateToWorkspace asks the app to show a workspace's board list
type NavigateToWorkspace struct {
	WorkspaceID string
}

// NavigateToWorkspaces asks the app to show the workspace list
type NavigateToWorkspaces struct{}

// LoggedIn is emitted once credentials are stored
type LoggedIn struct{}

// LoggedOut is emitted once credentials are cleared
type LoggedOut struct{}

// AuthFailed carries the message to show on the login or register form
type AuthFailed struct {
	Message string
}

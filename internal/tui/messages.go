package tui

import (
	"github.com/theunsaid/draft-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the root router to another page. An optional Payload
// is delivered to the target page right after the switch.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// AuthResult finishes the login/register flow. On a nil Err the root model
// quits the flow program and the main loop takes over.
type AuthResult struct {
	Err   error
	Login string
}

type draftsLoadedMsg struct {
	items     []models.Draft
	fromCache bool
	err       error
}

type draftSavedMsg struct {
	err error
}

type draftDeletedMsg struct {
	err error
}

type refreshDoneMsg struct {
	err error
}

type reauthResultMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}

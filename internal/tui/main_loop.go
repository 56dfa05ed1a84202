// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Unsaid Authors

package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/theunsaid/draft-keeper/internal/service"
	"github.com/theunsaid/draft-keeper/models"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenEdit
	screenConfirmDelete
	screenReauth
)

// mainLoopModel drives the journal once a session is unlocked: the draft
// list, a detail view, the editor, delete confirmation, and the password
// re-entry prompt shown when the current key stops decrypting.
type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices

	screen  screen
	items   []models.Draft
	idx     int
	loading bool
	syncing bool
	offline bool
	spinner spinner.Model
	status  string
	lastErr error

	// detail
	detail models.Draft

	// editor
	editingID  string
	content    textarea.Model
	meta       []textinput.Model
	metaFocus  int
	inContent  bool
	saving     bool

	// reauth
	reauthInput textinput.Model
	reauthBusy  bool

	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices) mainLoopModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	content := textarea.New()
	content.Placeholder = "write what you cannot say out loud..."
	content.CharLimit = 0

	titleInput := textinput.New()
	titleInput.Placeholder = "title"
	titleInput.CharLimit = 128
	titleInput.Width = 40

	recipientInput := textinput.New()
	recipientInput.Placeholder = "recipient"
	recipientInput.CharLimit = 128
	recipientInput.Width = 40

	intentInput := textinput.New()
	intentInput.Placeholder = "intent (vent, apologize, remember...)"
	intentInput.CharLimit = 128
	intentInput.Width = 40

	reauthInput := textinput.New()
	reauthInput.Placeholder = "password"
	reauthInput.CharLimit = 256
	reauthInput.Width = 40
	reauthInput.EchoMode = textinput.EchoPassword
	reauthInput.EchoCharacter = '*'

	return mainLoopModel{
		ctx:         ctx,
		services:    services,
		spinner:     s,
		loading:     true,
		content:     content,
		meta:        []textinput.Model{titleInput, recipientInput, intentInput},
		reauthInput: reauthInput,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoadDrafts())
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case draftsLoadedMsg:
		m.loading = false
		m.syncing = false
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrReauthRequired) {
				m.screen = screenReauth
				m.lastErr = nil
				return m, textinput.Blink
			}
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.offline = msg.fromCache
		m.items = msg.items
		if m.idx >= len(m.items) {
			m.idx = 0
		}
		return m, nil

	case draftSavedMsg:
		m.saving = false
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrReauthRequired) ||
				errors.Is(msg.err, service.ErrEncryptionKeyUnavailable) {
				m.screen = screenReauth
				return m, textinput.Blink
			}
			m.lastErr = msg.err
			return m, nil
		}
		m.screen = screenList
		m.status = "saved"
		return m, tea.Batch(m.cmdLoadDrafts(), clearStatusAfter(3*time.Second))

	case draftDeletedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.screen = screenList
			return m, nil
		}
		m.screen = screenList
		m.status = "deleted"
		return m, tea.Batch(m.cmdLoadDrafts(), clearStatusAfter(3*time.Second))

	case refreshDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		return m, m.cmdLoadDrafts()

	case reauthResultMsg:
		m.reauthBusy = false
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.reauthInput.Reset()
		m.screen = screenList
		m.loading = true
		return m, m.cmdLoadDrafts()

	case copiedMsg:
		m.status = "copied to clipboard"
		return m, clearStatusAfter(3 * time.Second)

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.screen {
	case screenList:
		return m.updateList(keyMsg)
	case screenDetail:
		return m.updateDetail(keyMsg)
	case screenEdit:
		return m.updateEdit(keyMsg)
	case screenConfirmDelete:
		return m.updateConfirmDelete(keyMsg)
	case screenReauth:
		return m.updateReauth(keyMsg)
	}
	return m, nil
}

func (m mainLoopModel) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "enter":
		if item, ok := m.current(); ok {
			m.detail = item
			m.screen = screenDetail
		}
	case "n":
		m.openEditor(models.Draft{})
		return m, textarea.Blink
	case "e":
		if item, ok := m.current(); ok {
			m.openEditor(item)
			return m, textarea.Blink
		}
	case "d":
		if _, ok := m.current(); ok {
			m.screen = screenConfirmDelete
		}
	case "s":
		if !m.syncing {
			m.syncing = true
			return m, tea.Batch(m.spinner.Tick, m.cmdRefresh())
		}
	case "l":
		m.logout = true
		return m, m.cmdLogout()
	}
	return m, nil
}

func (m mainLoopModel) updateDetail(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.screen = screenList
	case "e":
		m.openEditor(m.detail)
		return m, textarea.Blink
	case "d":
		m.screen = screenConfirmDelete
	case "c":
		content := m.detail.Content
		return m, func() tea.Msg {
			if err := clipboard.WriteAll(content); err != nil {
				return clearStatusMsg{}
			}
			return copiedMsg{}
		}
	}
	return m, nil
}

func (m mainLoopModel) updateEdit(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.screen = screenList
		return m, nil
	case "tab":
		if m.inContent {
			m.content.Blur()
			m.inContent = false
			m.metaFocus = 0
			m.meta[0].Focus()
		} else {
			m.meta[m.metaFocus].Blur()
			m.metaFocus++
			if m.metaFocus >= len(m.meta) {
				m.inContent = true
				m.content.Focus()
			} else {
				m.meta[m.metaFocus].Focus()
			}
		}
		return m, nil
	case "ctrl+s":
		if m.saving {
			return m, nil
		}
		m.saving = true
		return m, m.cmdSave()
	}

	var cmd tea.Cmd
	if m.inContent {
		m.content, cmd = m.content.Update(key)
	} else {
		m.meta[m.metaFocus], cmd = m.meta[m.metaFocus].Update(key)
	}
	return m, cmd
}

func (m mainLoopModel) updateConfirmDelete(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "y":
		if item, ok := m.current(); ok {
			return m, m.cmdDelete(item.ID)
		}
		m.screen = screenList
	case "n", "esc":
		m.screen = screenList
	}
	return m, nil
}

func (m mainLoopModel) updateReauth(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		if m.reauthBusy {
			return m, nil
		}
		pass := m.reauthInput.Value()
		if pass == "" {
			return m, nil
		}
		m.reauthBusy = true
		return m, m.cmdReauth(pass)
	case "l":
		m.logout = true
		return m, m.cmdLogout()
	}

	var cmd tea.Cmd
	m.reauthInput, cmd = m.reauthInput.Update(key)
	return m, cmd
}

func (m *mainLoopModel) openEditor(draft models.Draft) {
	m.editingID = draft.ID
	m.content.SetValue(draft.Content)

	var meta models.DraftMetadata
	if draft.Metadata != "" {
		_ = json.Unmarshal([]byte(draft.Metadata), &meta)
	}
	m.meta[0].SetValue(meta.Title)
	m.meta[1].SetValue(meta.Recipient)
	m.meta[2].SetValue(meta.Intent)

	m.inContent = true
	for i := range m.meta {
		m.meta[i].Blur()
	}
	m.content.Focus()
	m.screen = screenEdit
}

func (m mainLoopModel) current() (models.Draft, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Draft{}, false
	}
	return m.items[m.idx], true
}

func (m mainLoopModel) View() string {
	switch m.screen {
	case screenDetail:
		return m.viewDetail()
	case screenEdit:
		return m.viewEdit()
	case screenConfirmDelete:
		return m.viewConfirmDelete()
	case screenReauth:
		return m.viewReauth()
	default:
		return m.viewList()
	}
}

func (m mainLoopModel) viewList() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("loading...\n")
	} else if len(m.items) == 0 {
		b.WriteString("no drafts yet. press n to write the first one.\n")
	} else {
		for i, item := range m.items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(cursor)
			b.WriteString(draftListLine(item))
			b.WriteString("\n")
		}
	}

	if m.offline {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("offline: showing the local cache"))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + humanizeServerUnavailableError(m.lastErr)))
		b.WriteString("\n")
	}

	title := "DRAFTS"
	if m.syncing {
		title += "  " + m.spinner.View()
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"enter: open │ n: new │ e: edit │ d: delete │ s: sync │ l: log out │ q: quit")
}

func (m mainLoopModel) viewDetail() string {
	var meta models.DraftMetadata
	if m.detail.Metadata != "" {
		_ = json.Unmarshal([]byte(m.detail.Metadata), &meta)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Title:     %s\n", orDash(meta.Title)))
	b.WriteString(fmt.Sprintf("Recipient: %s\n", orDash(meta.Recipient)))
	b.WriteString(fmt.Sprintf("Intent:    %s\n", orDash(meta.Intent)))
	b.WriteString(fmt.Sprintf("Updated:   %s\n\n", m.detail.UpdatedAt.Format("2006-01-02 15:04")))
	b.WriteString(m.detail.Content)

	if m.status != "" {
		b.WriteString("\n\nOK: ")
		b.WriteString(m.status)
	}

	return renderPage("DRAFT", strings.TrimRight(b.String(), "\n"),
		"e: edit │ d: delete │ c: copy text │ esc: back")
}

func (m mainLoopModel) viewEdit() string {
	var b strings.Builder
	b.WriteString("Title     [")
	b.WriteString(m.meta[0].View())
	b.WriteString("]\n")
	b.WriteString("Recipient [")
	b.WriteString(m.meta[1].View())
	b.WriteString("]\n")
	b.WriteString("Intent    [")
	b.WriteString(m.meta[2].View())
	b.WriteString("]\n\n")
	b.WriteString(m.content.View())

	if m.saving {
		b.WriteString("\n\n[saving...]")
	}
	if m.lastErr != nil {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Error: " + humanizeServerUnavailableError(m.lastErr)))
	}

	title := "NEW DRAFT"
	if m.editingID != "" {
		title = "EDIT DRAFT"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"ctrl+s: save │ tab: next field │ esc: discard")
}

func (m mainLoopModel) viewConfirmDelete() string {
	item, _ := m.current()
	body := fmt.Sprintf("delete %q?\n\nthis removes the draft from the server and this device.", fitText(firstLine(item.Content), 40))
	return renderPage("DELETE", body, "y: delete │ n: keep")
}

func (m mainLoopModel) viewReauth() string {
	var b strings.Builder
	b.WriteString("your drafts could not be decrypted with the current key.\n")
	b.WriteString("re-enter your password to continue. nothing was lost.\n\n")
	b.WriteString("Password [")
	b.WriteString(m.reauthInput.View())
	b.WriteString("]")

	if m.reauthBusy {
		b.WriteString("\n\n[checking...]")
	}
	if m.lastErr != nil {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Error: " + humanizeServerUnavailableError(m.lastErr)))
	}

	return renderPage("UNLOCK", b.String(), "enter: unlock │ l: log out")
}

func draftListLine(d models.Draft) string {
	var meta models.DraftMetadata
	if d.Metadata != "" {
		_ = json.Unmarshal([]byte(d.Metadata), &meta)
	}

	label := meta.Title
	if label == "" {
		label = firstLine(d.Content)
	}
	if label == "" {
		label = "(empty)"
	}

	line := fitText(label, 48)
	if meta.Recipient != "" {
		line += helpStyle.Render("  → " + meta.Recipient)
	}
	return line
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m mainLoopModel) cmdLoadDrafts() tea.Cmd {
	ctx := m.ctx
	drafts := m.services.DraftService

	return func() tea.Msg {
		items, err := drafts.ListDrafts(ctx)
		if err == nil {
			return draftsLoadedMsg{items: items}
		}
		if errors.Is(err, service.ErrReauthRequired) ||
			errors.Is(err, service.ErrEncryptionKeyUnavailable) {
			return draftsLoadedMsg{err: err}
		}

		// server unreachable: fall back to the offline cache
		cached, cacheErr := drafts.CachedDrafts(ctx)
		if cacheErr != nil {
			return draftsLoadedMsg{err: err}
		}
		return draftsLoadedMsg{items: cached, fromCache: true}
	}
}

func (m mainLoopModel) cmdSave() tea.Cmd {
	ctx := m.ctx
	drafts := m.services.DraftService

	metaJSON, _ := json.Marshal(models.DraftMetadata{
		Title:     strings.TrimSpace(m.meta[0].Value()),
		Recipient: strings.TrimSpace(m.meta[1].Value()),
		Intent:    strings.TrimSpace(m.meta[2].Value()),
	})
	draft := models.Draft{
		ID:       m.editingID,
		Content:  m.content.Value(),
		Metadata: string(metaJSON),
	}

	return func() tea.Msg {
		var err error
		if draft.ID == "" {
			_, err = drafts.CreateDraft(ctx, draft)
		} else {
			_, err = drafts.UpdateDraft(ctx, draft)
		}
		return draftSavedMsg{err: err}
	}
}

func (m mainLoopModel) cmdDelete(draftID string) tea.Cmd {
	ctx := m.ctx
	drafts := m.services.DraftService

	return func() tea.Msg {
		return draftDeletedMsg{err: drafts.DeleteDraft(ctx, draftID)}
	}
}

func (m mainLoopModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	drafts := m.services.DraftService

	return func() tea.Msg {
		return refreshDoneMsg{err: drafts.RefreshCache(ctx)}
	}
}

func (m mainLoopModel) cmdReauth(pass string) tea.Cmd {
	ctx := m.ctx
	session := m.services.SessionService

	return func() tea.Msg {
		return reauthResultMsg{err: session.Reauthenticate(ctx, pass)}
	}
}

func (m mainLoopModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	session := m.services.SessionService

	return func() tea.Msg {
		_ = session.LogOut(ctx)
		return tea.QuitMsg{}
	}
}

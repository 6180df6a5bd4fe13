package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"azimuth/internal/backend"
	"azimuth/internal/types"
	"azimuth/internal/workspace"
)

const (
	fsOpTimeout   = 4 * time.Second
	searchTimeout = 10 * time.Second
)

func scanRootCmd(svc *backend.Service, root string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		notebooks, err := svc.ScanRoot(ctx, root)
		return rootScanMsg{notebooks: notebooks, err: err}
	}
}

func fetchChildrenCmd(svc *backend.Service, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		children, err := svc.ListChildren(ctx, path)
		return childrenMsg{path: path, children: children, err: err}
	}
}

func fetchNotesCmd(svc *backend.Service, folder string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		notes, err := svc.ListNotes(ctx, folder)
		return notesMsg{folder: folder, notes: notes, err: err}
	}
}

func saveNoteCmd(svc *backend.Service, key workspace.TabKey, content string, manual bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		err := svc.SaveNote(ctx, key.Folder, key.NoteID, content)
		return noteSavedMsg{key: key, content: content, manual: manual, err: err}
	}
}

func autosaveTickCmd(delay time.Duration, saveCtx workspace.SaveContext) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return autosaveTickMsg{ctx: saveCtx}
	})
}

func createNotebookCmd(svc *backend.Service, parent, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		nb, err := svc.CreateNotebook(ctx, parent, name)
		return notebookCreatedMsg{parent: parent, notebook: nb, err: err}
	}
}

func moveNotebookCmd(svc *backend.Service, source, target string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		err := svc.MoveNotebook(ctx, source, target)
		return notebookMovedMsg{source: source, target: target, err: err}
	}
}

func renameNoteCmd(svc *backend.Service, key workspace.TabKey, newID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		err := svc.RenameNote(ctx, key.Folder, key.NoteID, newID)
		return noteRenamedMsg{key: key, newID: newID, err: err}
	}
}

func moveNoteCmd(svc *backend.Service, key workspace.TabKey, targetFolder string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		err := svc.MoveNote(ctx, key.Folder, targetFolder, key.NoteID)
		return noteMovedMsg{key: key, target: targetFolder, err: err}
	}
}

func restoreTabCmd(svc *backend.Service, ref types.TabRef, active bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		content, err := svc.ReadNote(ctx, ref.Folder, ref.NoteID)
		if err != nil {
			return tabRestoredMsg{ref: ref, err: err}
		}
		note := types.Note{
			ID:      ref.NoteID,
			Title:   workspace.DeriveTitle(content),
			Content: content,
			Folder:  ref.Folder,
		}
		return tabRestoredMsg{ref: ref, note: note, active: active}
	}
}

func deleteNoteCmd(svc *backend.Service, key workspace.TabKey) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		err := svc.DeleteNote(ctx, key.Folder, key.NoteID)
		return noteDeletedMsg{key: key, err: err}
	}
}

func searchCmd(svc *backend.Service, root, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		results, err := svc.Search(ctx, root, query)
		return searchResultsMsg{query: query, results: results, err: err}
	}
}

func revealCmd(svc *backend.Service, roots []*types.Notebook, root string, hit types.SearchResult) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		result, err := workspace.ResolveSearchHit(ctx, svc, roots, root, hit)
		return revealMsg{result: result, err: err}
	}
}

func loadSettingsCmd(svc *backend.Service, root string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		settings, err := svc.LoadSettings(ctx, root)
		return settingsMsg{settings: settings, err: err}
	}
}

func saveSettingsCmd(svc *backend.Service, root string, settings types.WorkspaceSettings) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		err := svc.SaveSettings(ctx, root, settings)
		return settingsSavedMsg{err: err}
	}
}

func toggleFavoriteCmd(svc *backend.Service, root, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fsOpTimeout)
		defer cancel()
		settings, err := svc.ToggleFavorite(ctx, root, path)
		return favoriteToggledMsg{path: path, settings: settings, err: err}
	}
}

func copyToClipboardCmd(text, success string) tea.Cmd {
	return func() tea.Msg {
		_, err := copyTextToClipboard(text)
		return clipboardResultMsg{success: success, err: err}
	}
}

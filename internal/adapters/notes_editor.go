package adapters

import (
	"errors"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/charmbracelet/huh"

	"bundle-release/internal/ports"
)

// NotesEditorAdapter opens an interactive multiline prompt seeded with the
// default notes. Aborting the prompt keeps the default text; the result is
// always passed back through the notes cleaner by the caller.
type NotesEditorAdapter struct{}

func NewNotesEditorAdapter() NotesEditorAdapter {
	return NotesEditorAdapter{}
}

func (a NotesEditorAdapter) Edit(defaultNotes string) (string, error) {
	notes := defaultNotes
	form := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Release notes").
			Description("Comment lines (#) and dash separators are stripped before publishing.").
			CharLimit(4000).
			Value(&notes),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return defaultNotes, nil
		}
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("notes editor failed").
			WithCause(err)
	}
	return notes, nil
}

var _ ports.EditorPort = NotesEditorAdapter{}

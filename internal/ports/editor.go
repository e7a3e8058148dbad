package ports

type EditorPort interface {
	// Edit lets an operator revise the default notes text. The returned
	// text is always passed back through the notes cleaner.
	Edit(defaultNotes string) (string, error)
}

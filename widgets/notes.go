package widgets

import "path/filepath"

// Note is a single note, optionally filed into a folder. FolderID is a soft
// reference: deleting a folder does not cascade.
type Note struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	FolderID *int   `json:"folderId"`
}

// NotePatch carries partial updates; nil fields are left untouched.
// SetFolderID distinguishes "don't touch" from "clear the folder".
type NotePatch struct {
	Title       *string
	Content     *string
	FolderID    *int
	SetFolderID bool
}

// Notes is the file-backed note list.
type Notes struct {
	path string
}

// NewNotes creates a note store under the given data directory.
func NewNotes(dir string) *Notes {
	return &Notes{path: filepath.Join(dir, "notes.json")}
}

// List returns all notes in insertion order.
func (n *Notes) List() ([]Note, error) {
	return readList[Note](n.path)
}

// Get returns one note by id, or ErrNotFound.
func (n *Notes) Get(id int) (Note, error) {
	notes, err := readList[Note](n.path)
	if err != nil {
		return Note{}, err
	}
	for _, note := range notes {
		if note.ID == id {
			return note, nil
		}
	}
	return Note{}, ErrNotFound
}

// Create appends a note with the next sequential id. An empty title is
// stored as "Untitled".
func (n *Notes) Create(title, content string, folderID *int) (Note, error) {
	notes, err := readList[Note](n.path)
	if err != nil {
		return Note{}, err
	}

	if title == "" {
		title = "Untitled"
	}
	id := 1
	if len(notes) > 0 {
		id = nextID(notes[len(notes)-1].ID, len(notes))
	}
	note := Note{ID: id, Title: title, Content: content, FolderID: folderID}
	notes = append(notes, note)
	if err := writeList(n.path, notes); err != nil {
		return Note{}, err
	}
	return note, nil
}

// Update applies the patch. Returns ErrNotFound for an unknown id.
func (n *Notes) Update(id int, patch NotePatch) (Note, error) {
	notes, err := readList[Note](n.path)
	if err != nil {
		return Note{}, err
	}

	for i := range notes {
		if notes[i].ID != id {
			continue
		}
		if patch.Title != nil {
			notes[i].Title = *patch.Title
		}
		if patch.Content != nil {
			notes[i].Content = *patch.Content
		}
		if patch.SetFolderID {
			notes[i].FolderID = patch.FolderID
		}
		if err := writeList(n.path, notes); err != nil {
			return Note{}, err
		}
		return notes[i], nil
	}
	return Note{}, ErrNotFound
}

// Delete removes a note. Returns ErrNotFound when nothing matched.
func (n *Notes) Delete(id int) error {
	notes, err := readList[Note](n.path)
	if err != nil {
		return err
	}

	kept := notes[:0]
	for _, note := range notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	if len(kept) == len(notes) {
		return ErrNotFound
	}
	return writeList(n.path, kept)
}

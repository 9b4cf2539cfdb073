package widgets

import "path/filepath"

// Folder groups notes by name.
type Folder struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Folders is the file-backed folder list.
type Folders struct {
	path string
}

// NewFolders creates a folder store under the given data directory.
func NewFolders(dir string) *Folders {
	return &Folders{path: filepath.Join(dir, "folders.json")}
}

// List returns all folders in insertion order.
func (f *Folders) List() ([]Folder, error) {
	return readList[Folder](f.path)
}

// Get returns one folder by id, or ErrNotFound.
func (f *Folders) Get(id int) (Folder, error) {
	folders, err := readList[Folder](f.path)
	if err != nil {
		return Folder{}, err
	}
	for _, folder := range folders {
		if folder.ID == id {
			return folder, nil
		}
	}
	return Folder{}, ErrNotFound
}

// Create appends a folder with the next sequential id.
func (f *Folders) Create(name string) (Folder, error) {
	folders, err := readList[Folder](f.path)
	if err != nil {
		return Folder{}, err
	}

	id := 1
	if len(folders) > 0 {
		id = nextID(folders[len(folders)-1].ID, len(folders))
	}
	folder := Folder{ID: id, Name: name}
	folders = append(folders, folder)
	if err := writeList(f.path, folders); err != nil {
		return Folder{}, err
	}
	return folder, nil
}

// Rename sets a folder's name. Returns ErrNotFound for an unknown id.
func (f *Folders) Rename(id int, name string) (Folder, error) {
	folders, err := readList[Folder](f.path)
	if err != nil {
		return Folder{}, err
	}

	for i := range folders {
		if folders[i].ID != id {
			continue
		}
		folders[i].Name = name
		if err := writeList(f.path, folders); err != nil {
			return Folder{}, err
		}
		return folders[i], nil
	}
	return Folder{}, ErrNotFound
}

// Delete removes a folder. Notes referencing it keep their folderId; the
// reference is soft. Returns ErrNotFound when nothing matched.
func (f *Folders) Delete(id int) error {
	folders, err := readList[Folder](f.path)
	if err != nil {
		return err
	}

	kept := folders[:0]
	for _, folder := range folders {
		if folder.ID != id {
			kept = append(kept, folder)
		}
	}
	if len(kept) == len(folders) {
		return ErrNotFound
	}
	return writeList(f.path, kept)
}

package fsutil

import (
	"os"
	"path/filepath"
)

type File struct {
	*os.File
}

func (f *File) Remove() error {
	return os.Remove(f.Name())
}

func (f *File) CloseAndRemove() error {
	if err := f.Close(); err != nil {
		return err
	}
	return f.Remove()
}

// CreateFile creates fp, creating parent directories as needed.
func CreateFile(fp string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(fp), os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.Create(fp)
	if err != nil {
		return nil, err
	}
	return &File{File: file}, nil
}

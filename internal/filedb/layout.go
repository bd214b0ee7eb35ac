package filedb

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultRoot is the first element of every stored file path.
const DefaultRoot = "filedb"

// Layout derives on-disk locations from tenant, project and folder ids:
//
//	{root}/{memberID}/{projectID}/{name}             top-level file
//	{root}/{memberID}/{projectID}/{folderID}/{name}  file inside a folder
//
// Stored paths use forward slashes regardless of host.
type Layout struct {
	Root string
}

// Dir returns the directory holding the files of one sibling scope.
func (l Layout) Dir(memberID, projectID int64, folderID *int64) string {
	root := l.Root
	if root == "" {
		root = DefaultRoot
	}
	dir := path.Join(root, strconv.FormatInt(memberID, 10), strconv.FormatInt(projectID, 10))
	if folderID != nil {
		dir = path.Join(dir, strconv.FormatInt(*folderID, 10))
	}
	return dir
}

// FilePath returns the location of a named file in a sibling scope.
func (l Layout) FilePath(memberID, projectID int64, folderID *int64, name string) string {
	return path.Join(l.Dir(memberID, projectID, folderID), name)
}

var validate = validator.New()

// ValidateName checks that name is usable as a single path element.
func ValidateName(name string) error {
	if err := validate.Var(name, `required,max=255,excludesall=/\`); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidName, name, err)
	}
	if name == "." || name == ".." || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w %q", ErrInvalidName, name)
	}
	return nil
}

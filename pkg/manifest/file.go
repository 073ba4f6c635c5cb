package manifest

import (
	"bytes"
	"os"

	pkgerrors "github.com/matzehuels/pkgsync/pkg/errors"
)

// Load reads and parses a package.json file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	return m, nil
}

// Write stores m at path when its serialized form differs from the current
// file. It reports whether the file was written.
func Write(path string, m *Manifest) (bool, error) {
	data, err := m.Marshal()
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidManifest, err, "encode %s", path)
	}
	return writeIfChanged(path, data)
}

// LoadObject reads a JSON file holding a single object.
func LoadObject(path string) (*Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	o, err := ParseObject(data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeParse, err, "parse %s", path)
	}
	return o, nil
}

// WriteObject stores o at path when its serialized form differs from the
// current file. It reports whether the file was written.
func WriteObject(path string, o *Object) (bool, error) {
	data, err := Format(o)
	if err != nil {
		return false, err
	}
	return writeIfChanged(path, data)
}

func writeIfChanged(path string, data []byte) (bool, error) {
	current, err := os.ReadFile(path)
	if err == nil && bytes.Equal(current, data) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

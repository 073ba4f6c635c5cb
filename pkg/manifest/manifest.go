package manifest

import (
	"encoding/json"
	"maps"
)

// Well-known package.json keys.
const (
	KeyName            = "name"
	KeyVersion         = "version"
	KeyDependencies    = "dependencies"
	KeyDevDependencies = "devDependencies"
	KeyPrivate         = "private"
	KeyFiles           = "files"
	KeyStyle           = "style"
	KeySideEffects     = "sideEffects"
	KeyScripts         = "scripts"
	KeyPublishConfig   = "publishConfig"
	KeyGitHead         = "gitHead"
)

// Manifest is a parsed package.json.
//
// Name and the two dependency maps are typed because reconciliation reads
// and mutates them constantly. A nil map means the key is absent from the
// file; an empty non-nil map is written as {}. Every other field is kept
// verbatim in file order.
type Manifest struct {
	Name            string
	Dependencies    map[string]string
	DevDependencies map[string]string

	fields *Object
}

// Parse decodes package.json contents.
func Parse(data []byte) (*Manifest, error) {
	fields, err := ParseObject(data)
	if err != nil {
		return nil, err
	}
	m := &Manifest{fields: fields}
	if _, err := fields.Get(KeyName, &m.Name); err != nil {
		return nil, err
	}
	if _, err := fields.Get(KeyDependencies, &m.Dependencies); err != nil {
		return nil, err
	}
	if _, err := fields.Get(KeyDevDependencies, &m.DevDependencies); err != nil {
		return nil, err
	}
	return m, nil
}

// New returns an empty manifest for the named package.
func New(name string) *Manifest {
	return &Manifest{Name: name, fields: &Object{}}
}

// Marshal encodes the manifest in the canonical on-disk format.
func (m *Manifest) Marshal() ([]byte, error) {
	out := m.object().Clone()
	if m.Name != "" || out.Has(KeyName) {
		if err := out.Set(KeyName, m.Name); err != nil {
			return nil, err
		}
	}
	for _, f := range []struct {
		key  string
		deps map[string]string
	}{
		{KeyDependencies, m.Dependencies},
		{KeyDevDependencies, m.DevDependencies},
	} {
		if f.deps == nil {
			out.Delete(f.key)
			continue
		}
		// encoding/json writes map keys sorted.
		if err := out.Set(f.key, f.deps); err != nil {
			return nil, err
		}
	}
	return Format(out)
}

// Clone returns a deep copy.
func (m *Manifest) Clone() *Manifest {
	return &Manifest{
		Name:            m.Name,
		Dependencies:    cloneMap(m.Dependencies),
		DevDependencies: cloneMap(m.DevDependencies),
		fields:          m.object().Clone(),
	}
}

func cloneMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	return maps.Clone(in)
}

func (m *Manifest) object() *Object {
	if m.fields == nil {
		m.fields = &Object{}
	}
	return m.fields
}

// Version returns the "version" field.
func (m *Manifest) Version() string {
	v, _ := m.object().String(KeyVersion)
	return v
}

// Has reports whether an untyped field is present.
func (m *Manifest) Has(key string) bool { return m.object().Has(key) }

// Get decodes an untyped field into v.
func (m *Manifest) Get(key string, v any) (bool, error) { return m.object().Get(key, v) }

// Set stores an untyped field. Typed fields must be set through the struct.
func (m *Manifest) Set(key string, v any) error { return m.object().Set(key, v) }

// Delete removes an untyped field.
func (m *Manifest) Delete(key string) { m.object().Delete(key) }

// Private reports whether "private" is true.
func (m *Manifest) Private() bool {
	var p bool
	_, _ = m.Get(KeyPrivate, &p)
	return p
}

// Files returns the "files" globs.
func (m *Manifest) Files() []string {
	var files []string
	_, _ = m.Get(KeyFiles, &files)
	return files
}

// Style returns the "style" entry point.
func (m *Manifest) Style() (string, bool) {
	return m.object().String(KeyStyle)
}

// SetStyle sets the "style" entry point.
func (m *Manifest) SetStyle(path string) error {
	return m.Set(KeyStyle, path)
}

// SideEffectsDeclared reports whether "sideEffects" holds a truthy value.
// An absent key, false, null, 0 and "" all count as undeclared.
func (m *Manifest) SideEffectsDeclared() bool {
	raw, ok := m.object().Raw(KeySideEffects)
	if !ok {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	default:
		return true
	}
}

// Script returns the named entry of "scripts".
func (m *Manifest) Script(name string) (string, bool) {
	scripts, ok := m.object().Object(KeyScripts)
	if !ok {
		return "", false
	}
	return scripts.String(name)
}

// SetScript sets the named entry of "scripts", creating the map if needed.
func (m *Manifest) SetScript(name, cmd string) error {
	return m.setNested(KeyScripts, name, cmd)
}

// SetPublishAccess sets "publishConfig.access", keeping other publishConfig keys.
func (m *Manifest) SetPublishAccess(access string) error {
	return m.setNested(KeyPublishConfig, "access", access)
}

// Namespaced returns a string field from the tool-specific object stored
// under namespace, such as "jupyterlab": {"schemaDir": "schema"}.
func (m *Manifest) Namespaced(namespace, key string) (string, bool) {
	if namespace == "" {
		return "", false
	}
	obj, ok := m.object().Object(namespace)
	if !ok {
		return "", false
	}
	return obj.String(key)
}

func (m *Manifest) setNested(parent, key string, v any) error {
	obj, ok := m.object().Object(parent)
	if !ok {
		obj = &Object{}
	}
	if err := obj.Set(key, v); err != nil {
		return err
	}
	return m.Set(parent, obj)
}

package storage

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/go-viper/mapstructure/v2"
	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/perrydb/perrydb/internal/fsys"
)

// VersionField is the metadata key holding the filesystem layout version.
const VersionField = "fs_version"

var errNotObject = errors.New("metadata is not a JSON object")

// Metadata is the content of perryconf.json.
type Metadata struct {
	// FSVersion is the filesystem layout version the root was created with.
	FSVersion float64 `json:"fs_version" mapstructure:"fs_version" jsonschema:"description=Filesystem layout version. Compatible versions share the baseline's major epoch and are not older than it."`
	// Extra holds keys this build does not know about. They are kept but
	// never interpreted.
	Extra map[string]any `json:"-" mapstructure:",remain"`
}

// LoadMetadata reads and decodes the metadata file at path. Failures are
// returned as *ValidationError with kind MetadataUnreadable,
// VersionFieldMissing or VersionFieldNotNumeric.
func LoadMetadata(fs fsys.FS, path string) (Metadata, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return Metadata{}, &ValidationError{Kind: MetadataUnreadable, Path: path, Err: err}
	}
	raw, err := parseMetadata(data)
	if err != nil {
		return Metadata{}, &ValidationError{Kind: MetadataUnreadable, Path: path, Err: err}
	}

	v, ok := raw[VersionField]
	if !ok {
		return Metadata{}, &ValidationError{Kind: VersionFieldMissing, Path: path, Field: VersionField}
	}
	if _, ok := v.(float64); !ok {
		return Metadata{}, &ValidationError{Kind: VersionFieldNotNumeric, Path: path, Field: VersionField, Value: v}
	}

	md, err := decodeMetadata(raw)
	if err != nil {
		return Metadata{}, &ValidationError{Kind: MetadataUnreadable, Path: path, Err: err}
	}
	return md, nil
}

// parseMetadata decodes data into its top-level key/value map.
func parseMetadata(data []byte) (map[string]any, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, errNotObject
	}
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), koanfjson.Parser()); err != nil {
		return nil, err
	}
	return k.Raw(), nil
}

func decodeMetadata(raw map[string]any) (Metadata, error) {
	var md Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &md,
		ErrorUnused: false,
	})
	if err != nil {
		return Metadata{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Metadata{}, err
	}
	return md, nil
}

// Encode renders m as indented JSON. Extra keys are written alongside
// fs_version.
func (m Metadata) Encode() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+1)
	for k, v := range m.Extra {
		out[k] = v
	}
	out[VersionField] = m.FSVersion
	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

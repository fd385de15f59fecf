// Package merge updates configuration files in place without discarding
// what the user added: YAML documents holding a list of keyed records are
// merged record by record, and text files get a delimited block replaced.
package merge

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/logging"
)

// KeyedOptions names the record list and the identity field of each record.
type KeyedOptions struct {
	// ListField is the top-level key holding the records. Default "repos".
	ListField string
	// IdentityField identifies a record. Default "repo".
	IdentityField string
	Logger        *zerolog.Logger
}

func (o KeyedOptions) withDefaults() KeyedOptions {
	if o.ListField == "" {
		o.ListField = "repos"
	}
	if o.IdentityField == "" {
		o.IdentityField = "repo"
	}
	if o.Logger == nil {
		l := logging.Component("merge")
		o.Logger = &l
	}
	return o
}

// MergeKeyed merges incoming into existing. Records with the same identity
// are replaced by the incoming one in their existing position, new records
// are appended in incoming order, and every other top-level field of
// existing is kept. An empty or malformed existing document counts as empty.
func MergeKeyed(existing, incoming []byte, opt KeyedOptions) ([]byte, error) {
	opt = opt.withDefaults()

	ref, err := parseMapping(incoming)
	if err != nil {
		return nil, errors.WrapParse("yaml", "reference", err)
	}
	if ref == nil {
		return nil, errors.NewParseError("yaml", "reference", "document is not a mapping", nil)
	}

	current, err := parseMapping(existing)
	if err != nil || current == nil {
		if len(existing) > 0 {
			opt.Logger.Warn().Err(err).Msg("existing document is not a mapping, starting from empty")
		}
		current = yaml.MapSlice{}
	}

	merged := mergeRecords(list(current, opt.ListField), list(ref, opt.ListField), opt.IdentityField)

	replaced := false
	for i := range current {
		if fmt.Sprint(current[i].Key) == opt.ListField {
			current[i].Value = merged
			replaced = true
			break
		}
	}
	if !replaced {
		current = append(current, yaml.MapItem{Key: opt.ListField, Value: merged})
	}

	out, err := yaml.MarshalWithOptions(current,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return nil, errors.WrapParse("yaml", "merged document", err)
	}
	return out, nil
}

// MergeKeyedFile merges incoming into the file at path, or writes incoming
// as is when the file does not exist. It reports whether the file was
// created.
func MergeKeyedFile(fs afero.Fs, path string, incoming []byte, opt KeyedOptions) (bool, error) {
	existing, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		if err := afero.WriteFile(fs, path, incoming, constants.FilePermissions); err != nil {
			return false, errors.WrapIO("write", path, err)
		}
		return true, nil
	}
	if err != nil {
		return false, errors.WrapIO("read", path, err)
	}

	out, err := MergeKeyed(existing, incoming, opt)
	if err != nil {
		return false, err
	}
	if err := afero.WriteFile(fs, path, out, constants.FilePermissions); err != nil {
		return false, errors.WrapIO("write", path, err)
	}
	return false, nil
}

// parseMapping returns nil without error when data is not a mapping.
func parseMapping(data []byte) (yaml.MapSlice, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	m, _ := doc.(yaml.MapSlice)
	return m, nil
}

func list(doc yaml.MapSlice, field string) []any {
	for _, item := range doc {
		if fmt.Sprint(item.Key) == field {
			records, _ := item.Value.([]any)
			return records
		}
	}
	return nil
}

// identity is a record's key: the scalar's YAML type and its text, so
// repo: 1 and repo: "1" are different records.
type identity struct {
	kind string
	text string
}

type slot struct {
	id     identity
	record any
}

func mergeRecords(existing, incoming []any, field string) []any {
	var slots []slot
	index := map[identity]int{}

	add := func(rec any) {
		id, ok := identityOf(rec, field)
		if !ok {
			slots = append(slots, slot{record: rec})
			return
		}
		if i, seen := index[id]; seen {
			slots[i].record = rec
			return
		}
		index[id] = len(slots)
		slots = append(slots, slot{id: id, record: rec})
	}
	for _, rec := range existing {
		add(rec)
	}
	for _, rec := range incoming {
		add(rec)
	}

	out := make([]any, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.record)
	}
	return out
}

// identityOf reads field from a record. Records that are not mappings, or
// whose field is missing, null or not a scalar, have no identity.
func identityOf(rec any, field string) (identity, bool) {
	m, ok := rec.(yaml.MapSlice)
	if !ok {
		return identity{}, false
	}
	for _, item := range m {
		if fmt.Sprint(item.Key) != field {
			continue
		}
		switch v := item.Value.(type) {
		case nil, yaml.MapSlice, []any:
			return identity{}, false
		default:
			return identity{kind: fmt.Sprintf("%T", v), text: fmt.Sprint(v)}, true
		}
	}
	return identity{}, false
}

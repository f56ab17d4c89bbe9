package versionedstore

import (
	"bytes"
	"encoding/json"
)

// MigrateFn transforms a record from the previous schema version to the next
// one. The data is given in its generic JSON form (objects are
// map[string]interface{}, numbers are json.Number). Returning nil, typed or
// not, discards the record; returning an error aborts the whole migration.
type MigrateFn func(data interface{}) (interface{}, error)

// Migration is a single step of the migration chain of a record.
type Migration struct {
	Description string
	Migrate     MigrateFn
}

// record is the on-disk format of a versioned value.
type record struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

func decodeRecord(buf []byte) (*record, error) {
	var r record
	if err := json.Unmarshal(buf, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func encodeRecord(version int, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(record{Version: version, Data: raw})
}

// isDiscarded reports whether a migration result encodes to JSON null.
func isDiscarded(data interface{}) bool {
	if data == nil {
		return true
	}
	raw, err := json.Marshal(data)
	return err == nil && bytes.Equal(raw, []byte("null"))
}

func decodeGeneric(raw json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

// getMigrations returns the migrations that still need to be applied to a
// record at the given version.
func getMigrations(migrations []Migration, curVersion int) []Migration {
	return migrations[curVersion-1:]
}

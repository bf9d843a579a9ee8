package dialogue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// indent matches the layout of the corpus files.
const indent = "    "

// wire types use pointers so absent and null fields can be told apart from
// empty strings.
type wireMessage struct {
	Speaker *string `json:"speaker"`
	Lines   *string `json:"lines"`
}

type wireSample struct {
	DialogueID json.RawMessage `json:"dialogue_id"`
	Dialogue   *[]wireMessage  `json:"dialogue"`
}

type wireRecord struct {
	DataSample *wireSample `json:"data_sample"`
}

// LoadFile reads a dataset file into memory.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Decode parses a JSON array of records. It fails on the first record that is
// missing a required field and on any repeated dialogue_id.
func Decode(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)

	var elems []json.RawMessage
	if err := dec.Decode(&elems); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if elems == nil {
		return nil, errors.New("parse dataset: top level is not a JSON array")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("parse dataset: trailing data after array")
	}

	records := make([]Record, 0, len(elems))
	seen := make(map[string]int, len(elems))
	for i, raw := range elems {
		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if first, dup := seen[rec.ID()]; dup {
			return nil, fmt.Errorf("record %d: %w %q (first at record %d)", i, ErrDuplicateID, rec.ID(), first)
		}
		seen[rec.ID()] = i
		records = append(records, rec)
	}
	return records, nil
}

func decodeRecord(raw json.RawMessage) (Record, error) {
	var w wireRecord
	if err := json.Unmarshal(raw, &w); err != nil {
		return Record{}, fmt.Errorf("parse: %w", err)
	}
	if w.DataSample == nil {
		return Record{}, fmt.Errorf("%w: data_sample", ErrMissingField)
	}

	id, err := parseID(w.DataSample.DialogueID)
	if err != nil {
		return Record{}, err
	}
	if w.DataSample.Dialogue == nil {
		return Record{}, fmt.Errorf("%w: data_sample.dialogue (dialogue_id %q)", ErrMissingField, id)
	}

	msgs := make([]Message, len(*w.DataSample.Dialogue))
	for j, m := range *w.DataSample.Dialogue {
		if m.Speaker == nil {
			return Record{}, fmt.Errorf("%w: dialogue[%d].speaker (dialogue_id %q)", ErrMissingField, j, id)
		}
		if m.Lines == nil {
			return Record{}, fmt.Errorf("%w: dialogue[%d].lines (dialogue_id %q)", ErrMissingField, j, id)
		}
		msgs[j] = Message{Speaker: *m.Speaker, Lines: *m.Lines}
	}

	return Record{
		DataSample: Sample{DialogueID: id, Dialogue: msgs},
		raw:        raw,
	}, nil
}

// parseID accepts a JSON string or number. Numbers keep their literal text, so
// 7 and "7" name the same dialogue.
func parseID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("%w: data_sample.dialogue_id", ErrMissingField)
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("parse dialogue_id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("parse dialogue_id: must be a string or number, got %s", raw)
	}
	return n.String(), nil
}

// Encode writes records as an indented JSON array. Non-ASCII text and HTML
// characters are written literally, including text that arrived as \uXXXX
// escapes, and no trailing newline is added.
func Encode(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}

	out := literalUnicode(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	_, err := w.Write(out)
	return err
}

// WriteFile atomically replaces path with the encoded records. A failed write
// leaves any existing file untouched and no temporary file behind.
func WriteFile(path string, records []Record) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	name := tmp.Name()
	defer func() {
		if err != nil {
			if tmp != nil {
				tmp.Close()
			}
			os.Remove(name)
		}
	}()

	if err := Encode(tmp, records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	closeErr := tmp.Close()
	tmp = nil
	if closeErr != nil {
		return fmt.Errorf("close: %w", closeErr)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

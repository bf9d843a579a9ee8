package dialogue

import (
	"encoding/json"
	"errors"
)

// Speaker labels used by the telehealth corpus.
const (
	SpeakerDoctor  = "医生"
	SpeakerPatient = "病人"
	SpeakerEnd     = "end" // end-of-dialogue marker, carries no text worth scanning
)

var (
	// ErrMissingField is returned when a record lacks a field the filter needs.
	ErrMissingField = errors.New("missing required field")
	// ErrDuplicateID is returned when two records share a dialogue_id.
	ErrDuplicateID = errors.New("duplicate dialogue_id")
)

// Message is a single turn in a dialogue.
type Message struct {
	Speaker string `json:"speaker"`
	Lines   string `json:"lines"`
}

// Sample is the data_sample payload of a record. Only the fields the filter
// reads are decoded; everything else rides along in the record's raw bytes.
type Sample struct {
	DialogueID string    `json:"dialogue_id"`
	Dialogue   []Message `json:"dialogue"`
}

// Record is one element of a dataset file.
type Record struct {
	DataSample Sample `json:"data_sample"`

	raw json.RawMessage // original element bytes, not re-derived
}

// ID returns the record's dialogue_id.
func (r Record) ID() string {
	return r.DataSample.DialogueID
}

// Messages returns the record's dialogue turns.
func (r Record) Messages() []Message {
	return r.DataSample.Dialogue
}

// MarshalJSON writes the record exactly as it was read. Records built in code
// (no raw bytes) are encoded from their decoded fields.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type plain struct {
		DataSample Sample `json:"data_sample"`
	}
	p := plain{DataSample: r.DataSample}
	if p.DataSample.Dialogue == nil {
		p.DataSample.Dialogue = []Message{}
	}
	return json.Marshal(p)
}

// NewRecord builds a record from its id and turns.
func NewRecord(id string, msgs ...Message) Record {
	return Record{DataSample: Sample{DialogueID: id, Dialogue: msgs}}
}

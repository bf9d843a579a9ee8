package screen

import (
	"strings"

	"github.com/MikeSquared-Agency/sieve/internal/dialogue"
)

// Verdict explains a classification.
type Verdict struct {
	Suspect bool
	// DoctorKeyword is the first doctor keyword found, empty if none.
	DoctorKeyword string
	// PatientKeyword is the first patient keyword found, empty if none.
	PatientKeyword string
}

// Result is the partition of a collection.
type Result struct {
	Kept       []dialogue.Record
	SuspectIDs []string
}

// Classifier applies a fixed set of rules. The zero value matches nothing;
// use New.
type Classifier struct {
	rules Rules
}

// New creates a classifier. The rules are copied.
func New(rules Rules) *Classifier {
	return &Classifier{rules: rules.clone()}
}

// Default creates a classifier with DefaultRules.
func Default() *Classifier {
	return &Classifier{rules: DefaultRules()}
}

// Rules returns a copy of the classifier's rules.
func (c *Classifier) Rules() Rules {
	return c.rules.clone()
}

// Classify reports whether a doctor turn references media while no patient
// turn does. Turn order does not matter.
func (c *Classifier) Classify(msgs []dialogue.Message) bool {
	return c.Explain(msgs).Suspect
}

// Explain classifies msgs and records which keywords decided it.
func (c *Classifier) Explain(msgs []dialogue.Message) Verdict {
	var v Verdict
	for _, m := range msgs {
		switch m.Speaker {
		case c.rules.DoctorSpeaker:
			if v.DoctorKeyword == "" {
				v.DoctorKeyword = firstMatch(m.Lines, c.rules.DoctorKeywords)
			}
		case c.rules.PatientSpeaker:
			if v.PatientKeyword == "" {
				v.PatientKeyword = firstMatch(m.Lines, c.rules.PatientKeywords)
			}
		}
	}
	v.Suspect = v.DoctorKeyword != "" && v.PatientKeyword == ""
	return v
}

// Filter partitions records into the ones to keep and the ids of the suspect
// ones. Both keep input order.
func (c *Classifier) Filter(records []dialogue.Record) Result {
	suspect := make(map[string]bool)
	var res Result
	for _, rec := range records {
		if c.Classify(rec.Messages()) {
			if !suspect[rec.ID()] {
				res.SuspectIDs = append(res.SuspectIDs, rec.ID())
			}
			suspect[rec.ID()] = true
		}
	}

	res.Kept = make([]dialogue.Record, 0, len(records)-len(res.SuspectIDs))
	for _, rec := range records {
		if !suspect[rec.ID()] {
			res.Kept = append(res.Kept, rec)
		}
	}
	return res
}

func firstMatch(text string, keywords []string) string {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return kw
		}
	}
	return ""
}

// Package screen flags dialogues whose transcript lost media attachments:
// the doctor talks about a photo, voice note or video that the patient never
// mentions sending.
package screen

import "github.com/MikeSquared-Agency/sieve/internal/dialogue"

// Rules is the keyword evidence the classifier looks for on each side.
type Rules struct {
	DoctorSpeaker   string
	PatientSpeaker  string
	DoctorKeywords  []string
	PatientKeywords []string
}

// DefaultRules returns the corpus rules. The slices are fresh on every call.
//
// The doctor list is wider than the patient list: "看图", "看到了" and "听起来"
// only count on the doctor side.
func DefaultRules() Rules {
	return Rules{
		DoctorSpeaker:  dialogue.SpeakerDoctor,
		PatientSpeaker: dialogue.SpeakerPatient,
		DoctorKeywords: []string{
			"图片",  // picture
			"照片",  // photo
			"看图",  // see the image
			"看到了", // saw it
			"语音",  // voice message
			"听起来", // sounds like
			"录音",  // recording
			"视频",  // video
		},
		PatientKeywords: []string{
			"图片",
			"照片",
			"语音",
			"录音",
			"视频",
		},
	}
}

func (r Rules) clone() Rules {
	out := r
	out.DoctorKeywords = append([]string(nil), r.DoctorKeywords...)
	out.PatientKeywords = append([]string(nil), r.PatientKeywords...)
	return out
}

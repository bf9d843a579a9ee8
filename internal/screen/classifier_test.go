package screen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/MikeSquared-Agency/sieve/internal/dialogue"
)

func doctor(lines string) dialogue.Message {
	return dialogue.Message{Speaker: dialogue.SpeakerDoctor, Lines: lines}
}

func patient(lines string) dialogue.Message {
	return dialogue.Message{Speaker: dialogue.SpeakerPatient, Lines: lines}
}

// englishRules mirrors the corpus rules with English labels.
func englishRules() Rules {
	return Rules{
		DoctorSpeaker:   "doctor",
		PatientSpeaker:  "patient",
		DoctorKeywords:  []string{"photo", "picture", "see the image", "audio", "sounds like", "recording", "video"},
		PatientKeywords: []string{"photo", "picture", "audio", "recording", "video"},
	}
}

func TestClassify_DefaultRules(t *testing.T) {
	tests := []struct {
		name string
		msgs []dialogue.Message
		want bool
	}{
		{
			name: "no messages",
			msgs: nil,
			want: false,
		},
		{
			name: "no doctor messages",
			msgs: []dialogue.Message{patient("我发了图片")},
			want: false,
		},
		{
			name: "doctor references photo, patient silent",
			msgs: []dialogue.Message{patient("手上起了红疹"), doctor("照片看到了，是湿疹")},
			want: true,
		},
		{
			name: "both sides reference media",
			msgs: []dialogue.Message{patient("这是照片"), doctor("照片看到了")},
			want: false,
		},
		{
			name: "patient mentions media but doctor does not",
			msgs: []dialogue.Message{patient("这是视频"), doctor("多喝水")},
			want: false,
		},
		{
			name: "doctor-only keyword 听起来",
			msgs: []dialogue.Message{patient("咳嗽三天"), doctor("听起来像支气管炎")},
			want: true,
		},
		{
			name: "patient saying 看到了 is not evidence",
			msgs: []dialogue.Message{patient("我看到了"), doctor("看到了")},
			want: true,
		},
		{
			name: "order does not matter",
			msgs: []dialogue.Message{doctor("收到语音"), patient("好的")},
			want: true,
		},
		{
			name: "end marker ignored",
			msgs: []dialogue.Message{doctor("多休息"), {Speaker: dialogue.SpeakerEnd, Lines: "视频"}},
			want: false,
		},
		{
			name: "other speakers ignored",
			msgs: []dialogue.Message{doctor("录音听了"), {Speaker: "护士", Lines: "录音已发送"}},
			want: true,
		},
	}

	c := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.msgs); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_InjectedRules(t *testing.T) {
	c := New(englishRules())

	suspect := []dialogue.Message{{Speaker: "doctor", Lines: "I see a photo you sent"}}
	if !c.Classify(suspect) {
		t.Error("doctor photo reference without patient media should be suspect")
	}

	clean := []dialogue.Message{
		{Speaker: "doctor", Lines: "normal question"},
		{Speaker: "patient", Lines: "here is a picture"},
	}
	if c.Classify(clean) {
		t.Error("patient-only media reference should not be suspect")
	}

	both := []dialogue.Message{
		{Speaker: "doctor", Lines: "that recording sounds like wheezing"},
		{Speaker: "patient", Lines: "I attached a recording"},
	}
	if c.Classify(both) {
		t.Error("media on both sides should not be suspect")
	}

	// "sounds like" is doctor-only evidence.
	asym := []dialogue.Message{
		{Speaker: "doctor", Lines: "it sounds like a cold"},
		{Speaker: "patient", Lines: "it sounds like a cold"},
	}
	if !c.Classify(asym) {
		t.Error("patient 'sounds like' should not count as patient media evidence")
	}
}

func TestExplain(t *testing.T) {
	c := Default()

	v := c.Explain([]dialogue.Message{doctor("视频里看图不清楚"), patient("好")})
	want := Verdict{Suspect: true, DoctorKeyword: "看图"}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("Explain mismatch (-want +got):\n%s", diff)
	}

	v = c.Explain([]dialogue.Message{doctor("照片收到"), patient("发了录音")})
	want = Verdict{Suspect: false, DoctorKeyword: "照片", PatientKeyword: "录音"}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("Explain mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultRules_FreshCopies(t *testing.T) {
	r := DefaultRules()
	r.DoctorKeywords[0] = "changed"
	r.PatientKeywords = nil

	again := DefaultRules()
	if again.DoctorKeywords[0] != "图片" {
		t.Errorf("DefaultRules leaked a mutation: %q", again.DoctorKeywords[0])
	}
	if len(again.PatientKeywords) != 5 {
		t.Errorf("expected 5 patient keywords, got %d", len(again.PatientKeywords))
	}
	if len(again.DoctorKeywords) != 8 {
		t.Errorf("expected 8 doctor keywords, got %d", len(again.DoctorKeywords))
	}
}

func TestNew_CopiesRules(t *testing.T) {
	rules := englishRules()
	c := New(rules)
	rules.DoctorKeywords[0] = "zzz"

	if !c.Classify([]dialogue.Message{{Speaker: "doctor", Lines: "a photo"}}) {
		t.Error("classifier should not see mutations of the rules it was built from")
	}
	if got := c.Rules().DoctorKeywords[0]; got != "photo" {
		t.Errorf("Rules() = %q, want photo", got)
	}
}

func TestFilter_Partition(t *testing.T) {
	records := []dialogue.Record{
		dialogue.NewRecord("1", doctor("照片看到了")),
		dialogue.NewRecord("2", doctor("多喝水"), patient("这是图片")),
		dialogue.NewRecord("3"),
		dialogue.NewRecord("4", patient("咳嗽"), doctor("录音里听起来有痰")),
		dialogue.NewRecord("5", patient("发了视频"), doctor("视频看了")),
	}

	res := Default().Filter(records)

	if diff := cmp.Diff([]string{"1", "4"}, res.SuspectIDs); diff != "" {
		t.Errorf("suspect ids mismatch (-want +got):\n%s", diff)
	}

	var kept []string
	for _, r := range res.Kept {
		kept = append(kept, r.ID())
	}
	if diff := cmp.Diff([]string{"2", "3", "5"}, kept); diff != "" {
		t.Errorf("kept ids mismatch (-want +got):\n%s", diff)
	}

	if len(res.Kept)+len(res.SuspectIDs) != len(records) {
		t.Errorf("partition broken: %d kept + %d suspect != %d input",
			len(res.Kept), len(res.SuspectIDs), len(records))
	}
}

func TestFilter_SpecExamples(t *testing.T) {
	c := New(englishRules())

	res := c.Filter([]dialogue.Record{
		dialogue.NewRecord("1", dialogue.Message{Speaker: "doctor", Lines: "I see a photo you sent"}),
	})
	if len(res.Kept) != 0 {
		t.Errorf("expected 0 kept, got %d", len(res.Kept))
	}
	if diff := cmp.Diff([]string{"1"}, res.SuspectIDs); diff != "" {
		t.Errorf("suspect ids mismatch (-want +got):\n%s", diff)
	}

	res = c.Filter([]dialogue.Record{
		dialogue.NewRecord("2",
			dialogue.Message{Speaker: "doctor", Lines: "normal question"},
			dialogue.Message{Speaker: "patient", Lines: "here is a picture"},
		),
	})
	if len(res.Kept) != 1 {
		t.Errorf("expected 1 kept, got %d", len(res.Kept))
	}
	if len(res.SuspectIDs) != 0 {
		t.Errorf("expected no suspects, got %v", res.SuspectIDs)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	c := Default()
	records := []dialogue.Record{
		dialogue.NewRecord("a", doctor("图片收到")),
		dialogue.NewRecord("b", doctor("多休息")),
		dialogue.NewRecord("c", patient("语音"), doctor("语音听了")),
	}

	first := c.Filter(records)
	second := c.Filter(first.Kept)

	if len(second.SuspectIDs) != 0 {
		t.Errorf("second pass flagged %v", second.SuspectIDs)
	}
	if diff := cmp.Diff(first.Kept, second.Kept, cmpopts.IgnoreUnexported(dialogue.Record{})); diff != "" {
		t.Errorf("second pass changed the collection (-first +second):\n%s", diff)
	}
}

func TestFilter_Empty(t *testing.T) {
	res := Default().Filter(nil)
	if len(res.Kept) != 0 || len(res.SuspectIDs) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

package detection

import (
	"bytes"
	"reflect"
	"testing"
)

func TestExtractFeatures(t *testing.T) {
	tagAt := func(offset, size int) []byte {
		buf := make([]byte, size)
		copy(buf[offset:], EncoderTag)
		return buf
	}

	cases := []struct {
		name  string
		audio []byte
		want  Features
	}{
		{name: "empty", audio: nil, want: Features{}},
		{name: "tag at start", audio: tagAt(0, 10), want: Features{EncoderTag: true, Size: 10}},
		{name: "tag ends at window edge", audio: tagAt(96, 200), want: Features{EncoderTag: true, Size: 200}},
		{name: "tag crosses window edge", audio: tagAt(97, 200), want: Features{Size: 200}},
		{name: "id3 header", audio: append([]byte("ID3"), bytes.Repeat([]byte{0}, 7)...), want: Features{ID3Header: true, Size: 10}},
		{name: "id3 not at start", audio: []byte("xID3"), want: Features{Size: 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractFeatures(tc.audio); got != tc.want {
				t.Fatalf("ExtractFeatures() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestAdjustRules(t *testing.T) {
	cases := []struct {
		name   string
		base   float64
		f      Features
		wantAI float64
	}{
		{name: "no rule", base: 0.5, f: Features{Size: 50000}, wantAI: 0.5},
		{name: "encoder tag", base: 0.5, f: Features{EncoderTag: true, Size: 50000}, wantAI: 0.75},
		{name: "small file", base: 0.3, f: Features{Size: 1000}, wantAI: 0.45},
		{name: "tag and small capped", base: 0.9, f: Features{EncoderTag: true, Size: 3000}, wantAI: MaxAIProbability},
		{name: "large untagged", base: 0.5, f: Features{Size: 200000}, wantAI: 0.4},
		{name: "large untagged floored", base: 0.05, f: Features{Size: 200000}, wantAI: MinAIProbability},
		{name: "large tagged skips penalty", base: 0.5, f: Features{EncoderTag: true, Size: 200000}, wantAI: 0.75},
		{name: "threshold sizes inclusive", base: 0.5, f: Features{Size: SmallFileThreshold}, wantAI: 0.5},
		{name: "large threshold inclusive", base: 0.5, f: Features{Size: LargeFileThreshold}, wantAI: 0.5},
		{name: "base clamped", base: 1.5, f: Features{Size: 50000}, wantAI: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Adjust(tc.base, tc.f)
			if !almostEqual(got.AI, tc.wantAI) {
				t.Fatalf("AI = %v, want %v", got.AI, tc.wantAI)
			}
			if !almostEqual(got.AI+got.Human, 1) {
				t.Fatalf("AI + Human = %v, want 1", got.AI+got.Human)
			}
		})
	}
}

func TestAdjustEncoderTagNeverLowersAI(t *testing.T) {
	for _, size := range []int{100, 50000, 250000} {
		for i := 0; i <= 98; i++ {
			base := float64(i) / 100
			plain := Adjust(base, Features{Size: size})
			tagged := Adjust(base, Features{EncoderTag: true, Size: size})
			if tagged.AI < plain.AI {
				t.Fatalf("size=%d base=%v: tagged %v < plain %v", size, base, tagged.AI, plain.AI)
			}
		}
	}
}

func TestAdjustSmallFileNeverLowersAI(t *testing.T) {
	for i := 0; i <= 98; i++ {
		base := float64(i) / 100
		small := Adjust(base, Features{Size: 1000})
		medium := Adjust(base, Features{Size: 50000})
		if small.AI < medium.AI {
			t.Fatalf("base=%v: small %v < medium %v", base, small.AI, medium.AI)
		}
	}
}

func TestAppliedRules(t *testing.T) {
	got := AppliedRules(Features{EncoderTag: true, Size: 10})
	want := []string{"encoder_tag", "small_file"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AppliedRules() = %v, want %v", got, want)
	}
	if got := AppliedRules(Features{Size: 50000}); len(got) != 0 {
		t.Fatalf("AppliedRules() = %v, want none", got)
	}
	if got := AppliedRules(Features{Size: 200001}); !reflect.DeepEqual(got, []string{"large_untagged_file"}) {
		t.Fatalf("AppliedRules() = %v", got)
	}
}

package detection

import (
	"bytes"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBaseScoreKnownDigests(t *testing.T) {
	cases := []struct {
		name   string
		input  []byte
		prefix string
		want   float64
	}{
		{name: "empty", input: nil, prefix: "e3b0c442", want: 0.61},
		{name: "abc", input: []byte("abc"), prefix: "ba7816bf", want: 0.319},
		{name: "hello world", input: []byte("hello world"), prefix: "b94d27b9", want: 0.401},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BaseScore(tc.input)
			if got.Digest[:8] != tc.prefix {
				t.Fatalf("digest prefix = %s, want %s", got.Digest[:8], tc.prefix)
			}
			if !almostEqual(got.Base, tc.want) {
				t.Fatalf("base = %v, want %v", got.Base, tc.want)
			}
		})
	}
}

func TestBaseScoreDeterministicAndBounded(t *testing.T) {
	for i := 0; i < 256; i++ {
		audio := bytes.Repeat([]byte{byte(i)}, i*37+1)
		first := BaseScore(audio)
		second := BaseScore(bytes.Clone(audio))
		if first != second {
			t.Fatalf("score not deterministic for input %d: %+v vs %+v", i, first, second)
		}
		if first.Base < 0 || first.Base > 0.999 {
			t.Fatalf("base %v out of range for input %d", first.Base, i)
		}
		if len(first.Digest) != 64 {
			t.Fatalf("digest length = %d", len(first.Digest))
		}
	}
}

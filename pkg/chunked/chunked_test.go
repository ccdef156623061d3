package chunked

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncode_Simple(t *testing.T) {
	got := string(Encode([]byte("foobar"), 3))
	expected := "3\r\nfoo\r\n3\r\nbar\r\n0\r\n\r\n"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestEncode_UnevenLastChunk(t *testing.T) {
	got := string(Encode([]byte("hello world"), 4))
	expected := "4\r\nhell\r\n4\r\no wo\r\n3\r\nrld\r\n0\r\n\r\n"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestEncode_Empty(t *testing.T) {
	if got := string(Encode(nil, 10)); got != "0\r\n\r\n" {
		t.Errorf("Expected bare last-chunk, got %q", got)
	}
}

func TestEncode_DefaultSize(t *testing.T) {
	data := bytes.Repeat([]byte("a"), DefaultChunkSize+1)
	got := string(Encode(data, 0))
	if !strings.HasPrefix(got, "2000\r\n") {
		t.Errorf("Expected first chunk of 0x2000 bytes, got prefix %q", got[:8])
	}
	if !strings.Contains(got, "\r\n1\r\na\r\n0\r\n\r\n") {
		t.Errorf("Expected trailing 1-byte chunk")
	}
}

func TestDecode_Simple(t *testing.T) {
	body := Decode([]byte("3\r\nfoo\r\n3\r\nbar\r\n0\r\n\r\n"))
	if string(body) != "foobar" {
		t.Errorf("Expected body %q, got %q", "foobar", string(body))
	}
}

func TestDecode_UnixLineEndings(t *testing.T) {
	body := Decode([]byte("3\nfoo\n3\nbar\n0\n\n"))
	if string(body) != "foobar" {
		t.Errorf("Expected body %q, got %q", "foobar", string(body))
	}
}

func TestDecode_ChunkExtensions(t *testing.T) {
	body := Decode([]byte("3;ext=val\r\nfoo\r\n3;another\r\nbar\r\n0\r\n\r\n"))
	if string(body) != "foobar" {
		t.Errorf("Expected body %q, got %q", "foobar", string(body))
	}
}

func TestDecode_Truncated(t *testing.T) {
	body := Decode([]byte("3\r\nfoo\r\n10\r\nbar"))
	if string(body) != "foobar" {
		t.Errorf("Expected best-effort %q, got %q", "foobar", string(body))
	}
}

func TestDecode_InvalidSize(t *testing.T) {
	body := Decode([]byte("3\r\nfoo\r\nzz\r\nbar\r\n"))
	if string(body) != "foo" {
		t.Errorf("Expected decode to stop at bad size, got %q", string(body))
	}
}

func TestDecode_OversizedChunk(t *testing.T) {
	cases := map[string]string{
		"7fffffffffffffff\nabc":             "abc",
		"3\r\nfoo\r\n7fffffffffffffff\r\nx": "foox",
		"ffffffffffffffffffff\r\nabc":       "",
	}

	for in, want := range cases {
		if got := string(Decode([]byte(in))); got != want {
			t.Errorf("Decode(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	payload := []byte(`{"Name":"Red","Surname":"Smasher"}`)
	if got := Decode(Encode(payload, 5)); !bytes.Equal(got, payload) {
		t.Errorf("Round trip mismatch: %q", got)
	}
}

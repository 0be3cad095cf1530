package validate

import "testing"

func TestGridSquare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"FN31PR", "FN31PR", true},
		{"fn31pr", "FN31PR", true}, // normalized to upper case
		{" FN31pr ", "FN31PR", true},
		{"123456", "123456", true}, // plain 6-digit form
		{"AB12CD", "AB12CD", true}, // generic alphanumeric
		{"TOOLONG1", "", false},
		{"FN31P", "", false}, // 5 chars
		{"FN3!PR", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := GridSquare(tc.in)
		if ok != tc.ok {
			t.Fatalf("GridSquare(%q) ok=%v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("GridSquare(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGridSquare_NonMaidenheadAlnumStillAccepted(t *testing.T) {
	t.Parallel()

	// "ZZ99ZZ" fails the Maidenhead pattern (Z > R) but passes the
	// generic 6-alphanumeric form.
	if got, ok := GridSquare("zz99zz"); !ok || got != "ZZ99ZZ" {
		t.Fatalf("GridSquare(zz99zz)=%q,%v", got, ok)
	}
}

func TestFrequency(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in string
		ok bool
	}{
		{"146.520", true},
		{"446.000", true},
		{"1296.0", true},
		{"7.100", true},
		{"146520", true}, // no decimal point
		{"50.125", true},
		{"1.2", true}, // minimum length, decimal form
		{"abc", false},
		{"14", false},        // too short
		{"123456789", false}, // too long
		{".520", false},
		{"146.", false},
	}
	for _, tc := range cases {
		_, ok := Frequency(tc.in)
		if ok != tc.ok {
			t.Fatalf("Frequency(%q) ok=%v, want %v", tc.in, ok, tc.ok)
		}
	}
}

func TestMode(t *testing.T) {
	t.Parallel()

	good := []string{"FM", "fm", "SSB", "RTTY", " cw "}
	for _, in := range good {
		if _, ok := Mode(in); !ok {
			t.Fatalf("Mode(%q) rejected", in)
		}
	}
	bad := []string{"F", "RTTYX", "FM1", "", "A B"}
	for _, in := range bad {
		if _, ok := Mode(in); ok {
			t.Fatalf("Mode(%q) accepted", in)
		}
	}
}

func TestRFPower(t *testing.T) {
	t.Parallel()

	good := []string{"5W", "100MW", "1", "qrp5w", " 50w "}
	for _, in := range good {
		if _, ok := RFPower(in); !ok {
			t.Fatalf("RFPower(%q) rejected", in)
		}
	}
	bad := []string{"", "100MWX", "5 W", "5.0W"}
	for _, in := range bad {
		if _, ok := RFPower(in); ok {
			t.Fatalf("RFPower(%q) accepted", in)
		}
	}
}

func TestNotes_TruncatesNeverRejects(t *testing.T) {
	t.Parallel()

	if got := Notes("  short note  "); got != "short note" {
		t.Fatalf("Notes trim: %q", got)
	}
	long := "abcdefghijklmnopqrstuvwxyz0123456789"
	got := Notes(long)
	if len(got) != 25 || got != long[:25] {
		t.Fatalf("Notes truncate: %q (len %d)", got, len(got))
	}
	if got := Notes(""); got != "" {
		t.Fatalf("Notes empty: %q", got)
	}
}

func TestUsernameAndPassword(t *testing.T) {
	t.Parallel()

	if _, ok := Username("ab"); ok {
		t.Fatalf("2-char username accepted")
	}
	if _, ok := Username("fox hunter"); ok {
		t.Fatalf("username with space accepted")
	}
	if u, ok := Username(" k4drv_op "); !ok || u != "k4drv_op" {
		t.Fatalf("Username: %q %v", u, ok)
	}
	if Password("12345") {
		t.Fatalf("5-char password accepted")
	}
	if !Password("123456") {
		t.Fatalf("6-char password rejected")
	}
}

func TestSerialNumber(t *testing.T) {
	t.Parallel()

	if !SerialNumber("00012345") {
		t.Fatalf("zero-padded serial rejected")
	}
	for _, in := range []string{"1234567", "123456789", "1234567a", ""} {
		if SerialNumber(in) {
			t.Fatalf("SerialNumber(%q) accepted", in)
		}
	}
}

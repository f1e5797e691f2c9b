package expect

import "testing"

func TestStaticExpectedFrames(t *testing.T) {
	source := Static{"MR": 176}

	if frames, ok := source.ExpectedFrames("mr"); !ok || frames != 176 {
		t.Fatalf("expected case-insensitive lookup, got %d %v", frames, ok)
	}
	if _, ok := source.ExpectedFrames("PET"); ok {
		t.Fatal("expected no expectation for PET")
	}
	if _, ok := None.ExpectedFrames("MR"); ok {
		t.Fatal("None must never report an expectation")
	}
}

func TestStaticIgnoresNonPositiveEntries(t *testing.T) {
	source := Static{"MR": 0}
	if _, ok := source.ExpectedFrames("MR"); ok {
		t.Fatal("zero frame expectation should be treated as absent")
	}
}

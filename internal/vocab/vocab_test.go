package vocab

import "testing"

// ---------------------------------------------------------------------------
// New / lookups
// ---------------------------------------------------------------------------

func TestLookupID_RoundTripsWithLookupPhrase(t *testing.T) {
	phrases := []string{"the", "way.", "way", "Show me", "Show"}
	v := New(phrases)

	if v.Size() != len(phrases) {
		t.Fatalf("Size() = %d, want %d", v.Size(), len(phrases))
	}

	for _, p := range phrases {
		id, ok := v.LookupID(p)
		if !ok {
			t.Fatalf("LookupID(%q) = _, false, want id", p)
		}

		got, ok := v.LookupPhrase(id)
		if !ok || got != p {
			t.Errorf("LookupPhrase(%d) = %q, %v, want %q, true", id, got, ok, p)
		}
	}
}

func TestContains_AbsentPhrase(t *testing.T) {
	v := New([]string{"the", "way"})

	if v.Contains("they") {
		t.Error("Contains(\"they\") = true, want false")
	}

	if _, ok := v.LookupID("they"); ok {
		t.Error("LookupID(\"they\") reported present, want absent")
	}
}

func TestLookupPhrase_OutOfRange(t *testing.T) {
	v := New([]string{"the"})

	for _, id := range []int{-1, 1, 100} {
		if s, ok := v.LookupPhrase(id); ok {
			t.Errorf("LookupPhrase(%d) = %q, true, want absent", id, s)
		}
	}
}

func TestNew_DuplicatePhraseLastIDWins(t *testing.T) {
	v := New([]string{"dup", "other", "dup"})

	id, ok := v.LookupID("dup")
	if !ok {
		t.Fatal("LookupID(\"dup\") absent")
	}
	if id != 2 {
		t.Errorf("LookupID(\"dup\") = %d, want 2 (last occurrence wins)", id)
	}

	// id→phrase stays total: the earlier slot still resolves.
	if s, ok := v.LookupPhrase(0); !ok || s != "dup" {
		t.Errorf("LookupPhrase(0) = %q, %v, want \"dup\", true", s, ok)
	}
}

func TestNew_EmptyVocabulary(t *testing.T) {
	v := New(nil)

	if v.Size() != 0 {
		t.Errorf("Size() = %d, want 0", v.Size())
	}
	if v.Contains("") {
		t.Error("empty vocab Contains(\"\") = true")
	}
}

func TestStringVocab_ImplementsMembership(t *testing.T) {
	var _ Membership = New([]string{"a"})
}

package sighting

import "testing"

func TestLocationNormalization(t *testing.T) {
	n := NewNormalizer(DefaultSynonyms())

	for _, raw := range []string{"amsterdam", "AMSTERDAM  ", " Amsterdam"} {
		if got := n.Location(raw); got != "Amsterdam" {
			t.Fatalf("Location(%q) = %q, want %q", raw, got, "Amsterdam")
		}
	}

	if got := n.Location("den haag"); got != "Den Haag" {
		t.Fatalf("multi-word location = %q, want %q", got, "Den Haag")
	}
}

func TestSpeciesSynonymsMapToCanonicalNames(t *testing.T) {
	n := NewNormalizer(DefaultSynonyms())

	cases := map[string]string{
		"sheep tick":  "Castor Bean Tick",
		"SHEEP TICK":  "Castor Bean Tick",
		"Deer Tick":   "Castor Bean Tick",
		"meadow tick": "Ornate Cow Tick",
		"kennel tick": "Brown Dog Tick",
	}
	for raw, want := range cases {
		got, known := n.Species(raw)
		if !known {
			t.Fatalf("Species(%q) not recognized, want synonym hit", raw)
		}
		if got != want {
			t.Fatalf("Species(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestUnknownSpeciesKeptAndFlagged(t *testing.T) {
	n := NewNormalizer(DefaultSynonyms())

	got, known := n.Species("  moose tick ")
	if known {
		t.Fatalf("expected unknown species to be flagged")
	}
	if got != "Moose Tick" {
		t.Fatalf("unknown species = %q, want kept as-is title-cased", got)
	}
}

func TestFilterNormalizationMatchesIngestion(t *testing.T) {
	n := NewNormalizer(DefaultSynonyms())

	// What a user types in a filter must land on the same canonical
	// value a source row was stored under.
	stored, _ := n.Species("Sheep tick")
	filtered, _ := n.Species("sheep TICK")
	if stored != filtered {
		t.Fatalf("filter value %q does not match stored value %q", filtered, stored)
	}
}

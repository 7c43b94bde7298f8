package services

import "testing"

func TestParseFlashcardsReplyPlainArray(t *testing.T) {
	reply := `[{"front":"What is osmosis?","back":"Diffusion of water across a membrane."}]`

	cards, err := ParseFlashcardsReply(reply)
	if err != nil {
		t.Fatalf("ParseFlashcardsReply returned error: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].Front != "What is osmosis?" {
		t.Errorf("front: got %q", cards[0].Front)
	}
}

func TestParseFlashcardsReplyCodeFenced(t *testing.T) {
	reply := "```json\n[{\"front\":\"Q\",\"back\":\"A\"}]\n```"

	cards, err := ParseFlashcardsReply(reply)
	if err != nil {
		t.Fatalf("ParseFlashcardsReply returned error: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
}

func TestParseFlashcardsReplyWrappedInProse(t *testing.T) {
	reply := `Here are your flashcards:
[{"front":"Q1","back":"A1"},{"front":"Q2","back":"A2"}]
Happy studying!`

	cards, err := ParseFlashcardsReply(reply)
	if err != nil {
		t.Fatalf("ParseFlashcardsReply returned error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
}

func TestParseFlashcardsReplyDropsEmptyCards(t *testing.T) {
	reply := `[{"front":"Q","back":"A"},{"front":"","back":"orphan"}]`

	cards, err := ParseFlashcardsReply(reply)
	if err != nil {
		t.Fatalf("ParseFlashcardsReply returned error: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
}

func TestParseFlashcardsReplyNoArray(t *testing.T) {
	if _, err := ParseFlashcardsReply("sorry, I cannot help with that"); err == nil {
		t.Fatal("expected error for reply without a JSON array")
	}
}

func TestParseFlashcardsReplyAllEmpty(t *testing.T) {
	if _, err := ParseFlashcardsReply(`[{"front":"","back":""}]`); err == nil {
		t.Fatal("expected error when no card is usable")
	}
}

package memory

import (
	"testing"
	"time"

	"aqua-support-be/pkg/agent"
)

func TestMemoKeyNormalization(t *testing.T) {
	repo := NewAnswerMemoRepository(time.Minute)
	repo.Save("  What IS  KH? ", &agent.Result{Answer: "carbonate hardness"})

	variants := []string{
		"what is kh?",
		"What is KH?",
		"  what   is kh?  ",
		"WHAT\tIS\nKH?",
	}
	for _, q := range variants {
		got, found := repo.Get(q)
		if !found {
			t.Errorf("Get(%q) missed, want normalized hit", q)
			continue
		}
		if got.Answer != "carbonate hardness" {
			t.Errorf("Get(%q) = %q", q, got.Answer)
		}
	}

	if _, found := repo.Get("what is gh?"); found {
		t.Error("different question must miss")
	}
}

func TestMemoDelete(t *testing.T) {
	repo := NewAnswerMemoRepository(time.Minute)
	repo.Save("how do I mix salt?", &agent.Result{Answer: "slowly"})

	repo.Delete("How do I  mix salt?")

	if _, found := repo.Get("how do I mix salt?"); found {
		t.Error("deleted entry still present")
	}
}

func TestMemoExpiry(t *testing.T) {
	repo := NewAnswerMemoRepository(25 * time.Millisecond)
	repo.Save("temporary", &agent.Result{Answer: "short lived"})

	if _, found := repo.Get("temporary"); !found {
		t.Fatal("entry missing before expiry")
	}

	time.Sleep(60 * time.Millisecond)

	if _, found := repo.Get("temporary"); found {
		t.Error("entry survived past its expiry")
	}
}

func TestMemoDefaultExpiry(t *testing.T) {
	repo := NewAnswerMemoRepository(0)
	repo.Save("question", &agent.Result{Answer: "answer"})

	if _, found := repo.Get("question"); !found {
		t.Error("zero expiry must fall back to a default, not drop entries")
	}
}

package reports

import (
	"bytes"
	"testing"
	"time"

	"kudos/internal/domain/directory"
	"kudos/internal/domain/recognition"
)

func TestActivityPDF(t *testing.T) {
	dir := directory.NewStore()
	directory.Seed(dir)
	recs := recognition.NewStore()
	recs.Put(recognition.Recognition{
		ID:          "r1",
		SenderID:    "102",
		RecipientID: "104",
		Message:     "kept the release on track",
		Visibility:  recognition.VisibilityPublic,
		CreatedAt:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	})
	recs.Put(recognition.Recognition{
		ID:          "r2",
		SenderID:    "104",
		RecipientID: "105", // Eve, dangling team reference
		Message:     "onboarding help",
		Visibility:  recognition.VisibilityPrivate,
		CreatedAt:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	})

	svc := NewService(dir, recs)
	pdf, err := svc.ActivityPDF(time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("pdf generation failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}

func TestCountByTeam(t *testing.T) {
	dir := directory.NewStore()
	directory.Seed(dir)
	recs := recognition.NewStore()
	svc := NewService(dir, recs)

	counts := svc.countByTeam([]recognition.Recognition{
		{RecipientID: "102"}, // Engineering
		{RecipientID: "104"}, // Product
		{RecipientID: "104"},
		{RecipientID: "105"}, // dangling team
		{RecipientID: "999"}, // unknown employee
	})

	if counts["1"] != 1 || counts["2"] != 2 {
		t.Fatalf("unexpected team counts: %+v", counts)
	}
	if counts[""] != 2 {
		t.Fatalf("expected 2 unassigned, got %d", counts[""])
	}
}

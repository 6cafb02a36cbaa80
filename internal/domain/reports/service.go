package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"kudos/internal/domain/directory"
	"kudos/internal/domain/recognition"
)

const maxReportRows = 40

// Service renders the recognition activity report. The report is served only
// to ADMIN and HR, so senders are shown unmasked.
type Service struct {
	Directory    *directory.Store
	Recognitions *recognition.Store
}

func NewService(dir *directory.Store, recs *recognition.Store) *Service {
	return &Service{Directory: dir, Recognitions: recs}
}

// ActivityPDF builds a PDF summarizing recognition activity per team plus the
// most recent recognitions.
func (s *Service) ActivityPDF(now time.Time) ([]byte, error) {
	recs := s.Recognitions.All()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Recognition Activity")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", now.UTC().Format("2006-01-02 15:04 UTC")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Total recognitions: %d", len(recs)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Received per team")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	perTeam := s.countByTeam(recs)
	for _, team := range s.Directory.Teams() {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %d", team.Name, perTeam[team.ID]))
		pdf.Ln(6)
	}
	if unassigned := perTeam[""]; unassigned > 0 {
		pdf.Cell(0, 7, fmt.Sprintf("No team: %d", unassigned))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Recent recognitions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	start := 0
	if len(recs) > maxReportRows {
		start = len(recs) - maxReportRows
	}
	for _, rec := range recs[start:] {
		line := fmt.Sprintf("%s  %s -> %s  [%s]  %s",
			rec.CreatedAt.Format("2006-01-02 15:04"),
			s.employeeName(rec.SenderID),
			s.employeeName(rec.RecipientID),
			rec.Visibility,
			rec.Message)
		pdf.MultiCell(0, 6, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// countByTeam tallies recognitions by the recipient's team. Recipients whose
// team reference dangles count under the empty key.
func (s *Service) countByTeam(recs []recognition.Recognition) map[string]int {
	counts := map[string]int{}
	for _, rec := range recs {
		recipient, ok := s.Directory.EmployeeByID(rec.RecipientID)
		if !ok {
			counts[""]++
			continue
		}
		if _, ok := s.Directory.TeamByID(recipient.TeamID); !ok {
			counts[""]++
			continue
		}
		counts[recipient.TeamID]++
	}
	return counts
}

func (s *Service) employeeName(id string) string {
	if employee, ok := s.Directory.EmployeeByID(id); ok {
		return employee.Name
	}
	return id
}

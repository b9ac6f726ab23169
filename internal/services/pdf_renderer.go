package services

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

const reportHeading = "Candidate's Answer"

type PDFRenderer interface {
	// Render writes answer to filename inside the output directory and returns
	// the full path of the written file.
	Render(filename, answer string) (string, error)
}

type pdfRenderer struct {
	storage StorageService
}

func NewPDFRenderer(storage StorageService) PDFRenderer {
	return &pdfRenderer{storage: storage}
}

func (r *pdfRenderer) Render(filename, answer string) (string, error) {
	path := r.storage.GetFilePath(filename)

	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(reportHeading, false)
	doc.AddPage()
	doc.SetFont("Arial", "", 12)

	doc.CellFormat(200, 10, tr(reportHeading), "", 1, "C", false, 0, "")
	doc.MultiCell(0, 10, tr(answer), "", "", false)

	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write PDF %s: %w", filename, err)
	}

	return path, nil
}

package handlers

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-evaluator/internal/services"
)

type UploadHandler struct {
	references     services.ReferenceService
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	references services.ReferenceService,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		references:     references,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUploadReference handles POST /api/v1/references. The multipart form
// carries a "reference" PDF and optional "title" and "question" fields.
func (h *UploadHandler) HandleUploadReference(c *fiber.Ctx) error {
	file, err := c.FormFile("reference")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "a 'reference' PDF file is required",
			"code":  fiber.StatusBadRequest,
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Reference file too large. Max size: %d bytes", h.maxFileSize),
			"code":  fiber.StatusBadRequest,
		})
	}

	path, err := h.storageService.SaveReference(file)
	if err != nil {
		return errorResponse(c, err)
	}

	doc, err := h.references.Ingest(c.UserContext(), path, c.FormValue("title"), c.FormValue("question"))
	if err != nil {
		// Cleanup the stored file, nothing references it
		os.Remove(path)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Reference answer ingested successfully",
		"document": doc,
	})
}

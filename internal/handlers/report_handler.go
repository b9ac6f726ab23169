package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-evaluator/internal/services"
)

type ReportHandler struct {
	storage services.StorageService
}

func NewReportHandler(storage services.StorageService) *ReportHandler {
	return &ReportHandler{storage: storage}
}

// HandleDownload handles GET /:filename. Only rendered reports inside the
// output directory are served.
func (h *ReportHandler) HandleDownload(c *fiber.Ctx) error {
	path, err := h.storage.ResolveFile(c.Params("filename"))
	if err != nil {
		return errorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.SendFile(path)
}

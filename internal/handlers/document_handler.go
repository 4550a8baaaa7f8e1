package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/repositories"
	"talentflow/recruitment-api/internal/services"
)

type DocumentHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	pdfParser      services.PDFParserService
	maxFileSize    int64
}

func NewDocumentHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	maxFileSize int64,
) *DocumentHandler {
	return &DocumentHandler{
		docRepo:        docRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleExtractDocument handles POST /applications/extract-document. Accepts a PDF under
// the "document" form field, stores it, extracts the text, and returns the
// extracted content alongside the stored record's id. The client passes the
// content on to CV analysis; extraction itself writes no progress.
func (h *DocumentHandler) HandleExtractDocument(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No document file uploaded. Please upload 'document' as a PDF file.",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Document too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(fileHeader, "cv")
	if err != nil {
		return err
	}

	content, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		// Extraction failures leave no stored file behind.
		h.storageService.DeleteFile(filename)
		return err
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: fileHeader.Filename,
		FileType:         "cv",
		FilePath:         filePath,
		PageCount:        content.PageCount,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		h.storageService.DeleteFile(filename)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.ExtractDocumentResponse{
		Success:    true,
		DocumentID: doc.ID.String(),
		Content:    services.CleanText(content.Text),
		PageCount:  content.PageCount,
	})
}

package controller

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/uploads/dto"
	"msns_backend/internals/features/uploads/service"
	"msns_backend/internals/helpers/storage"
)

type UploadController struct {
	svc *service.Service
}

func NewUploadController(svc *service.Service) *UploadController {
	return &UploadController{svc: svc}
}

func uploadError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// formFile returns the "file" part, writing the error response itself when
// the part is missing or too large.
func formFile(c *fiber.Ctx) (*multipart.FileHeader, error) {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil || fh.Size == 0 {
		return nil, uploadError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	if fh.Size > constants.MaxUploadBytes {
		return nil, uploadError(c, fiber.StatusRequestEntityTooLarge, "File too large")
	}
	return fh, nil
}

// POST /api/v1/upload
func (ctl *UploadController) Upload(c *fiber.Ctx) error {
	fh, err := formFile(c)
	if fh == nil {
		return err
	}
	log := zerolog.Ctx(c.UserContext())

	src, err := fh.Open()
	if err != nil {
		log.Error().Err(err).Msg("open upload")
		return uploadError(c, fiber.StatusInternalServerError, "Upload failed")
	}
	defer src.Close()

	url, err := ctl.svc.Upload(c.UserContext(), fh.Filename, fh.Header.Get("Content-Type"), src)
	if err != nil {
		log.Error().Err(err).Str("filename", fh.Filename).Msg("upload failed")
		return uploadError(c, fiber.StatusInternalServerError, "Upload failed")
	}
	return c.JSON(dto.UploadResponse{URL: url})
}

// POST /api/v1/upload/avatar
func (ctl *UploadController) UploadAvatar(c *fiber.Ctx) error {
	fh, err := formFile(c)
	if fh == nil {
		return err
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return uploadError(c, fiber.StatusBadRequest, "Unsupported image type")
	}
	log := zerolog.Ctx(c.UserContext())

	src, err := fh.Open()
	if err != nil {
		log.Error().Err(err).Msg("open avatar")
		return uploadError(c, fiber.StatusInternalServerError, "Upload failed")
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("read avatar")
		return uploadError(c, fiber.StatusInternalServerError, "Upload failed")
	}

	url, err := ctl.svc.UploadAvatar(c.UserContext(), data)
	switch {
	case errors.Is(err, storage.ErrUnsupportedImage):
		return uploadError(c, fiber.StatusBadRequest, "Unsupported image type")
	case err != nil:
		log.Error().Err(err).Msg("avatar upload failed")
		return uploadError(c, fiber.StatusInternalServerError, "Upload failed")
	}
	return c.JSON(dto.UploadResponse{URL: url})
}

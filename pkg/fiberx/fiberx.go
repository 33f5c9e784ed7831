package fiberx

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts internal errors to standard HTTP responses
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	var xe *errx.Error
	if errors.As(err, &xe) {
		if xe.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Errorf("Request %s %s failed: %v", c.Method(), c.Path(), xe)
		}
		return c.Status(xe.HTTPStatus).JSON(xe.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}

// NewApp builds a fiber app wired with ErrorHandler
func NewApp(name string, bodyLimit int) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
		ErrorHandler:          ErrorHandler,
	})
}

// Pagination reads page and page_size from the query string
func Pagination(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()
}

// ReadFormFile returns the content of an uploaded file, reading at most limit+1 bytes
func ReadFormFile(file *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit+1))
}

// BadRequest is the plain 400 body used for malformed input
func BadRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

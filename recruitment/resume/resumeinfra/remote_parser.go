package resumeinfra

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/gofiber/fiber/v2"
)

const (
	ParseCVPath       = "/api/parse-cv"
	ParseCVStatusPath = "/api/parse-cv/status"
	ParseCVFormField  = "cvFile"
)

// RemoteParserClient talks to a parse-cv service over multipart HTTP
type RemoteParserClient struct {
	baseURL string
	timeout time.Duration
}

func NewRemoteParserClient(baseURL string, timeout time.Duration) *RemoteParserClient {
	return &RemoteParserClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

var _ resume.RemoteParser = (*RemoteParserClient)(nil)

// ParseFile uploads the file as cvFile and decodes the parsed data
func (c *RemoteParserClient) ParseFile(ctx context.Context, fileName string, data []byte) (*resume.ParsedData, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(err)
	}

	agent := fiber.Post(c.baseURL + ParseCVPath)
	agent.Timeout(c.timeout)
	agent.FileData(&fiber.FormFile{
		Fieldname: ParseCVFormField,
		Name:      fileName,
		Content:   data,
	})
	agent.MultipartForm(nil)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, unavailable(errs[0])
	}
	if status != http.StatusOK {
		return nil, resume.ErrRemoteParserUnavailable().
			WithDetail("status", status).
			WithDetail("url", c.baseURL+ParseCVPath)
	}

	var parsed resume.ParsedData
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, unavailable(err).WithDetail("reason", "invalid response body")
	}
	return &parsed, nil
}

// Status calls the health probe and expects {"status":"available"}
func (c *RemoteParserClient) Status(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return unavailable(err)
	}

	agent := fiber.Get(c.baseURL + ParseCVStatusPath)
	agent.Timeout(c.timeout)

	var resp resume.ParseCVStatusResponse
	status, _, errs := agent.Struct(&resp)
	if len(errs) > 0 {
		return unavailable(errs[0])
	}
	if status != http.StatusOK || resp.Status != resume.ParseCVStatusAvailable {
		return resume.ErrRemoteParserUnavailable().
			WithDetail("status", status).
			WithDetail("reported", resp.Status)
	}
	return nil
}

func unavailable(err error) *errx.Error {
	return resume.ErrRegistry.NewWithCause(resume.CodeRemoteParserUnavailable, err).
		WithDetail("error", err.Error())
}

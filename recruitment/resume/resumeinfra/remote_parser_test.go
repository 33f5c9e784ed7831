package resumeinfra

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteParserClient_ParseFile(t *testing.T) {
	var gotName string
	var gotContent []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ParseCVPath, r.URL.Path)
		file, header, err := r.FormFile(ParseCVFormField)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotName = header.Filename
		gotContent, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resume.ParsedData{
			PersonalInfo: resume.PersonalInfo{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
			ProfessionalInfo: resume.ProfessionalInfo{
				Title:  "Engineer",
				Skills: []string{"Go"},
			},
		})
	}))
	defer srv.Close()

	client := NewRemoteParserClient(srv.URL+"/", 2*time.Second)
	data, err := client.ParseFile(context.Background(), "cv.pdf", []byte("%PDF-1.4 fake"))

	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", gotName)
	assert.Equal(t, []byte("%PDF-1.4 fake"), gotContent)
	assert.Equal(t, "Ada", data.PersonalInfo.FirstName)
	assert.Equal(t, []string{"Go"}, data.ProfessionalInfo.Skills)
}

func TestRemoteParserClient_ParseFile_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewRemoteParserClient(srv.URL, time.Second).ParseFile(context.Background(), "cv.pdf", []byte("x"))
		assert.True(t, errx.IsCode(err, resume.CodeRemoteParserUnavailable))
	})

	t.Run("invalid body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		_, err := NewRemoteParserClient(srv.URL, time.Second).ParseFile(context.Background(), "cv.pdf", []byte("x"))
		assert.True(t, errx.IsCode(err, resume.CodeRemoteParserUnavailable))
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := NewRemoteParserClient(url, time.Second).ParseFile(context.Background(), "cv.pdf", []byte("x"))
		assert.True(t, errx.IsCode(err, resume.CodeRemoteParserUnavailable))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewRemoteParserClient("http://127.0.0.1:1", time.Second).ParseFile(ctx, "cv.pdf", []byte("x"))
		assert.True(t, errx.IsCode(err, resume.CodeRemoteParserUnavailable))
	})
}

func TestRemoteParserClient_Status(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, ParseCVStatusPath, r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"available"}`))
		}))
		defer srv.Close()

		assert.NoError(t, NewRemoteParserClient(srv.URL, time.Second).Status(context.Background()))
	})

	t.Run("degraded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"maintenance"}`))
		}))
		defer srv.Close()

		err := NewRemoteParserClient(srv.URL, time.Second).Status(context.Background())
		assert.True(t, errx.IsCode(err, resume.CodeRemoteParserUnavailable))
	})
}

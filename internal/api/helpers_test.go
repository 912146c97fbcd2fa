package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// detectForm describes a multipart body; an empty FileName omits the leaf part
// and a nil Language omits the language part.
type detectForm struct {
	FileName string
	Content  []byte
	Language *string
}

func lang(s string) *string { return &s }

func newDetectRequest(t *testing.T, form detectForm) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	if form.FileName != "" {
		part, err := writer.CreateFormFile(leafField, form.FileName)
		if err != nil {
			t.Fatal(err)
		}
		part.Write(form.Content)
	}
	if form.Language != nil {
		if err := writer.WriteField(languageField, *form.Language); err != nil {
			t.Fatal(err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/detect", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

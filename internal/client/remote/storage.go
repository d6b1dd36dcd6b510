package remote

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
)

type uploadPayload struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Upload sends the object under the caller-derived key and returns the
// public URL the server assigned.
func (c *Client) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("path", objectPath); err != nil {
		return "", err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		`form-data; name="file"; filename="`+path.Base(objectPath)+`"`)
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/uploads", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var p uploadPayload
	if err := c.send(req, &p); err != nil {
		return "", err
	}

	return p.URL, nil
}

// Remove deletes an uploaded object, used to roll back multi-step
// commands whose write step failed.
func (c *Client) Remove(ctx context.Context, objectPath string) error {
	return c.doJSON(ctx, http.MethodDelete,
		"/v1/uploads?path="+url.QueryEscape(objectPath), nil, nil)
}

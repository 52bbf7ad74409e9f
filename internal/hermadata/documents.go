package hermadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Document attachment is a two-phase contract: UploadFile stores the raw
// bytes and returns an opaque numeric id, AttachAnimalDocument then ties
// that id to the owning record. A failed phase two leaves an orphaned
// upload on the server; the backend reaps those, the console does not
// retry.

// UploadFile uploads raw file content and returns the assigned document
// id for a later attach call.
func (c *Client) UploadFile(ctx context.Context, filename string, content io.Reader) (int64, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return 0, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return 0, fmt.Errorf("read upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("finish upload form: %w", err)
	}

	rel := &url.URL{Path: "/documents"}
	resp, err := c.send(ctx, http.MethodPost, rel, &buf, writer.FormDataContentType())
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkStatus(rel, resp); err != nil {
		return 0, err
	}
	var payload struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode upload response: %w", err)
	}
	if payload.ID <= 0 {
		return 0, fmt.Errorf("upload returned invalid document id %d", payload.ID)
	}
	return payload.ID, nil
}

// AttachAnimalDocument creates the persisted association between an
// uploaded file and an animal record.
func (c *Client) AttachAnimalDocument(ctx context.Context, animalID int64, in DocumentInput) (Document, error) {
	rel := &url.URL{Path: fmt.Sprintf("/animals/%d/documents", animalID)}
	var doc Document
	if err := c.doJSON(ctx, http.MethodPost, rel, in, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// FetchAnimalDocuments lists the documents attached to an animal.
func (c *Client) FetchAnimalDocuments(ctx context.Context, animalID int64) ([]Document, error) {
	rel := &url.URL{Path: fmt.Sprintf("/animals/%d/documents", animalID)}
	var docs []Document
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

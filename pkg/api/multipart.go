package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
)

// Attachment is a binary file streamed with a multipart submission.
type Attachment struct {
	FieldName   string
	Filename    string
	ContentType string
	Reader      io.Reader
}

// DoMultipart submits form fields plus an optional attachment (used for
// leave-request document upload). Authentication, 401 handling, and failure
// classification behave exactly as in Do.
func (c *Client) DoMultipart(ctx context.Context, path string, fields map[string]string, att *Attachment, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %q: %w", key, err)
		}
	}

	if att != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, att.FieldName, att.Filename))
		header.Set("Content-Type", att.ContentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("failed to create attachment part: %w", err)
		}
		if _, err := io.Copy(part, att.Reader); err != nil {
			return fmt.Errorf("failed to stream attachment: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	token, ok := c.creds.Token()
	if !ok {
		return ErrUnauthenticated
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Idempotency-Key", uuid.New().String())

	raw, err := c.execute(httpReq)
	if err != nil {
		return err
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &DecodeError{Entity: path, Err: err}
		}
	}
	return nil
}

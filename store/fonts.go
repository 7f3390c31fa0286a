package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Font is one installable font resource: the family shown in the editor
// picker and the TTF file name the print runtime loads.
type Font struct {
	Family string `json:"family"`
	File   string `json:"file"`
}

// Fonts lists the fonts installed on the print runtime.
func (c *Client) Fonts(ctx context.Context) ([]Font, error) {
	var fonts []Font
	if err := c.getJSON(ctx, c.base+"/fonts", &fonts); err != nil {
		return nil, err
	}
	return fonts, nil
}

// UploadFont installs a TTF on the print runtime under the given family
// name.
func (c *Client) UploadFont(ctx context.Context, family, filename string, ttf []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("family", family); err != nil {
		return fmt.Errorf("encode upload: %w", err)
	}
	part, err := w.CreateFormFile("font", filename)
	if err != nil {
		return fmt.Errorf("encode upload: %w", err)
	}
	if _, err := part.Write(ttf); err != nil {
		return fmt.Errorf("encode upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("encode upload: %w", err)
	}

	url := c.base + "/fonts"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", url, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("POST %s: unexpected status %s", url, resp.Status)
	}
	return nil
}

package http

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/tourdesk/admin-client/pkg/tourapi"
)

const defaultFileContentType = "application/octet-stream"

type formPart struct {
	name  string
	value string
	file  *tourapi.Upload
}

// Form is an ordered multipart/form-data field set. Parts are written in the
// order they were added.
type Form struct {
	parts []formPart
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{}
}

// AddField appends a string field.
func (f *Form) AddField(name, value string) *Form {
	f.parts = append(f.parts, formPart{name: name, value: value})

	return f
}

// AddFile appends a file part.
func (f *Form) AddFile(name string, upload *tourapi.Upload) *Form {
	f.parts = append(f.parts, formPart{name: name, file: upload})

	return f
}

// Fields returns the part names in order.
func (f *Form) Fields() []string {
	names := make([]string, 0, len(f.parts))
	for _, part := range f.parts {
		names = append(names, part.name)
	}

	return names
}

// HasFile reports whether a file part named name was added.
func (f *Form) HasFile(name string) bool {
	for _, part := range f.parts {
		if part.name == name && part.file != nil {
			return true
		}
	}

	return false
}

func (f *Form) encode() ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, part := range f.parts {
		if part.file == nil {
			err := writer.WriteField(part.name, part.value)
			if err != nil {
				return nil, "", fmt.Errorf("writing form field %s: %w", part.name, err)
			}

			continue
		}

		contentType := part.file.ContentType
		if contentType == "" {
			contentType = defaultFileContentType
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, part.name, part.file.Filename))
		header.Set("Content-Type", contentType)

		partWriter, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating form file %s: %w", part.name, err)
		}

		_, err = partWriter.Write(part.file.Data)
		if err != nil {
			return nil, "", fmt.Errorf("writing form file %s: %w", part.name, err)
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

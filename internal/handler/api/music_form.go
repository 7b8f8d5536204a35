package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

// formMemory is how much of a multipart body is kept in memory before parts
// spill to temporary files.
const formMemory = 8 << 20

// formOverhead leaves room for the text fields and part headers on top of
// the three files.
const formOverhead = 1 << 20

var errFileTooLarge = errors.New("file too large")

// musicForm is a parsed multipart upload. close must be called once the
// files have been consumed.
type musicForm struct {
	metadata port.MetadataInput
	files    map[model.FileKind]port.FileInput
	close    func()
}

// readMusicForm parses the multipart body of an upload or an update. A part
// larger than maxFileSize fails the whole request before anything is stored.
func readMusicForm(w http.ResponseWriter, r *http.Request, maxFileSize int64) (*musicForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(len(model.FileKinds))*maxFileSize+formOverhead)
	if err := r.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, errFileTooLarge
		}
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	form := &musicForm{
		metadata: port.MetadataInput{
			Title:     r.FormValue("title"),
			Authors:   r.FormValue("authors"),
			Rating:    r.FormValue("rating"),
			Genre:     r.FormValue("genre"),
			Recommend: r.FormValue("recommend"),
		},
		files: make(map[model.FileKind]port.FileInput, len(model.FileKinds)),
	}

	var opened []multipart.File
	form.close = func() {
		for _, f := range opened {
			_ = f.Close()
		}
		_ = r.MultipartForm.RemoveAll()
	}

	for _, kind := range model.FileKinds {
		headers := r.MultipartForm.File[string(kind)]
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		if fh.Size > maxFileSize {
			form.close()
			return nil, fmt.Errorf("%w: %s is %d bytes", errFileTooLarge, kind, fh.Size)
		}
		f, err := fh.Open()
		if err != nil {
			form.close()
			return nil, fmt.Errorf("open %s part: %w", kind, err)
		}
		opened = append(opened, f)
		form.files[kind] = port.FileInput{Reader: f, Size: fh.Size, Name: fh.Filename}
	}

	return form, nil
}

// writeFormError answers a readMusicForm failure.
func writeFormError(w http.ResponseWriter, err error, maxFileSize int64) {
	if errors.Is(err, errFileTooLarge) {
		WriteError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Each file must be at most %d bytes", maxFileSize), err)
		return
	}
	WriteError(w, http.StatusBadRequest, "Invalid multipart form", err)
}

package services

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize is the largest accepted upload, 2048 KB.
const MaxImageSize = 2048 * 1024

// imageTypes maps accepted content types to the extension the blob is stored
// with.
var imageTypes = []struct {
	mime string
	ext  string
}{
	{"image/jpeg", ".jpg"},
	{"image/png", ".png"},
	{"image/gif", ".gif"},
}

// ImageUpload is an uploaded image file.
type ImageUpload struct {
	Filename string
	Size     int64
	Content  []byte
}

// check sniffs the content type and enforces the size limit. It returns the
// storage extension, or a field message when the upload is rejected.
func (u *ImageUpload) check() (string, string) {
	size := u.Size
	if n := int64(len(u.Content)); n > size {
		size = n
	}
	if size > MaxImageSize {
		return "", "The image may not be greater than 2048 kilobytes."
	}

	detected := mimetype.Detect(u.Content)
	for _, t := range imageTypes {
		if detected.Is(t.mime) {
			return t.ext, ""
		}
	}
	if strings.HasPrefix(detected.String(), "image/") {
		return "", "The image must be a file of type: jpeg, png, jpg, gif."
	}
	return "", "The image must be an image."
}

package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

// AllowedImageExtensions lists the accepted upload formats
var AllowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var slugInvalidChars = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)
var slugSeparatorRuns = regexp.MustCompile(`[-_]+`)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImageFile validates the uploaded file format and size
func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !AllowedImageExtensions[ext] {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only png, jpg, jpeg and gif files are allowed",
		}
	}

	return nil
}

// SlugifyImageName builds a filesystem-safe base name from the motorcycle's
// brand and model, e.g. ("Royal Enfield", "Continental GT 650") ->
// "royalenfield-continentalgt650".
func SlugifyImageName(brand, model string) string {
	base := brand + "-" + model
	base = slugInvalidChars.ReplaceAllString(base, "")
	base = slugSeparatorRuns.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-_")
	return strings.ToLower(base)
}

// GenerateUniqueFilename derives a collision-free stored name for an
// uploaded image. Collisions are resolved with sequential -1, -2, ...
// suffixes; exists reports whether a candidate name is already taken.
func GenerateUniqueFilename(brand, model, originalFilename string, exists func(string) bool) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	base := SlugifyImageName(brand, model)

	filename := base + ext
	for counter := 1; exists(filename); counter++ {
		filename = fmt.Sprintf("%s-%d%s", base, counter, ext)
	}
	return filename
}

// GetImageURL returns the URL path for accessing an uploaded image
func GetImageURL(filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("/api/v1/uploads/%s", filename)
}

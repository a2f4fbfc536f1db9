package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/google/uuid"
	"github.com/resumedash/internal/metrics"
	_ "golang.org/x/image/webp"
)

// MaxImageBytes caps a single upload.
const MaxImageBytes = 5 << 20

var (
	ErrUnsupportedImage = errors.New("blob: unsupported image format")
	ErrImageTooLarge    = errors.New("blob: image exceeds size limit")
	ErrInvalidKey       = errors.New("blob: invalid key segment")
)

// OpError tags a failure with the image operation that produced it.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return "image " + e.Op + ": " + e.Err.Error() }
func (e *OpError) Unwrap() error { return e.Err }

// UserMessage is the toast text for the failed operation.
func (e *OpError) UserMessage() string {
	switch e.Op {
	case "upload":
		return "Failed to upload image. Please try again."
	case "delete":
		return "Failed to delete image. Please try again."
	default:
		return "Failed to fetch image. Please try again."
	}
}

type Image struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func keySegment(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" || v == "." || v == ".." || strings.ContainsAny(v, "/\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, v)
	}
	return v, nil
}

// ProfileDirectory is developers/{developerId}/profile/.
func ProfileDirectory(developerID string) (string, error) {
	id, err := keySegment(developerID)
	if err != nil {
		return "", err
	}
	return "developers/" + id + "/profile/", nil
}

// ProjectDirectory is developers/{developerId}/skills/{skillId}/projects/{projectId}/.
func ProjectDirectory(developerID, skillID, projectID string) (string, error) {
	parts := make([]string, 0, 3)
	for _, v := range []string{developerID, skillID, projectID} {
		seg, err := keySegment(v)
		if err != nil {
			return "", err
		}
		parts = append(parts, seg)
	}
	return "developers/" + parts[0] + "/skills/" + parts[1] + "/projects/" + parts[2] + "/", nil
}

// ImageService keeps at most one image per directory.
type ImageService struct {
	open ContainerOpener
}

func NewImageService(open ContainerOpener) *ImageService {
	return &ImageService{open: open}
}

// Current returns the first image under directory, or nil when there is none.
func (s *ImageService) Current(ctx context.Context, directory string) (img *Image, err error) {
	defer func() { metrics.IncrementBlobOperation("fetch", err) }()

	c, err := s.open(ctx)
	if err != nil {
		return nil, &OpError{Op: "fetch", Err: err}
	}
	img, err = first(ctx, c, directory)
	if err != nil {
		return nil, &OpError{Op: "fetch", Err: err}
	}
	return img, nil
}

// Replace removes the existing image and uploads data under a new name.
func (s *ImageService) Replace(ctx context.Context, directory string, data []byte) (img *Image, err error) {
	defer func() { metrics.IncrementBlobOperation("upload", err) }()

	contentType, ext, err := DetectImage(data)
	if err != nil {
		return nil, &OpError{Op: "upload", Err: err}
	}

	c, err := s.open(ctx)
	if err != nil {
		return nil, &OpError{Op: "upload", Err: err}
	}
	if err := deleteAll(ctx, c, directory); err != nil {
		return nil, &OpError{Op: "delete", Err: err}
	}

	name := directory + uuid.NewString() + ext
	if err := c.Upload(ctx, name, data, contentType); err != nil {
		return nil, &OpError{Op: "upload", Err: err}
	}

	img, err = first(ctx, c, directory)
	if err != nil {
		return nil, &OpError{Op: "upload", Err: err}
	}
	return img, nil
}

// Delete removes every image under directory.
func (s *ImageService) Delete(ctx context.Context, directory string) (err error) {
	defer func() { metrics.IncrementBlobOperation("delete", err) }()

	c, err := s.open(ctx)
	if err != nil {
		return &OpError{Op: "delete", Err: err}
	}
	if err := deleteAll(ctx, c, directory); err != nil {
		return &OpError{Op: "delete", Err: err}
	}
	return nil
}

func first(ctx context.Context, c Container, directory string) (*Image, error) {
	exists, err := c.HasFilesUnder(ctx, directory)
	if err != nil || !exists {
		return nil, err
	}
	names, err := c.List(ctx, directory)
	if err != nil || len(names) == 0 {
		return nil, err
	}
	return &Image{Name: names[0], URL: c.URL(names[0])}, nil
}

func deleteAll(ctx context.Context, c Container, directory string) error {
	names, err := c.List(ctx, directory)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := c.Delete(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// DetectImage decodes the image header and returns its content type and
// file extension.
func DetectImage(data []byte) (contentType, ext string, err error) {
	if len(data) > MaxImageBytes {
		return "", "", ErrImageTooLarge
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	switch format {
	case "jpeg":
		return "image/jpeg", ".jpg", nil
	case "png", "gif", "webp":
		return "image/" + format, "." + format, nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}
}

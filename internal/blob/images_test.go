package blob

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sort"
	"strings"
	"sync"
	"testing"
)

type fakeContainer struct {
	mu        sync.Mutex
	blobs     map[string]string
	failList  bool
	failWrite bool
	deleted   []string
}

func newFakeContainer() *fakeContainer {
	return &fakeContainer{blobs: make(map[string]string)}
}

func (f *fakeContainer) HasFilesUnder(ctx context.Context, directory string) (bool, error) {
	names, err := f.List(ctx, directory)
	return len(names) > 0, err
}

func (f *fakeContainer) List(ctx context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errors.New("list failed")
	}
	var names []string
	for name := range f.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeContainer) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errors.New("upload failed")
	}
	f.blobs[name] = contentType
	return nil
}

func (f *fakeContainer) Delete(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, name)
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeContainer) URL(name string) string {
	return "https://acct.blob.core.windows.net/images/" + name + "?sig=x"
}

func opener(c Container) ContainerOpener {
	return func(context.Context) (Container, error) { return c, nil }
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDirectories(t *testing.T) {
	dir, err := ProfileDirectory("dev-1")
	if err != nil || dir != "developers/dev-1/profile/" {
		t.Fatalf("unexpected profile dir %q, %v", dir, err)
	}
	dir, err = ProjectDirectory("dev-1", "skill-2", "proj-3")
	if err != nil || dir != "developers/dev-1/skills/skill-2/projects/proj-3/" {
		t.Fatalf("unexpected project dir %q, %v", dir, err)
	}
	if _, err := ProfileDirectory("../other"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := ProjectDirectory("dev", "", "p"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for empty segment, got %v", err)
	}
}

func TestCurrentWithoutImage(t *testing.T) {
	svc := NewImageService(opener(newFakeContainer()))
	img, err := svc.Current(context.Background(), "developers/dev-1/profile/")
	if err != nil || img != nil {
		t.Fatalf("expected no image, got %+v, %v", img, err)
	}
}

func TestReplaceDeletesOldAndUploadsNew(t *testing.T) {
	c := newFakeContainer()
	c.blobs["developers/dev-1/profile/old.png"] = "image/png"
	c.blobs["developers/dev-2/profile/keep.png"] = "image/png"
	svc := NewImageService(opener(c))

	img, err := svc.Replace(context.Background(), "developers/dev-1/profile/", pngBytes(t))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if img == nil || !strings.HasPrefix(img.Name, "developers/dev-1/profile/") || !strings.HasSuffix(img.Name, ".png") {
		t.Fatalf("unexpected image %+v", img)
	}
	if c.blobs[img.Name] != "image/png" {
		t.Fatalf("expected upload with content type, got %q", c.blobs[img.Name])
	}
	if _, ok := c.blobs["developers/dev-1/profile/old.png"]; ok {
		t.Fatal("old image should have been deleted")
	}
	if _, ok := c.blobs["developers/dev-2/profile/keep.png"]; !ok {
		t.Fatal("other developer's image must be untouched")
	}

	current, err := svc.Current(context.Background(), "developers/dev-1/profile/")
	if err != nil || current == nil || current.Name != img.Name {
		t.Fatalf("expected current image %q, got %+v, %v", img.Name, current, err)
	}
}

func TestReplaceRejectsNonImage(t *testing.T) {
	c := newFakeContainer()
	svc := NewImageService(opener(c))

	_, err := svc.Replace(context.Background(), "developers/dev-1/profile/", []byte("not an image"))
	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Op != "upload" {
		t.Fatalf("expected upload OpError, got %v", err)
	}
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
	if opErr.UserMessage() != "Failed to upload image. Please try again." {
		t.Fatalf("unexpected user message %q", opErr.UserMessage())
	}
	if len(c.blobs) != 0 {
		t.Fatal("nothing should be uploaded")
	}
}

func TestFailuresCarryUserMessages(t *testing.T) {
	c := newFakeContainer()
	c.failList = true
	svc := NewImageService(opener(c))

	_, err := svc.Current(context.Background(), "developers/dev-1/profile/")
	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.UserMessage() != "Failed to fetch image. Please try again." {
		t.Fatalf("unexpected fetch error %v", err)
	}

	err = svc.Delete(context.Background(), "developers/dev-1/profile/")
	if !errors.As(err, &opErr) || opErr.UserMessage() != "Failed to delete image. Please try again." {
		t.Fatalf("unexpected delete error %v", err)
	}
}

func TestDeleteRemovesEveryImageInDirectory(t *testing.T) {
	c := newFakeContainer()
	c.blobs["developers/d/skills/s/projects/p/a.png"] = "image/png"
	c.blobs["developers/d/skills/s/projects/p/b.png"] = "image/png"
	svc := NewImageService(opener(c))

	if err := svc.Delete(context.Background(), "developers/d/skills/s/projects/p/"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(c.blobs) != 0 || len(c.deleted) != 2 {
		t.Fatalf("expected both blobs deleted, left %v", c.blobs)
	}
}

func TestDetectImage(t *testing.T) {
	ct, ext, err := DetectImage(pngBytes(t))
	if err != nil || ct != "image/png" || ext != ".png" {
		t.Fatalf("unexpected detection %q %q %v", ct, ext, err)
	}
	if _, _, err := DetectImage(make([]byte, MaxImageBytes+1)); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}

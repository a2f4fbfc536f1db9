package handler

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/resumedash/internal/blob"
	"github.com/resumedash/internal/toast"
)

type fakeImages struct {
	mu         sync.Mutex
	current    *blob.Image
	replaced   []string
	deleted    []string
	replaceErr error
	fetchErr   error
}

func (f *fakeImages) Current(_ context.Context, dir string) (*blob.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, &blob.OpError{Op: "fetch", Err: f.fetchErr}
	}
	return f.current, nil
}

func (f *fakeImages) Replace(_ context.Context, dir string, data []byte) (*blob.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return nil, &blob.OpError{Op: "upload", Err: f.replaceErr}
	}
	if _, _, err := blob.DetectImage(data); err != nil {
		return nil, &blob.OpError{Op: "upload", Err: err}
	}
	f.replaced = append(f.replaced, dir)
	f.current = &blob.Image{Name: dir + "new.png", URL: "https://blob.example/images/" + dir + "new.png"}
	return f.current, nil
}

func (f *fakeImages) Delete(_ context.Context, dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, dir)
	f.current = nil
	return nil
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

func (h *harness) upload(t *testing.T, path string, data []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "avatar.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(data)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return h.client.do(req)
}

func TestUploadProfileImage(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "Admin")

	resp := h.upload(t, "/developer/dev-1/profile/image", pngBytes(t), jsonOnly)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if len(h.images.replaced) != 1 || h.images.replaced[0] != "developers/dev-1/profile/" {
		t.Fatalf("unexpected replace calls %v", h.images.replaced)
	}
	if !strings.Contains(resp.Body.String(), "new.png") {
		t.Fatalf("expected image in response, got %s", resp.Body.String())
	}

	list := h.api.toasts.For(h.auth.session.ID).List()
	if len(list) != 1 || list[0].Message != "Image uploaded successfully" {
		t.Fatalf("unexpected toasts %+v", list)
	}
}

func TestUploadImageFailureShowsToast(t *testing.T) {
	h := newHarness(t)
	h.images.replaceErr = errors.New("container unavailable")
	h.signIn(t, "Admin")

	resp := h.upload(t, "/developer/dev-1/profile/image", pngBytes(t), jsonOnly)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}

	list := h.api.toasts.For(h.auth.session.ID).List()
	if len(list) != 1 || list[0].Message != "Failed to upload image. Please try again." || list[0].Type != toast.Error {
		t.Fatalf("unexpected toasts %+v", list)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "Admin")

	resp := h.upload(t, "/developer/dev-1/profile/image", []byte("plain text"), htmx)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected toasts fragment, got %d", resp.Code)
	}
	name, _ := h.render.last(t)
	if name != "toasts.html" {
		t.Fatalf("expected toasts.html, got %s", name)
	}
	if len(h.images.replaced) != 0 {
		t.Fatal("expected nothing to be stored")
	}
}

func TestDeleteProfileImage(t *testing.T) {
	h := newHarness(t)
	h.images.current = &blob.Image{Name: "developers/dev-1/profile/a.png"}
	h.signIn(t, "Admin")

	req := httptest.NewRequest(http.MethodDelete, "/developer/dev-1/profile/image", nil)
	req.Header.Set("HX-Request", "true")
	resp := h.client.do(req)
	if resp.Code != http.StatusOK || resp.Header().Get("HX-Refresh") != "true" {
		t.Fatalf("unexpected delete response %d %v", resp.Code, resp.Header())
	}
	if len(h.images.deleted) != 1 || h.images.deleted[0] != "developers/dev-1/profile/" {
		t.Fatalf("unexpected delete calls %v", h.images.deleted)
	}
}

func TestProfilePageShowsFetchFailureToast(t *testing.T) {
	h := newHarness(t)
	h.remote.on(http.MethodGet, "/api/Developer/dev-1", http.StatusOK,
		`{"success":true,"data":{"id":"dev-1","name":"Ada","email":"ada@example.com"}}`)
	h.images.fetchErr = errors.New("timeout")
	h.signIn(t, "Admin")

	resp := h.get("/developer/dev-1/profile", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected page to render despite image failure, got %d", resp.Code)
	}
	name, data := h.render.last(t)
	if name != "profile.html" || data["title"] != "Edit Developer" {
		t.Fatalf("unexpected render %s %+v", name, data)
	}
	messages := toastMessages(data)
	if len(messages) != 1 || messages[0] != "Failed to fetch image. Please try again." {
		t.Fatalf("unexpected toasts %v", messages)
	}
}

func TestImageEndpointsWithoutStorage(t *testing.T) {
	h := newHarness(t)
	h.api.images = nil
	h.signIn(t, "Admin")

	resp := h.get("/developer/dev-1/profile/image", jsonOnly)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

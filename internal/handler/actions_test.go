package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/resumedash/internal/toast"
	"github.com/resumedash/internal/validation"
)

func validExperienceForm() url.Values {
	return url.Values{
		"experienceType": {"Work"},
		"startDate":      {"2020-01-01"},
		"endDate":        {"2021-06-30"},
		"locationName":   {"Ghent"},
		"title":          {"Backend developer"},
		"description":    {"Built internal APIs in Go."},
	}
}

func toastMessages(data map[string]interface{}) []string {
	list, _ := data["toasts"].([]toast.Toast)
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.Message)
	}
	return out
}

func TestCreateExperienceRefreshesOnSuccess(t *testing.T) {
	h := newHarness(t)
	h.remote.on(http.MethodPost, "/api/developer/dev-1/experience", http.StatusOK,
		`{"success":true,"message":"","data":{"experienceId":"exp-7"}}`)
	h.signIn(t, "Admin")

	resp := h.postForm("/developer/dev-1/experiences", validExperienceForm(), htmx)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("HX-Refresh"); got != "true" {
		t.Fatalf("expected HX-Refresh, got %q", got)
	}

	calls := h.remote.callsTo(http.MethodPost, "/api/developer/dev-1/experience")
	if len(calls) != 1 {
		t.Fatalf("expected one create call, got %d", len(calls))
	}
	if calls[0].body["experienceTypeName"] != "Work" || calls[0].body["locationName"] != "Ghent" {
		t.Fatalf("unexpected payload %+v", calls[0].body)
	}

	name, data := h.render.last(t)
	if name != "toasts.html" {
		t.Fatalf("expected toasts.html, got %s", name)
	}
	messages := toastMessages(data)
	if len(messages) != 1 || messages[0] != "Experience created successfully" {
		t.Fatalf("unexpected toasts %v", messages)
	}
}

func TestResubmitWaitsForDetachedCreate(t *testing.T) {
	h := newHarness(t)
	const createPath = "/api/developer/dev-1/experience"
	finish := h.remote.onGated(t, http.MethodPost, createPath, http.StatusOK,
		`{"success":true,"message":"","data":{"experienceId":"exp-7"}}`)
	h.signIn(t, "Admin")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	resp := h.postFormContext(ctx, "/developer/dev-1/experiences", validExperienceForm(), jsonOnly)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202 once the caller stopped waiting, got %d %s", resp.Code, resp.Body.String())
	}

	resp = h.postForm("/developer/dev-1/experiences", validExperienceForm(), jsonOnly)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 while the first create is still running, got %d", resp.Code)
	}
	if calls := h.remote.callsTo(http.MethodPost, createPath); len(calls) != 1 {
		t.Fatalf("expected one create call, got %d", len(calls))
	}

	finish()
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp = h.postForm("/developer/dev-1/experiences", validExperienceForm(), jsonOnly)
		if resp.Code != http.StatusConflict {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("submission stayed locked after the create finished")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 after the first create settled, got %d", resp.Code)
	}
	if calls := h.remote.callsTo(http.MethodPost, createPath); len(calls) != 2 {
		t.Fatalf("expected exactly two create calls, got %d", len(calls))
	}
}

func TestCreateExperienceFromJSONBody(t *testing.T) {
	h := newHarness(t)
	h.remote.on(http.MethodPost, "/api/developer/dev-1/experience", http.StatusOK,
		`{"success":true,"message":"","data":{"experienceId":"exp-8"}}`)
	h.signIn(t, "Admin")

	body := `{"experienceTypeName":"Education","startDate":"2018-09-01","endDate":"2020-06-30",` +
		`"locationName":"Leuven","title":"MSc","description":"Thesis on compilers."}`
	req := httptest.NewRequest(http.MethodPost, "/developer/dev-1/experiences", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp := h.client.do(req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", resp.Code, resp.Body.String())
	}

	calls := h.remote.callsTo(http.MethodPost, "/api/developer/dev-1/experience")
	if len(calls) != 1 || calls[0].body["experienceTypeName"] != "Education" {
		t.Fatalf("unexpected create calls %+v", calls)
	}
}

func TestCreateExperienceEndBeforeStartSkipsNetwork(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "Admin")

	values := validExperienceForm()
	values.Set("startDate", "2024-01-01")
	values.Set("endDate", "2023-12-31")

	resp := h.postForm("/developer/dev-1/experiences", values, jsonOnly)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}

	var body struct {
		Issues      []validation.Issue `json:"issues"`
		FieldErrors map[string]string  `json:"fieldErrors"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.FieldErrors["endDate"] != "End date must be after start date" {
		t.Fatalf("unexpected field errors %+v", body.FieldErrors)
	}
	if len(h.remote.callsTo(http.MethodPost, "/api/developer/dev-1/experience")) != 0 {
		t.Fatal("expected no api call for invalid input")
	}
}

func TestUpdateProfileRendersFormErrorsForHTMX(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "Admin")

	values := url.Values{
		"name":                    {"A"},
		"email":                   {"not-an-email"},
		"greetingTitle":           {"Hello"},
		"greetingMessage":         {"Welcome to my page"},
		"missionTitle":            {"Mission"},
		"missionDescription":      {"Ship things"},
		"itExperienceStartDate":   {"2015-09-01"},
		"workExperienceStartDate": {"2016-02-01"},
	}
	resp := h.postForm("/developer/dev-1/profile", values, htmx)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for htmx validation errors, got %d", resp.Code)
	}

	name, data := h.render.last(t)
	if name != "form_errors.html" {
		t.Fatalf("expected form_errors.html, got %s", name)
	}
	issues, _ := data["issues"].([]validation.Issue)
	fields := map[string]bool{}
	for _, issue := range issues {
		fields[issue.Field()] = true
	}
	if !fields["name"] || !fields["email"] || len(issues) != 2 {
		t.Fatalf("expected name and email issues, got %+v", issues)
	}
	if len(h.remote.callsTo(http.MethodPut, "/api/Developer/dev-1")) != 0 {
		t.Fatal("expected no update call")
	}
}

func TestUpdateProfileFailureShowsServerMessage(t *testing.T) {
	h := newHarness(t)
	h.remote.on(http.MethodPut, "/api/Developer/dev-1", http.StatusOK, `{"success":false,"message":"email already used"}`)
	h.signIn(t, "Admin")

	values := url.Values{
		"name":                    {"Ada Lovelace"},
		"email":                   {"ada@example.com"},
		"greetingTitle":           {"Hello"},
		"greetingMessage":         {"Welcome to my page"},
		"missionTitle":            {"Mission"},
		"missionDescription":      {"Ship things"},
		"itExperienceStartDate":   {"2015-09-01"},
		"workExperienceStartDate": {"2016-02-01"},
	}
	resp := h.postForm("/developer/dev-1/profile", values, jsonOnly)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "email already used") || !strings.Contains(resp.Body.String(), `"success":false`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}

	list := h.api.toasts.For(h.auth.session.ID).List()
	if len(list) != 1 || list[0].Type != toast.Error {
		t.Fatalf("expected one error toast, got %+v", list)
	}
}

func TestCreateDeveloperRedirectsToProfile(t *testing.T) {
	h := newHarness(t)
	h.remote.on(http.MethodPost, "/api/Developer/add-new-default", http.StatusOK,
		`{"success":true,"data":{"developerId":"dev-9"}}`)
	h.signIn(t, "Admin")

	resp := h.postForm("/developers", url.Values{}, nil)
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.Code)
	}
	if got := resp.Header().Get("Location"); got != "/developer/dev-9/profile" {
		t.Fatalf("unexpected redirect %q", got)
	}
}

func TestDeleteRequiresOpenModal(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "Admin")

	resp := h.postForm("/developer/dev-1/experiences/exp-1/delete", url.Values{}, htmx)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
	if len(h.remote.callsTo(http.MethodDelete, "/api/developer/dev-1/experience/exp-1")) != 0 {
		t.Fatal("expected no delete before confirmation")
	}
}

func TestDeleteClosesModalAfterSuccess(t *testing.T) {
	h := newHarness(t)
	h.remote.on(http.MethodDelete, "/api/developer/dev-1/experience/exp-1", http.StatusOK, `{"success":true}`)
	h.signIn(t, "Admin")

	resp := h.postForm("/developer/dev-1/experiences/exp-1/delete/open", url.Values{}, htmx)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	name, data := h.render.last(t)
	if name != "delete_modal.html" || data["open"] != true || data["title"] != "Delete experience?" {
		t.Fatalf("unexpected modal render %s %+v", name, data)
	}

	resp = h.postForm("/developer/dev-1/experiences/exp-1/delete", url.Values{}, htmx)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("HX-Refresh") != "true" {
		t.Fatal("expected exactly one refresh after delete")
	}
	if calls := h.remote.callsTo(http.MethodDelete, "/api/developer/dev-1/experience/exp-1"); len(calls) != 1 {
		t.Fatalf("expected one delete call, got %d", len(calls))
	}
	_, data = h.render.last(t)
	messages := toastMessages(data)
	if len(messages) != 1 || messages[0] != "Experience with id exp-1 deleted successfully" {
		t.Fatalf("unexpected toasts %v", messages)
	}

	resp = h.postForm("/developer/dev-1/experiences/exp-1/delete", url.Values{}, htmx)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected modal to be closed after success, got %d", resp.Code)
	}
}

func TestDeleteFailureKeepsModalOpen(t *testing.T) {
	h := newHarness(t)
	h.remote.on(http.MethodDelete, "/api/developer/dev-1/experience/exp-1", http.StatusOK, `{"success":false,"message":"locked"}`)
	h.signIn(t, "Admin")

	h.postForm("/developer/dev-1/experiences/exp-1/delete/open", url.Values{}, htmx)

	resp := h.postForm("/developer/dev-1/experiences/exp-1/delete", url.Values{}, htmx)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("HX-Refresh") != "" {
		t.Fatal("expected no refresh after a failed delete")
	}
	name, data := h.render.last(t)
	if name != "delete_modal.html" || data["open"] != true || data["error"] != "locked" {
		t.Fatalf("expected modal to stay open with error, got %s %+v", name, data)
	}

	h.postForm("/developer/dev-1/experiences/exp-1/delete", url.Values{}, htmx)
	if calls := h.remote.callsTo(http.MethodDelete, "/api/developer/dev-1/experience/exp-1"); len(calls) != 2 {
		t.Fatalf("expected retry while modal stays open, got %d calls", len(calls))
	}
}

func TestDeleteExecuteLockedUntilRemoteFinishes(t *testing.T) {
	h := newHarness(t)
	const deletePath = "/api/developer/dev-1/experience/exp-1"
	finish := h.remote.onGated(t, http.MethodDelete, deletePath, http.StatusOK, `{"success":true}`)
	h.signIn(t, "Admin")

	h.postForm("/developer/dev-1/experiences/exp-1/delete/open", url.Values{}, htmx)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	resp := h.postFormContext(ctx, "/developer/dev-1/experiences/exp-1/delete", url.Values{}, jsonOnly)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202 once the caller stopped waiting, got %d %s", resp.Code, resp.Body.String())
	}

	resp = h.postForm("/developer/dev-1/experiences/exp-1/delete", url.Values{}, jsonOnly)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 while the delete is still running, got %d", resp.Code)
	}
	finish()
	if calls := h.remote.callsTo(http.MethodDelete, deletePath); len(calls) != 1 {
		t.Fatalf("expected one delete call, got %d", len(calls))
	}
}

func TestOpenDeleteRequiresPost(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "Admin")

	resp := h.get("/developer/dev-1/experiences/exp-1/delete", htmx)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected no GET route for the delete modal, got %d", resp.Code)
	}
	resp = h.postForm("/developer/dev-1/experiences/exp-1/delete", url.Values{}, htmx)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected the modal to stay closed, got %d", resp.Code)
	}
}

func TestCancelDeleteClosesModal(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "Admin")

	h.postForm("/developer/dev-1/experiences/exp-1/delete/open", url.Values{}, htmx)
	resp := h.postForm("/developer/dev-1/experiences/exp-1/delete/cancel", url.Values{}, jsonOnly)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"open":false`) {
		t.Fatalf("unexpected cancel response %d %s", resp.Code, resp.Body.String())
	}

	resp = h.postForm("/developer/dev-1/experiences/exp-1/delete", url.Values{}, htmx)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 after cancel, got %d", resp.Code)
	}
}

func TestDeveloperDeleteNavigatesToDashboard(t *testing.T) {
	h := newHarness(t)
	h.remote.on(http.MethodDelete, "/api/Developer/dev-1", http.StatusOK, `{"success":true}`)
	h.signIn(t, "Admin")

	h.postForm("/developer/dev-1/delete/open", url.Values{}, htmx)
	resp := h.postForm("/developer/dev-1/delete", url.Values{}, htmx)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("HX-Redirect"); got != "/dashboard" {
		t.Fatalf("expected HX-Redirect to dashboard, got %q", got)
	}
	if resp.Header().Get("HX-Refresh") != "" {
		t.Fatal("expected redirect instead of refresh")
	}
}

func TestHideToast(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "Admin")

	shown := h.api.toasts.For(h.auth.session.ID).Show("Saved", toast.Success)

	resp := h.get("/toasts", jsonOnly)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "Saved") {
		t.Fatalf("unexpected list response %d %s", resp.Code, resp.Body.String())
	}

	resp = h.postForm("/toasts/"+strconv.FormatInt(shown.ID, 10)+"/hide", url.Values{}, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if list := h.api.toasts.For(h.auth.session.ID).List(); len(list) != 0 {
		t.Fatalf("expected toast to be hidden, got %+v", list)
	}

	resp = h.postForm("/toasts/999/hide", url.Values{}, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected hiding an unknown id to be a no-op, got %d", resp.Code)
	}
	resp = h.postForm("/toasts/abc/hide", url.Values{}, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad id, got %d", resp.Code)
	}
}

func TestErrorResponsesAreEnglish(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "Admin")

	resp := h.postForm("/toasts/not-a-number/hide", url.Values{}, jsonOnly)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Invalid toast id" {
		t.Fatalf("unexpected error message %q", body.Error)
	}

	resp = h.postForm("/developer/dev-1/experiences/exp-1/delete", url.Values{}, jsonOnly)
	if resp.Code != http.StatusConflict || !strings.Contains(resp.Body.String(), "Confirm the delete before executing it") {
		t.Fatalf("unexpected delete response %d %s", resp.Code, resp.Body.String())
	}
}

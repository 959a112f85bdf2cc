package workshop

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"promptbox/internal/domain"
	"promptbox/internal/domain/models"
	"promptbox/internal/domain/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePromptStore implements services.PromptService in memory.
type fakePromptStore struct {
	prompts    map[string]*models.Prompt
	failToggle bool
}

func newFakePromptStore() *fakePromptStore {
	return &fakePromptStore{prompts: map[string]*models.Prompt{}}
}

func (f *fakePromptStore) add(id string) *models.Prompt {
	p := &models.Prompt{ID: id, Name: "prompt " + id, Tags: []string{}}
	f.prompts[id] = p
	return p
}

func (f *fakePromptStore) CreatePrompt(ctx context.Context, req *services.CreatePromptRequest) (*models.Prompt, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakePromptStore) GetPrompt(ctx context.Context, id string) (*models.Prompt, error) {
	p, ok := f.prompts[id]
	if !ok {
		return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePromptStore) ListPrompts(ctx context.Context, req *services.ListPromptsRequest) ([]models.Prompt, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakePromptStore) UpdatePrompt(ctx context.Context, id string, req *services.UpdatePromptRequest) (*models.Prompt, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakePromptStore) ToggleFavorite(ctx context.Context, id string) (*models.Prompt, error) {
	if f.failToggle {
		return nil, fmt.Errorf("store unavailable")
	}
	p, ok := f.prompts[id]
	if !ok {
		return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}
	p.Favorite = !p.Favorite
	cp := *p
	return &cp, nil
}

func (f *fakePromptStore) DeletePrompt(ctx context.Context, id string) error {
	if _, ok := f.prompts[id]; !ok {
		return fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}
	delete(f.prompts, id)
	return nil
}

// fakeVersionStore implements services.VersionService in memory.
type fakeVersionStore struct {
	byPrompt map[string][]models.Version
	nextID   int
}

func newFakeVersionStore() *fakeVersionStore {
	return &fakeVersionStore{byPrompt: map[string][]models.Version{}}
}

func (f *fakeVersionStore) Append(ctx context.Context, promptID string, req *services.CreateVersionRequest) (*models.Version, error) {
	f.nextID++
	v := models.Version{
		ID:        fmt.Sprintf("v-%d", f.nextID),
		PromptID:  promptID,
		Number:    len(f.byPrompt[promptID]) + 1,
		Content:   req.Content,
		Changelog: req.Changelog,
	}
	f.byPrompt[promptID] = append(f.byPrompt[promptID], v)
	return &v, nil
}

func (f *fakeVersionStore) List(ctx context.Context, promptID string) ([]models.Version, error) {
	stored := f.byPrompt[promptID]
	// Newest first, as the real store returns them
	out := make([]models.Version, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}

func (f *fakeVersionStore) Restore(ctx context.Context, versionID string) (string, error) {
	for _, versions := range f.byPrompt {
		for _, v := range versions {
			if v.ID == versionID {
				return v.Content, nil
			}
		}
	}
	return "", fmt.Errorf("version %s: %w", versionID, domain.ErrNotFound)
}

func newTestSession(t *testing.T) (*Session, *fakePromptStore, *fakeVersionStore) {
	t.Helper()
	prompts := newFakePromptStore()
	versions := newFakeVersionStore()
	return NewSession(prompts, versions, testLogger()), prompts, versions
}

func TestOpenInitializesDraftFromLatestVersion(t *testing.T) {
	s, prompts, versions := newTestSession(t)
	prompts.add("p1")
	versions.Append(context.Background(), "p1", &services.CreateVersionRequest{Content: "first"})
	versions.Append(context.Background(), "p1", &services.CreateVersionRequest{Content: "second"})

	if err := s.Open(context.Background(), "p1"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if got := s.Draft(); got != "second" {
		t.Errorf("draft = %q, want %q", got, "second")
	}
}

func TestOpenWithoutVersionsStartsEmpty(t *testing.T) {
	s, prompts, _ := newTestSession(t)
	prompts.add("p1")

	if err := s.Open(context.Background(), "p1"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if got := s.Draft(); got != "" {
		t.Errorf("draft = %q, want empty", got)
	}
}

func TestSetDraftReconcilesBindings(t *testing.T) {
	s, prompts, _ := newTestSession(t)
	prompts.add("p1")
	if err := s.Open(context.Background(), "p1"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	s.SetDraft("Hello {{name}}, welcome to {{place}}!")
	if !s.SetVariable("name", "Ana") {
		t.Fatal("SetVariable on bound name failed")
	}

	// Edit keeps name, drops place, adds time
	s.SetDraft("Hello {{name}}, it is {{time}}")

	got := s.Bindings()
	names := make([]string, len(got))
	values := map[string]string{}
	for i, b := range got {
		names[i] = b.Name
		values[b.Name] = b.Value
	}

	if want := []string{"name", "time"}; !reflect.DeepEqual(names, want) {
		t.Errorf("binding names = %v, want %v", names, want)
	}
	if values["name"] != "Ana" {
		t.Errorf("name value lost across edit: %q", values["name"])
	}
	if values["time"] != "" {
		t.Errorf("new binding not empty: %q", values["time"])
	}
}

func TestPreviewUsesFallbackForMissingValues(t *testing.T) {
	s, prompts, _ := newTestSession(t)
	prompts.add("p1")
	if err := s.Open(context.Background(), "p1"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	s.SetDraft("Hello {{name}}, welcome to {{place}}!")
	s.SetVariable("name", "Ana")

	if got, want := s.Preview(), "Hello Ana, welcome to [place]!"; got != want {
		t.Errorf("preview = %q, want %q", got, want)
	}

	// Preview refreshes once a variable changes
	s.SetVariable("place", "Lisbon")
	if got, want := s.Preview(), "Hello Ana, welcome to Lisbon!"; got != want {
		t.Errorf("preview after edit = %q, want %q", got, want)
	}
}

func TestSaveVersionAppendsDraft(t *testing.T) {
	s, prompts, versions := newTestSession(t)
	prompts.add("p1")
	if err := s.Open(context.Background(), "p1"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	s.SetDraft("a")
	v1, err := s.SaveVersion(context.Background(), nil)
	if err != nil {
		t.Fatalf("SaveVersion: %v", err)
	}
	s.SetDraft("b")
	v2, err := s.SaveVersion(context.Background(), nil)
	if err != nil {
		t.Fatalf("SaveVersion: %v", err)
	}

	if v1.Number != 1 || v2.Number != 2 {
		t.Errorf("version numbers = %d, %d; want 1, 2", v1.Number, v2.Number)
	}
	if len(versions.byPrompt["p1"]) != 2 {
		t.Errorf("stored versions = %d, want 2", len(versions.byPrompt["p1"]))
	}
}

func TestSaveVersionPrefersOptimizedVariant(t *testing.T) {
	s, prompts, versions := newTestSession(t)
	prompts.add("p1")
	if err := s.Open(context.Background(), "p1"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	s.SetDraft("raw draft")
	s.SetOptimized("polished draft")

	v, err := s.SaveVersion(context.Background(), nil)
	if err != nil {
		t.Fatalf("SaveVersion: %v", err)
	}

	if v.Content != "polished draft" {
		t.Errorf("saved content = %q, want optimized variant", v.Content)
	}
	// The optimized text became the draft and the slot cleared
	if got := s.Draft(); got != "polished draft" {
		t.Errorf("draft after save = %q", got)
	}
	v2, _ := s.SaveVersion(context.Background(), nil)
	if v2.Content != "polished draft" {
		t.Errorf("second save content = %q, want draft", v2.Content)
	}
	if len(versions.byPrompt["p1"]) != 2 {
		t.Errorf("stored versions = %d, want 2", len(versions.byPrompt["p1"]))
	}
}

func TestRestoreStagesContentWithoutAppending(t *testing.T) {
	s, prompts, versions := newTestSession(t)
	prompts.add("p1")
	v1, _ := versions.Append(context.Background(), "p1", &services.CreateVersionRequest{Content: "a"})
	versions.Append(context.Background(), "p1", &services.CreateVersionRequest{Content: "b"})

	if err := s.Open(context.Background(), "p1"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := s.Draft(); got != "b" {
		t.Fatalf("draft = %q, want %q", got, "b")
	}

	if err := s.Restore(context.Background(), v1.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if got := s.Draft(); got != "a" {
		t.Errorf("draft after restore = %q, want %q", got, "a")
	}
	history, err := s.History(context.Background())
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("history length changed on restore: %d, want 2", len(history))
	}
}

func TestRestoreUnknownVersion(t *testing.T) {
	s, prompts, _ := newTestSession(t)
	prompts.add("p1")
	if err := s.Open(context.Background(), "p1"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.SetDraft("keep me")

	err := s.Restore(context.Background(), "missing")
	if err == nil {
		t.Fatal("Restore on unknown version succeeded")
	}
	if got := s.Draft(); got != "keep me" {
		t.Errorf("draft changed on failed restore: %q", got)
	}
}

func TestToggleFavoriteRollsBackOnFailure(t *testing.T) {
	s, prompts, _ := newTestSession(t)
	prompts.add("p1")
	if err := s.Open(context.Background(), "p1"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	prompts.failToggle = true
	if err := s.ToggleFavorite(context.Background()); err == nil {
		t.Fatal("ToggleFavorite succeeded despite store failure")
	}
	if s.Prompt().Favorite {
		t.Error("optimistic flip not rolled back")
	}

	prompts.failToggle = false
	if err := s.ToggleFavorite(context.Background()); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if !s.Prompt().Favorite {
		t.Error("favorite not set after successful toggle")
	}
}

func TestDeleteClosesSession(t *testing.T) {
	s, prompts, _ := newTestSession(t)
	prompts.add("p1")
	if err := s.Open(context.Background(), "p1"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := s.Delete(context.Background()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := s.SaveVersion(context.Background(), nil); err == nil {
		t.Error("SaveVersion on closed session succeeded")
	}
	if _, ok := prompts.prompts["p1"]; ok {
		t.Error("prompt still in store after delete")
	}
}

// Package workshop holds the stateful editing session behind the prompt
// workshop screen: the working draft, its variable bindings, the cached
// preview, and the save/restore flow against the stores. One Session serves
// one open prompt.
package workshop

import (
	"context"
	"log/slog"
	"sync"

	"promptbox/internal/domain"
	"promptbox/internal/domain/models"
	"promptbox/internal/domain/services"
	"promptbox/internal/template"
)

// Session owns the editing state for one open prompt. The draft lives only
// here until an explicit save turns it into a version; restore stages old
// content into the draft without touching history.
//
// Draft and variable edits stay responsive while a save is in flight: state
// is guarded separately from the store call, and saves serialize among
// themselves so rapid successive saves get strictly increasing version
// numbers.
type Session struct {
	prompts  services.PromptService
	versions services.VersionService
	logger   *slog.Logger

	mu        sync.Mutex
	prompt    *models.Prompt
	draft     string
	bindings  template.Bindings
	preview   string
	hasView   bool // preview is current for draft+bindings
	optimized string
	hasOpt    bool
	closed    bool

	saveMu sync.Mutex // serializes appends
}

// NewSession creates a session bound to the given stores.
func NewSession(prompts services.PromptService, versions services.VersionService, logger *slog.Logger) *Session {
	return &Session{
		prompts:  prompts,
		versions: versions,
		logger:   logger,
	}
}

// Open loads the prompt and initializes the draft from the latest version's
// content, or the empty string when the prompt has no versions yet.
func (s *Session) Open(ctx context.Context, promptID string) error {
	prompt, err := s.prompts.GetPrompt(ctx, promptID)
	if err != nil {
		return err
	}

	history, err := s.versions.List(ctx, promptID)
	if err != nil {
		return err
	}

	draft := ""
	if len(history) > 0 {
		draft = history[0].Content // newest first
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt = prompt
	s.closed = false
	s.hasOpt = false
	s.optimized = ""
	s.bindings = template.Bindings{} // fresh session, no carried values
	s.stageDraft(draft)
	return nil
}

// Prompt returns the prompt this session edits.
func (s *Session) Prompt() *models.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt
}

// Draft returns the current working text.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft replaces the working text, re-extracts its placeholders and
// reconciles the variable bindings: values for surviving names are kept,
// new names start empty, stale names are dropped.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stageDraft(text)
}

// stageDraft updates draft and bindings. Caller holds mu.
func (s *Session) stageDraft(text string) {
	s.draft = text
	s.bindings = template.Reconcile(s.bindings, template.Extract(text))
	s.hasView = false
}

// Bindings returns the current variable bindings in presentation order.
func (s *Session) Bindings() []template.Binding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bindings.All()
}

// SetVariable assigns a value to a currently bound placeholder name. It
// reports false for names the draft no longer contains.
func (s *Session) SetVariable(name, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.bindings.Set(name, value) {
		return false
	}
	s.hasView = false
	return true
}

// Preview renders the draft with the current bindings. The result is cached
// until the draft or a variable changes.
func (s *Session) Preview() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasView {
		s.preview = template.Render(s.draft, s.bindings)
		s.hasView = true
	}
	return s.preview
}

// SetOptimized stages an externally computed variant of the draft. While
// active it is what SaveVersion persists.
func (s *Session) SetOptimized(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.optimized = text
	s.hasOpt = true
}

// ClearOptimized discards the staged optimized variant.
func (s *Session) ClearOptimized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.optimized = ""
	s.hasOpt = false
}

// SaveVersion appends the current draft (or the active optimized variant)
// as the prompt's next version. Saves serialize among themselves, so two
// rapid invocations produce two versions numbered in invocation order. When
// an optimized variant was saved it becomes the draft and is cleared.
func (s *Session) SaveVersion(ctx context.Context, changelog *string) (*models.Version, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.closed || s.prompt == nil {
		s.mu.Unlock()
		return nil, &domain.PreconditionError{Message: "session has no open prompt"}
	}
	promptID := s.prompt.ID
	content := s.draft
	usedOptimized := s.hasOpt
	if usedOptimized {
		content = s.optimized
	}
	s.mu.Unlock()

	version, err := s.versions.Append(ctx, promptID, &services.CreateVersionRequest{
		Content:   content,
		Changelog: changelog,
	})
	if err != nil {
		return nil, err
	}

	if usedOptimized {
		s.mu.Lock()
		s.stageDraft(content)
		s.optimized = ""
		s.hasOpt = false
		s.mu.Unlock()
	}

	s.logger.Info("draft saved",
		"prompt_id", promptID,
		"version_num", version.Number,
	)

	return version, nil
}

// Restore stages the content of an earlier version as the working draft.
// History is untouched; the restored content only becomes a version when the
// user saves explicitly.
func (s *Session) Restore(ctx context.Context, versionID string) error {
	content, err := s.versions.Restore(ctx, versionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stageDraft(content)
	return nil
}

// History lists the open prompt's versions, newest first.
func (s *Session) History(ctx context.Context) ([]models.Version, error) {
	s.mu.Lock()
	if s.closed || s.prompt == nil {
		s.mu.Unlock()
		return nil, &domain.PreconditionError{Message: "session has no open prompt"}
	}
	promptID := s.prompt.ID
	s.mu.Unlock()

	return s.versions.List(ctx, promptID)
}

// ToggleFavorite flips the favorite flag optimistically: the local prompt is
// updated first so the UI reflects the change immediately, and rolled back
// if the store call fails.
func (s *Session) ToggleFavorite(ctx context.Context) error {
	s.mu.Lock()
	if s.closed || s.prompt == nil {
		s.mu.Unlock()
		return &domain.PreconditionError{Message: "session has no open prompt"}
	}
	promptID := s.prompt.ID
	s.prompt.Favorite = !s.prompt.Favorite
	s.mu.Unlock()

	updated, err := s.prompts.ToggleFavorite(ctx, promptID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Roll back the optimistic flip
		s.prompt.Favorite = !s.prompt.Favorite
		return err
	}
	s.prompt = updated
	return nil
}

// Delete removes the prompt and its versions and closes the session.
func (s *Session) Delete(ctx context.Context) error {
	s.mu.Lock()
	if s.closed || s.prompt == nil {
		s.mu.Unlock()
		return &domain.PreconditionError{Message: "session has no open prompt"}
	}
	promptID := s.prompt.ID
	s.mu.Unlock()

	if err := s.prompts.DeletePrompt(ctx, promptID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.prompt = nil
	s.stageDraft("")
	return nil
}

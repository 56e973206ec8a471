package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"resume-builder/internal/domain"
)

// AuthSession supplies the bearer token for remote calls made on behalf of
// one user.
type AuthSession interface {
	Token() string
}

// StaticToken is an AuthSession holding a fixed token.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

type Suggester interface {
	Suggest(ctx context.Context, prompt string) (string, error)
}

type JobDescriptionFetcher interface {
	FetchJobDescription(ctx context.Context, url string) (JobDescription, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, rec domain.ResumeRecord, jd *JobDescription) (ATSReport, error)
}

// LocalAnalyzer scores in-process.
type LocalAnalyzer struct {
	Scorer ATSScorer
}

func (a LocalAnalyzer) Analyze(_ context.Context, rec domain.ResumeRecord, jd *JobDescription) (ATSReport, error) {
	return a.Scorer.Score(rec.ResumeDocument, jd), nil
}

// SessionObserver is told about background outcomes. Methods must not block.
type SessionObserver interface {
	SaveFinished(kind string, err error)
	ExportFinished(err error)
	ResponseDiscarded(kind string)
}

type nopObserver struct{}

func (nopObserver) SaveFinished(string, error) {}
func (nopObserver) ExportFinished(error)       {}
func (nopObserver) ResponseDiscarded(string)   {}

// Save kinds reported to SessionObserver.
const (
	SaveExplicit = "explicit"
	SaveAuto     = "auto"
)

// SessionDeps are shared by every session a registry creates.
type SessionDeps struct {
	// NewStore binds the storage client to one user and their credentials.
	NewStore        func(owner string, auth AuthSession) ResumeStore
	Exporter        *Exporter
	Templates       *TemplateCatalog
	Suggester       Suggester
	JobDescriptions JobDescriptionFetcher
	Analyzer        Analyzer
	Observer        SessionObserver
	AutoSaveDelay   time.Duration
	BulletCount     int
	SaveTimeout     time.Duration
}

// SessionState is a read-only view of a session.
type SessionState struct {
	ID             string                `json:"id"`
	ServerID       string                `json:"serverId,omitempty"`
	Document       domain.ResumeDocument `json:"document"`
	TemplateID     string                `json:"template"`
	SectionOrder   domain.SectionOrder   `json:"sectionOrder"`
	ReorderMode    bool                  `json:"reorderMode"`
	Dragging       domain.SectionID      `json:"dragging,omitempty"`
	Revision       uint64                `json:"revision"`
	Saving         bool                  `json:"saving"`
	Exporting      bool                  `json:"exporting"`
	JobDescription *JobDescription       `json:"jobDescription,omitempty"`
}

// SessionInit seeds a new session.
type SessionInit struct {
	Owner      string
	Auth       AuthSession
	Document   domain.ResumeDocument
	ServerID   string
	TemplateID string
	Order      domain.SectionOrder
	Title      string
}

// Session is one user's editing session. All document and order mutations
// are serialised by mu; network calls run on snapshots outside it.
type Session struct {
	id    string
	owner string
	title string
	deps  SessionDeps
	obs   SessionObserver

	mu         sync.Mutex
	editor     *Editor
	reorder    *Reorderer
	templateID string
	revision   uint64
	saving     bool
	exporting  bool
	jd         *JobDescription
	closed     bool

	previewRev     uint64
	previewReorder bool
	previewHTML    string

	gateway  *PersistenceGateway
	autosave *Debouncer
	tokens   *RequestTokens
}

func newSession(id string, deps SessionDeps, init SessionInit) *Session {
	s := &Session{
		id:     id,
		owner:  init.Owner,
		title:  init.Title,
		deps:   deps,
		obs:    deps.Observer,
		tokens: NewRequestTokens(),
	}
	if s.obs == nil {
		s.obs = nopObserver{}
	}
	if s.deps.Templates == nil {
		s.deps.Templates = DefaultTemplateCatalog()
	}
	if s.deps.Analyzer == nil {
		s.deps.Analyzer = LocalAnalyzer{}
	}
	s.templateID = s.deps.Templates.Resolve(init.TemplateID).ID

	opts := []EditorOption{WithChangeHook(s.changedLocked)}
	if deps.BulletCount > 0 {
		opts = append(opts, WithBulletDescriptions(deps.BulletCount))
	}
	s.editor = NewEditor(init.Document, opts...)
	order := init.Order
	if order == nil {
		order = domain.DefaultSectionOrder()
	}
	s.reorder = NewReorderer(order, s.changedLocked)

	var store ResumeStore
	if deps.NewStore != nil {
		auth := init.Auth
		if auth == nil {
			auth = StaticToken("")
		}
		store = deps.NewStore(init.Owner, auth)
	}
	s.gateway = NewPersistenceGateway(store, init.ServerID)
	delay := deps.AutoSaveDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	s.autosave = NewDebouncer(delay, s.autoSave)
	return s
}

func (s *Session) ID() string    { return s.id }
func (s *Session) Owner() string { return s.owner }

// changedLocked runs after every successful mutation with mu held.
func (s *Session) changedLocked() {
	s.revision++
	if s.editor != nil && s.gateway != nil && s.gateway.store != nil && s.editor.doc.HasRequiredFields() {
		s.autosave.Trigger()
	}
}

// Edit runs fn against the editor under the session lock.
func (s *Session) Edit(fn func(e *Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionNotFound
	}
	return fn(s.editor)
}

// Reorder runs fn against the reorder controller under the session lock.
func (s *Session) Reorder(fn func(r *Reorderer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionNotFound
	}
	return fn(s.reorder)
}

// SetTemplate selects the active template.
func (s *Session) SetTemplate(id string) error {
	tpl, err := s.deps.Templates.Get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.templateID != tpl.ID {
		s.templateID = tpl.ID
		s.changedLocked()
	}
	return nil
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	dragging, _ := s.reorder.Dragging()
	st := SessionState{
		ID:           s.id,
		ServerID:     s.gateway.ServerID(),
		Document:     s.editor.Document(),
		TemplateID:   s.templateID,
		SectionOrder: s.reorder.Order(),
		ReorderMode:  s.reorder.Enabled(),
		Dragging:     dragging,
		Revision:     s.revision,
		Saving:       s.saving,
		Exporting:    s.exporting,
	}
	if s.jd != nil {
		jd := *s.jd
		st.JobDescription = &jd
	}
	return st
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{Document: s.editor.Document(), TemplateID: s.templateID, Order: s.reorder.Order()}
}

func (s *Session) recordLocked() domain.ResumeRecord {
	rec := domain.ResumeRecord{
		ResumeDocument: s.editor.Document(),
		Template:       s.templateID,
		SectionOrder:   s.reorder.Order(),
		Title:          s.title,
	}
	return rec
}

// Preview renders the live preview. The HTML is cached until the next
// mutation.
func (s *Session) Preview() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reorder := s.reorder.Enabled()
	if s.previewHTML != "" && s.previewRev == s.revision && s.previewReorder == reorder {
		return s.previewHTML, nil
	}
	snap := s.snapshotLocked()
	tpl := s.deps.Templates.Resolve(snap.TemplateID)
	html, err := RenderHTML(Render(snap.Document, tpl, snap.Order, RenderOptions{Mode: ModePreview, ReorderMode: reorder}))
	if err != nil {
		return "", err
	}
	s.previewHTML, s.previewRev, s.previewReorder = html, s.revision, reorder
	return html, nil
}

// Save persists the current document. Only one save may be in flight.
func (s *Session) Save(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", ErrSessionNotFound
	}
	if s.saving {
		s.mu.Unlock()
		return "", ErrSaveInFlight
	}
	s.saving = true
	rec := s.recordLocked()
	s.mu.Unlock()

	id, err := s.save(ctx, rec)

	s.mu.Lock()
	s.saving = false
	s.mu.Unlock()
	s.obs.SaveFinished(SaveExplicit, err)
	if err != nil {
		slog.Error("explicit save failed", "session", s.id, "error", err)
	}
	return id, err
}

func (s *Session) save(ctx context.Context, rec domain.ResumeRecord) (string, error) {
	if s.gateway.store == nil {
		return "", fmt.Errorf("save resume: no store configured")
	}
	if s.deps.SaveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.deps.SaveTimeout)
		defer cancel()
	}
	return s.gateway.Save(ctx, rec)
}

// autoSave is the debounced background save. Failures are logged only.
func (s *Session) autoSave() {
	s.mu.Lock()
	if s.closed || !s.editor.doc.HasRequiredFields() {
		s.mu.Unlock()
		return
	}
	if s.saving {
		// Retry after the current save settles.
		s.autosave.Trigger()
		s.mu.Unlock()
		return
	}
	s.saving = true
	rec := s.recordLocked()
	s.mu.Unlock()

	_, err := s.save(context.Background(), rec)

	s.mu.Lock()
	s.saving = false
	s.mu.Unlock()
	s.obs.SaveFinished(SaveAuto, err)
	if err != nil {
		slog.Warn("auto-save failed", "session", s.id, "error", err)
	}
}

// Export saves first and exports the saved snapshot. A failed save aborts
// the export so the stored record always matches what was exported.
func (s *Session) Export(ctx context.Context) (*Artifact, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if s.exporting {
		s.mu.Unlock()
		return nil, ErrExportInFlight
	}
	snap := s.snapshotLocked()
	if err := CheckExportable(snap.Document); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if s.saving {
		s.mu.Unlock()
		return nil, ErrSaveInFlight
	}
	s.exporting, s.saving = true, true
	rec := s.recordLocked()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.exporting = false
		s.mu.Unlock()
	}()

	_, err := s.save(ctx, rec)
	s.mu.Lock()
	s.saving = false
	s.mu.Unlock()
	s.obs.SaveFinished(SaveExplicit, err)
	if err != nil {
		s.obs.ExportFinished(err)
		slog.Error("export aborted: save failed", "session", s.id, "error", err)
		return nil, err
	}

	if s.deps.Exporter == nil {
		err := errors.New("export: no exporter configured")
		s.obs.ExportFinished(err)
		return nil, err
	}
	art, err := s.deps.Exporter.Export(ctx, s.owner, snap)
	s.obs.ExportFinished(err)
	if err != nil {
		slog.Error("export failed", "session", s.id, "error", err)
		return nil, err
	}
	return art, nil
}

// Suggest asks the AI for text and writes it into target. A response is
// dropped with ErrStaleResponse when a newer request for the same target was
// issued meanwhile. An empty suggestion leaves the field unchanged.
func (s *Session) Suggest(ctx context.Context, target SuggestionTarget, prompt string) (string, error) {
	if s.deps.Suggester == nil {
		return "", errors.New("suggest: no AI client configured")
	}
	key := "suggest:" + target.String()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", ErrSessionNotFound
	}
	if prompt == "" {
		prompt = DefaultSuggestionPrompt(s.editor.doc, target)
	}
	token := s.tokens.Issue(key)
	s.mu.Unlock()

	text, err := s.deps.Suggester.Suggest(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("suggest %s: %w", target, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrSessionNotFound
	}
	if !s.tokens.Current(key, token) {
		s.obs.ResponseDiscarded("suggest")
		slog.Debug("discarding stale suggestion", "session", s.id, "target", target.String())
		return "", ErrStaleResponse
	}
	if text == "" {
		return "", nil
	}
	if err := target.apply(s.editor, text); err != nil {
		return "", err
	}
	return text, nil
}

// FetchJobDescription loads a posting to use as ATS context.
func (s *Session) FetchJobDescription(ctx context.Context, url string) (JobDescription, error) {
	if s.deps.JobDescriptions == nil {
		return JobDescription{}, errors.New("fetch job description: no client configured")
	}
	const key = "jd"
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return JobDescription{}, ErrSessionNotFound
	}
	token := s.tokens.Issue(key)
	s.mu.Unlock()

	jd, err := s.deps.JobDescriptions.FetchJobDescription(ctx, url)
	if err != nil {
		return JobDescription{}, err
	}
	if jd.URL == "" {
		jd.URL = url
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return JobDescription{}, ErrSessionNotFound
	}
	if !s.tokens.Current(key, token) {
		s.obs.ResponseDiscarded(key)
		slog.Debug("discarding stale job description", "session", s.id, "url", url)
		return JobDescription{}, ErrStaleResponse
	}
	s.jd = &jd
	return jd, nil
}

// SetJobDescription stores pasted job text.
func (s *Session) SetJobDescription(jd JobDescription) {
	s.tokens.Issue("jd")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jd = &jd
}

// Analyze scores the current document against the stored job description.
func (s *Session) Analyze(ctx context.Context) (ATSReport, error) {
	s.mu.Lock()
	rec := s.recordLocked()
	var jd *JobDescription
	if s.jd != nil {
		copied := *s.jd
		jd = &copied
	}
	s.mu.Unlock()
	return s.deps.Analyzer.Analyze(ctx, rec, jd)
}

// Close discards the session. A pending auto-save is cancelled.
func (s *Session) Close() {
	s.autosave.Stop()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// ABOUTME: Session owns the conversation state and turn-taking for one onboarding chat
// ABOUTME: Intercepts reserved commands, forwards other input to the generator, and summarizes on expiry
package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/kit-onboarding/internal/config"
	"github.com/harper/kit-onboarding/internal/knowledge"
	"github.com/harper/kit-onboarding/internal/llm"
	"github.com/harper/kit-onboarding/internal/models"
	"github.com/harper/kit-onboarding/internal/summary"
	"go.uber.org/zap"
)

// ErrorMarker prefixes every generation failure shown to the user
const ErrorMarker = "Error communicating with the API"

const (
	remainingNotice = "\n\n[You still have %d interaction(s) left in this session]"
	resetNotice     = "Chat restarted! You now have %d new interactions available. 🍫"
	farewell        = "See you soon! It was a pleasure helping with your onboarding at Choco-dev! 🍫"
	emptyInputHint  = "Type a question for Kit, or \"help\" to see the available commands. 🍫"
)

// DocumentPolicy decides whether sharing a document consumes an interaction
type DocumentPolicy string

const (
	// DocumentFree shares documents without touching the interaction budget
	DocumentFree DocumentPolicy = config.DocumentFree
	// DocumentCounted treats a shared document as a counted turn
	DocumentCounted DocumentPolicy = config.DocumentCounted
)

// SessionConfig holds construction-time choices for a Session
type SessionConfig struct {
	MaxInteractions   int
	SystemInstruction string
	Sampling          models.SamplingConfig
	Summarizer        summary.Summarizer
	DocumentPolicy    DocumentPolicy
	Rand              *rand.Rand
	Facts             []string
	DocumentLoader    knowledge.Loader
	Logger            *zap.Logger
}

// DefaultSessionConfig returns the standard three-turn configuration
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		MaxInteractions:   config.DefaultMaxInteractions,
		SystemInstruction: knowledge.SystemInstruction(knowledge.Fallback),
		Sampling:          models.DefaultSampling(),
		Summarizer:        summary.NewTopicSummarizer(),
		DocumentPolicy:    DocumentFree,
		Facts:             ChocolateFacts,
		DocumentLoader:    knowledge.LoadDocument,
	}
}

// NewSessionConfig builds a SessionConfig from loaded settings
func NewSessionConfig(cfg *config.Config, systemInstruction string, logger *zap.Logger) (*SessionConfig, error) {
	policy, err := summary.ParsePolicy(cfg.SummaryPolicy)
	if err != nil {
		return nil, err
	}
	summarizer, err := summary.New(policy, cfg.MaxInteractions)
	if err != nil {
		return nil, err
	}

	sc := DefaultSessionConfig()
	sc.MaxInteractions = cfg.MaxInteractions
	sc.SystemInstruction = systemInstruction
	sc.Sampling = cfg.Sampling
	sc.Summarizer = summarizer
	sc.DocumentPolicy = DocumentPolicy(cfg.DocumentPolicy)
	sc.Logger = logger
	return sc, nil
}

// State is the mutable conversation state of a session
type State struct {
	SessionID        string
	InteractionCount int
	MaxInteractions  int
	History          []models.Message
	Exchanges        []models.Exchange
}

// Reply is the outcome of one input. Summary is set when the session expired
// during this call; Terminate tells the caller to end the loop.
type Reply struct {
	Text      string
	Summary   string
	Terminate bool
	// Markdown marks Text as model output worth rendering
	Markdown bool
}

// String joins the reply text and summary for plain output
func (r Reply) String() string {
	switch {
	case r.Text == "":
		return r.Summary
	case r.Summary == "":
		return r.Text
	default:
		return r.Text + "\n\n" + r.Summary
	}
}

// Session is a single onboarding conversation. It is not safe for concurrent use.
type Session struct {
	gen      llm.Generator
	cfg      SessionConfig
	state    State
	facts    *FactPicker
	loadDoc  knowledge.Loader
	commands []command
	logger   *zap.Logger
}

// NewSession creates a session with a fresh state
func NewSession(gen llm.Generator, cfg *SessionConfig) (*Session, error) {
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	if cfg == nil {
		cfg = DefaultSessionConfig()
	}
	if cfg.MaxInteractions < 1 {
		return nil, fmt.Errorf("max interactions must be at least 1, got %d", cfg.MaxInteractions)
	}
	switch cfg.DocumentPolicy {
	case "":
		cfg.DocumentPolicy = DocumentFree
	case DocumentFree, DocumentCounted:
	default:
		return nil, fmt.Errorf("unknown document policy %q", cfg.DocumentPolicy)
	}

	s := &Session{
		gen:      gen,
		cfg:      *cfg,
		facts:    NewFactPicker(cfg.Facts, cfg.Rand),
		loadDoc:  cfg.DocumentLoader,
		commands: commandTable(),
		logger:   cfg.Logger,
	}
	if s.cfg.Summarizer == nil {
		s.cfg.Summarizer = summary.NewTopicSummarizer()
	}
	if s.loadDoc == nil {
		s.loadDoc = knowledge.LoadDocument
	}
	if len(s.cfg.Facts) == 0 {
		s.facts = NewFactPicker(ChocolateFacts, cfg.Rand)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	s.reset()
	return s, nil
}

// HandleInput processes one line of user input
func (s *Session) HandleInput(ctx context.Context, text string) Reply {
	if s.state.InteractionCount >= s.state.MaxInteractions {
		sum := s.Summary()
		s.reset()
		return Reply{Summary: sum, Terminate: true}
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Reply{Text: emptyInputHint}
	}

	if cmd, arg, ok := s.match(trimmed); ok {
		s.logger.Debug("command matched", zap.String("command", cmd.name), zap.String("session_id", s.state.SessionID))
		return cmd.handle(s, ctx, arg)
	}

	return s.converse(ctx, trimmed)
}

// converse forwards an ordinary message to the generator. History only
// changes when the call succeeds.
func (s *Session) converse(ctx context.Context, text string) Reply {
	candidate := models.CloneMessages(s.state.History)
	candidate = append(candidate, models.UserMessage(text))

	reply, err := s.gen.Generate(ctx, candidate, s.cfg.SystemInstruction, s.cfg.Sampling)
	if err != nil {
		s.logger.Debug("generation failed",
			zap.String("backend", s.gen.Name()),
			zap.String("session_id", s.state.SessionID),
			zap.Error(err))
		return Reply{Text: formatGenerationError(err)}
	}

	ex, err := models.NewExchange(len(s.state.Exchanges), text, reply)
	if err != nil {
		return Reply{Text: fmt.Sprintf("%s: %v", ErrorMarker, err)}
	}

	s.state.History = append(candidate, models.ModelMessage(reply))
	s.state.Exchanges = append(s.state.Exchanges, ex)

	r := s.countTurn(reply)
	r.Markdown = true
	return r
}

// countTurn consumes one interaction. When the budget runs out the summary is
// rendered into the same reply and the state starts over.
func (s *Session) countTurn(text string) Reply {
	s.state.InteractionCount++
	s.logger.Debug("interaction counted",
		zap.String("session_id", s.state.SessionID),
		zap.Int("count", s.state.InteractionCount),
		zap.Int("max", s.state.MaxInteractions))

	if remaining := s.Remaining(); remaining > 0 {
		return Reply{Text: text + fmt.Sprintf(remainingNotice, remaining)}
	}

	sum := s.Summary()
	s.reset()
	return Reply{Text: text, Summary: sum, Terminate: true}
}

func formatGenerationError(err error) string {
	msg := fmt.Sprintf("%s: %v", ErrorMarker, err)
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode > 0 {
		msg += fmt.Sprintf("\nStatus code: %d", apiErr.StatusCode)
	}
	return msg
}

// ErrNoDocumentPath is returned when add-document is given no path
var ErrNoDocumentPath = errors.New("no document path given")

// AddDocument shares a reference document with the model. A missing path or
// unreadable file leaves the state untouched.
func (s *Session) AddDocument(path string) Reply {
	reply, _ := s.ShareDocument(path)
	return reply
}

// ShareDocument is AddDocument that also reports why a document was rejected
func (s *Session) ShareDocument(path string) (Reply, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Reply{Text: documentUsage}, ErrNoDocumentPath
	}

	doc, err := s.loadDoc(path)
	if err != nil {
		s.logger.Debug("document not added", zap.String("path", path), zap.Error(err))
		return Reply{Text: fmt.Sprintf("Could not add the document (%v). Check that the path is correct.", err)}, err
	}

	ack := fmt.Sprintf("Thanks for sharing the document '%s'. I will use this information to better help with your questions about Choco-dev.", doc.Name)
	ex, err := models.NewExchange(len(s.state.Exchanges), "Shared document: "+doc.Name, ack)
	if err != nil {
		return Reply{Text: fmt.Sprintf("Could not add the document (%v).", err)}, err
	}

	s.state.History = append(s.state.History,
		models.UserMessage(fmt.Sprintf("Here is an important Choco-dev document you should use as reference: %s\n\n%s", doc.Name, doc.Content)),
		models.ModelMessage(ack),
	)
	s.state.Exchanges = append(s.state.Exchanges, ex)
	s.logger.Info("document added", zap.String("name", doc.Name), zap.Int("bytes", len(doc.Content)))

	confirmation := fmt.Sprintf("Document '%s' added to the context! 🍫 I can now help you based on this information.", doc.Name)
	if s.cfg.DocumentPolicy == DocumentCounted {
		return s.countTurn(confirmation), nil
	}
	return Reply{Text: confirmation}, nil
}

// ClearContext forgets the history and exchange log but keeps the count
func (s *Session) ClearContext() string {
	s.state.History = nil
	s.state.Exchanges = nil
	return "Conversation context cleared! 🍫 Keeping only my base knowledge about Choco-dev."
}

// Chocolate serves the easter egg as a counted turn
func (s *Session) Chocolate() Reply {
	fact := s.facts.Pick()
	ex, err := models.NewExchange(len(s.state.Exchanges), "chocolate", fact)
	if err != nil {
		return Reply{Text: fact}
	}
	s.state.Exchanges = append(s.state.Exchanges, ex)
	return s.countTurn(fact)
}

// Reset starts over. The summary precedes the confirmation when any
// interaction was counted; otherwise only the confirmation is returned.
func (s *Session) Reset() string {
	confirmation := fmt.Sprintf(resetNotice, s.state.MaxInteractions)
	if s.state.InteractionCount == 0 {
		s.reset()
		return confirmation
	}
	sum := s.Summary()
	s.reset()
	return sum + "\n\n" + confirmation
}

// Finish ends the conversation: the summary if anything was counted,
// otherwise a farewell. The state is reset either way.
func (s *Session) Finish() string {
	out := farewell
	if s.state.InteractionCount > 0 {
		out = s.Summary()
	}
	s.reset()
	return out
}

// Summary renders the exchange log without changing the state
func (s *Session) Summary() string {
	return s.cfg.Summarizer.Summarize(s.state.Exchanges)
}

// State returns a copy of the current state
func (s *Session) State() State {
	st := s.state
	st.History = slices.Clone(s.state.History)
	st.Exchanges = slices.Clone(s.state.Exchanges)
	return st
}

// Remaining is the number of counted interactions left
func (s *Session) Remaining() int {
	return max(s.state.MaxInteractions-s.state.InteractionCount, 0)
}

// Welcome is the greeting shown when the chat starts
func (s *Session) Welcome() string {
	return fmt.Sprintf(`🍫 Hi there, Chocolatier Dev! 🍫

I'm Kit, your extra-sweet onboarding companion here at Choco-dev!
I'm here to make your start at the company as smooth as melted chocolate. 😉

What can I put on your plate today?
🍫 Tell you about the delicious tools we use around here
🍫 Share a quick recipe for setting up your dev environment
🍫 Demystify deploys on our pipelines (I promise not to melt the code!)
🍫 Show you where the secret documentation library lives
🍫 Chat about how things run here at the chocolate... oops, code factory!

💡 You have %d interactions in this session. Type "help" to see my special tricks, or "chocolate" for a sweet surprise!`, s.state.MaxInteractions)
}

// Backend names the generator in use
func (s *Session) Backend() string {
	return s.gen.Name()
}

func (s *Session) reset() {
	s.state = State{
		SessionID:       uuid.New().String(),
		MaxInteractions: s.cfg.MaxInteractions,
	}
	s.logger.Debug("session reset", zap.String("session_id", s.state.SessionID))
}

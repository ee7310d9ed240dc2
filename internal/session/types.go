// Package session is the controller that owns the learner's session and
// drives the onboarding, placement, home, chat and vocabulary flows.
package session

import (
	"errors"

	"github.com/abhisek/lingo/internal/chat"
	"github.com/abhisek/lingo/internal/profile"
)

// AppState is the active screen-level state. Exactly one is active.
type AppState int

const (
	StateLoading AppState = iota
	StateLanguageSelection
	StateOnboarding
	StatePlacementTest
	StateHome
	StateChatting
	StateVocabularyQuiz
)

func (s AppState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLanguageSelection:
		return "languageSelection"
	case StateOnboarding:
		return "onboarding"
	case StatePlacementTest:
		return "placementTest"
	case StateHome:
		return "home"
	case StateChatting:
		return "chatting"
	case StateVocabularyQuiz:
		return "vocabularyQuiz"
	}
	return "unknown"
}

// transitions is the navigation graph. Reset is handled separately and may
// leave any state.
var transitions = map[AppState][]AppState{
	StateLoading:           {StateLanguageSelection, StateOnboarding, StatePlacementTest, StateHome},
	StateLanguageSelection: {StateOnboarding, StatePlacementTest, StateHome},
	StateOnboarding:        {StateLanguageSelection, StatePlacementTest},
	StatePlacementTest:     {StateHome},
	StateHome:              {StateChatting, StateVocabularyQuiz, StateLanguageSelection, StatePlacementTest},
	StateChatting:          {StateHome},
	StateVocabularyQuiz:    {StateHome},
}

// Session is the learner's profile plus the active state.
type Session struct {
	Profile  profile.Profile
	AppState AppState
}

// Effect is a side effect the caller must run with Perform.
type Effect int

const (
	GeneratePlacementTest Effect = iota + 1
	EvaluatePlacement
	LoadHomeContent
	InitChatSession
	GenerateVocabQuiz
	VocabFeedback
)

func (e Effect) String() string {
	switch e {
	case GeneratePlacementTest:
		return "generatePlacementTest"
	case EvaluatePlacement:
		return "evaluatePlacement"
	case LoadHomeContent:
		return "loadHomeContent"
	case InitChatSession:
		return "initChatSession"
	case GenerateVocabQuiz:
		return "generateVocabQuiz"
	case VocabFeedback:
		return "vocabFeedback"
	}
	return "unknown"
}

// ChangeKind says what part of the controller changed.
type ChangeKind int

const (
	ChangeState   ChangeKind = iota // AppState moved
	ChangeFlow                      // placement, home, quiz or banner updated
	ChangeChat                      // chat log updated
	ChangeProfile                   // theme or other profile field updated
)

// Change is published to subscribers after every update.
type Change struct {
	Kind  ChangeKind
	State AppState
	Epoch uint64
}

// Persisted preference keys.
const (
	KeySchemaVersion = "schemaVersion"
	KeyUserName      = "userName"
	KeyUILanguage    = "uiLanguage"
	KeyEnglishLevel  = "englishLevel"
	KeyTheme         = "theme"
	KeyChatHistory   = "chatHistory"
)

// SchemaVersion is the current layout of the persisted keys.
const SchemaVersion = 1

var (
	// ErrBusy is returned when a chat message is sent while a reply streams.
	ErrBusy = chat.ErrBusy

	// ErrStale is returned when a result arrives after the learner moved on.
	// The result has been discarded.
	ErrStale = errors.New("session: result discarded after navigation")

	// ErrInvalidTransition is returned for navigation outside the graph.
	ErrInvalidTransition = errors.New("session: invalid transition")

	// ErrNotAvailable is returned for an action the current state does not offer.
	ErrNotAvailable = errors.New("session: action not available in this state")

	// ErrEmptyName is returned when the submitted name is blank.
	ErrEmptyName = errors.New("session: name is empty")

	// ErrUnsupportedLanguage is returned for an unknown UI language code.
	ErrUnsupportedLanguage = errors.New("session: unsupported UI language")

	// ErrSchemaVersion is returned when stored data is newer than this build.
	ErrSchemaVersion = errors.New("session: stored data has an unsupported schema version")

	// ErrNoChat is returned when no chat session exists yet.
	ErrNoChat = errors.New("session: chat session not initialized")
)

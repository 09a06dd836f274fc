// Package engine wraps the external speech-recognition service. The engine
// call is the dominant latency of the whole pipeline and may block for
// seconds; callers keep it off the hotkey path.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/torstefan/mic-transcribe/internal/capture"
)

// Result is one completed transcription. It is consumed once by the output
// dispatcher and not persisted.
type Result struct {
	Text     string
	Language string
	Duration time.Duration
}

// Engine converts a recorded clip to text.
type Engine interface {
	Transcribe(ctx context.Context, clip capture.Clip) (Result, error)
}

// Language selects the recognition language.
type Language string

const (
	LanguageAuto      Language = "auto"
	LanguageEnglish   Language = "english"
	LanguageNorwegian Language = "norwegian"
)

// ParseLanguage validates a language mode string.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageAuto, "":
		return LanguageAuto, nil
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageNorwegian:
		return LanguageNorwegian, nil
	}
	return "", fmt.Errorf("invalid language '%s' (allowed: auto, english, norwegian)", s)
}

// Code returns the engine language parameter, empty for auto-detect.
func (l Language) Code() string {
	switch l {
	case LanguageEnglish:
		return "en"
	case LanguageNorwegian:
		return "no"
	default:
		return ""
	}
}

// Model is the recognition model size selector.
type Model string

const (
	ModelTiny   Model = "tiny"
	ModelBase   Model = "base"
	ModelSmall  Model = "small"
	ModelMedium Model = "medium"
	ModelLarge  Model = "large"
	ModelTurbo  Model = "turbo"
)

// ParseModel validates a model selector string.
func ParseModel(s string) (Model, error) {
	switch Model(strings.ToLower(strings.TrimSpace(s))) {
	case ModelTiny:
		return ModelTiny, nil
	case ModelBase:
		return ModelBase, nil
	case ModelSmall:
		return ModelSmall, nil
	case ModelMedium:
		return ModelMedium, nil
	case ModelLarge:
		return ModelLarge, nil
	case ModelTurbo:
		return ModelTurbo, nil
	}
	return "", fmt.Errorf("invalid model '%s' (allowed: tiny, base, small, medium, large, turbo)", s)
}

// pkg/interaction/prompt.go

package interaction

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// PromptYesNo asks a yes/no question and returns true/false. Falls back to
// the default when input is unrecognized, and auto-answers the default when
// stdin is not a terminal so scripted runs never hang on a prompt.
func PromptYesNo(ctx context.Context, prompt string, defaultYes bool) bool {
	logger := otelzap.Ctx(ctx)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		logger.Warn("Stdin is not a terminal, applying prompt default",
			zap.String("prompt", prompt),
			zap.Bool("default_yes", defaultYes))
		return defaultYes
	}

	defPrompt := DefaultYesPrompt
	if !defaultYes {
		defPrompt = DefaultNoPrompt
	}
	label := fmt.Sprintf("%s [%s]", prompt, defPrompt)

	reader := bufio.NewReader(os.Stdin)
	input, err := ReadLine(ctx, reader, label)
	if err != nil {
		logger.Error("Failed to read yes/no input", zap.Error(err))
		return defaultYes
	}

	if answer, ok := NormalizeYesNoInput(input); ok {
		logger.Debug("User input parsed", zap.Bool("answer", answer))
		return answer
	}

	logger.Debug("Default applied", zap.String("prompt", prompt), zap.Bool("default_yes", defaultYes))
	return defaultYes
}

// NormalizeYesNoInput returns true if the provided input string is an affirmative
// response like "y" or "yes". It trims whitespace and lowercases input before
// comparison. The second return reports whether the input was recognized.
func NormalizeYesNoInput(input string) (bool, bool) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == YesShort || input == YesLong {
		return true, true
	}
	if input == NoShort || input == NoLong {
		return false, true
	}
	return false, false // unknown
}

package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	domainErrors "github.com/thomas-vilte/matestory/internal/errors"
	"github.com/thomas-vilte/matestory/internal/i18n"
	"github.com/thomas-vilte/matestory/internal/models"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	StoryEmoji   = "📝"
	SuccessEmoji = Success.Sprint("✅")
	WarningEmoji = Warning.Sprint("⚠️")
	InfoEmoji    = Info.Sprint("ℹ️")
	RocketEmoji  = Accent.Sprint("🚀")
	StatsEmoji   = Accent.Sprint("📊")
)

var activeSpinner *SmartSpinner

// SmartSpinner wraps the terminal spinner and tracks the active one so
// error paths can always clear the line.
type SmartSpinner struct {
	spinner *spinner.Spinner
}

func NewSmartSpinner(initialMessage string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+StoryEmoji+" "+initialMessage),
	)
	return &SmartSpinner{spinner: s}
}

func (s *SmartSpinner) Start() {
	activeSpinner = s
	s.spinner.Start()
}

func (s *SmartSpinner) Stop() {
	s.spinner.Stop()
	if activeSpinner == s {
		activeSpinner = nil
	}
}

func (s *SmartSpinner) UpdateMessage(msg string) {
	s.spinner.Suffix = " " + StoryEmoji + " " + msg
}

// StopActiveSpinner stops whichever spinner is currently running.
func StopActiveSpinner() {
	if activeSpinner != nil {
		activeSpinner.Stop()
	}
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", SuccessEmoji, Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("❌"), Error.Sprint(msg))
}

func PrintWarning(msg string) {
	fmt.Printf("%s %s\n", WarningEmoji, Warning.Sprint(msg))
}

func PrintInfo(msg string) {
	fmt.Printf("%s %s\n", InfoEmoji, Info.Sprint(msg))
}

func PrintKeyValue(key, value string) {
	fmt.Printf("%s %s\n", Dim.Sprint(key+":"), value)
}

func PrintSectionBanner(title string) {
	separator := color.New(color.FgCyan).Sprint("━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("\n%s\n", separator)
	fmt.Printf("%s %s\n", RocketEmoji, Accent.Sprint(title))
	fmt.Printf("%s\n\n", separator)
}

// PrintTokenUsage prints the token summary line for a completed
// generation.
func PrintTokenUsage(usage *models.TokenUsage, t *i18n.Translations) {
	if usage == nil || usage.TotalTokens == 0 {
		return
	}
	summary := t.GetMessage("usage.summary", 0, map[string]interface{}{
		"Total":  usage.TotalTokens,
		"Input":  usage.InputTokens,
		"Output": usage.OutputTokens,
	})
	fmt.Printf("%s %s\n", StatsEmoji, Dim.Sprint(summary))
}

// HandleAppError prints a domain error with its suggestion, falling
// back to the plain message for anything else.
func HandleAppError(err error, t *i18n.Translations) {
	if err == nil {
		return
	}
	StopActiveSpinner()

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(os.Stdout, err.Error())
		return
	}

	fmt.Println()
	_, _ = Error.Printf("❌ %s: %s\n", appErr.Type, appErr.Message)

	if appErr.Err != nil {
		_, _ = Dim.Printf("   %v\n", appErr.Err)
	}

	if appErr.Suggestion != "" {
		prefix := "Hint"
		if t != nil {
			prefix = t.GetMessage("suggestion_prefix", 0, nil)
		}
		fmt.Println()
		_, _ = Info.Printf("💡 %s: ", prefix)
		for i, line := range strings.Split(appErr.Suggestion, "\n") {
			if i == 0 {
				fmt.Println(line)
			} else {
				fmt.Printf("   %s\n", line)
			}
		}
	}
	fmt.Println()
}

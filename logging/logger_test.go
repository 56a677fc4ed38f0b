package logging

import "testing"

// fakeMessage is a LogMessage that records whether it was displayed, letting
// tests exercise Logger.handleMsg without touching pterm/stdout formatting.
type fakeMessage struct {
	asError   bool
	displayed bool
}

func (m *fakeMessage) isError() bool { return m.asError }
func (m *fakeMessage) display()      { m.displayed = true }

func newTestLogger(level int) Logger {
	l := newLogger(level)
	return l
}

func TestInitializeMapsLevelNames(t *testing.T) {
	cases := map[string]int{
		"silent":  LogLevelSilent,
		"error":   LogLevelError,
		"warning": LogLevelWarning,
		"verbose": LogLevelVerbose,
		"":        LogLevelVerbose,
		"bogus":   LogLevelVerbose,
	}
	for name, want := range cases {
		Initialize(name)
		if logger.LogLevel != want {
			t.Fatalf("Initialize(%q): expected level %d, got %d", name, want, logger.LogLevel)
		}
	}
}

func TestHandleMsgErrorIncrementsCountAndDisplaysAboveSilent(t *testing.T) {
	logger = newTestLogger(LogLevelError)
	msg := &fakeMessage{asError: true}
	logger.handleMsg(msg)

	if logger.errorCount != 1 {
		t.Fatalf("expected errorCount 1, got %d", logger.errorCount)
	}
	if !msg.displayed {
		t.Fatalf("expected an error message to display above LogLevelSilent")
	}
}

func TestHandleMsgErrorDoesNotDisplayAtSilent(t *testing.T) {
	logger = newTestLogger(LogLevelSilent)
	msg := &fakeMessage{asError: true}
	logger.handleMsg(msg)

	if logger.errorCount != 1 {
		t.Fatalf("silent level must still count the error, got %d", logger.errorCount)
	}
	if msg.displayed {
		t.Fatalf("LogLevelSilent must suppress immediate display")
	}
}

func TestHandleMsgWarningIsQueuedNotDisplayed(t *testing.T) {
	logger = newTestLogger(LogLevelVerbose)
	msg := &fakeMessage{asError: false}
	logger.handleMsg(msg)

	if logger.errorCount != 0 {
		t.Fatalf("a warning must not increment errorCount, got %d", logger.errorCount)
	}
	if msg.displayed {
		t.Fatalf("a warning must be queued, not displayed immediately")
	}
	if len(logger.warnings) != 1 || logger.warnings[0] != msg {
		t.Fatalf("expected the warning to be queued for later display")
	}
}

func TestShouldProceedReflectsErrorCount(t *testing.T) {
	logger = newTestLogger(LogLevelVerbose)
	if !ShouldProceed() {
		t.Fatalf("expected ShouldProceed to be true with no errors logged")
	}

	logger.handleMsg(&fakeMessage{asError: true})
	if ShouldProceed() {
		t.Fatalf("expected ShouldProceed to be false after an error was logged")
	}
}

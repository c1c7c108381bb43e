package server

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestWebLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		log      func(*WebLogger)
		expected ConsoleMessage
	}{
		{
			name:     "info",
			log:      func(l *WebLogger) { l.Printf("Rendering %d objects on a %dx%d grid\n", 6, 320, 180) },
			expected: ConsoleMessage{Message: "Rendering 6 objects on a 320x180 grid\n", Level: levelInfo},
		},
		{
			name:     "warning",
			log:      func(l *WebLogger) { l.Warnf("slow render: %d samples", 5000) },
			expected: ConsoleMessage{Message: "slow render: 5000 samples", Level: levelWarning},
		},
		{
			name:     "error",
			log:      func(l *WebLogger) { l.Errorf("render failed: %v", "stream exhausted") },
			expected: ConsoleMessage{Message: "render failed: stream exhausted", Level: levelError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messageChan := make(chan ConsoleMessage, 1)
			logger := NewWebLogger("render-"+tt.name, messageChan)
			before := time.Now()

			tt.log(logger)

			select {
			case msg := <-messageChan:
				if msg.Message != tt.expected.Message {
					t.Errorf("Expected message %q, got %q", tt.expected.Message, msg.Message)
				}
				if msg.Level != tt.expected.Level {
					t.Errorf("Expected level %q, got %q", tt.expected.Level, msg.Level)
				}
				if msg.RenderID != "render-"+tt.name {
					t.Errorf("Expected render ID %q, got %q", "render-"+tt.name, msg.RenderID)
				}
				if msg.Timestamp.Before(before) {
					t.Errorf("Timestamp %v predates the call", msg.Timestamp)
				}
			default:
				t.Fatal("Expected a message on the console channel")
			}
		})
	}
}

func TestWebLogger_KeepsOrder(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("render-order", messageChan)

	for i := 0; i < 5; i++ {
		logger.Printf("row %d\n", i)
	}
	close(messageChan)

	i := 0
	for msg := range messageChan {
		if want := "row " + string(rune('0'+i)) + "\n"; msg.Message != want {
			t.Errorf("Message %d: expected %q, got %q", i, want, msg.Message)
		}
		i++
	}
	if i != 5 {
		t.Errorf("Expected 5 messages, got %d", i)
	}
	if logger.Dropped() != 0 {
		t.Errorf("Expected no dropped messages, got %d", logger.Dropped())
	}
}

func TestWebLogger_DropsWhenFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 2)
	logger := NewWebLogger("render-full", messageChan)

	for i := 0; i < 5; i++ {
		logger.Printf("row %d\n", i)
	}

	if got := logger.Dropped(); got != 3 {
		t.Errorf("Expected 3 dropped messages, got %d", got)
	}
	if first := <-messageChan; first.Message != "row 0\n" {
		t.Errorf("Expected the earliest message to be kept, got %q", first.Message)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("render-nil", nil)
	logger.Printf("no console attached\n")
	logger.Warnf("still no console\n")

	if logger.Dropped() != 0 {
		t.Errorf("A logger without a console should not count drops, got %d", logger.Dropped())
	}
}

func TestConsoleMessage_JSON(t *testing.T) {
	msg := ConsoleMessage{
		RenderID:  "render-1",
		Message:   "Test message",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     levelInfo,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, key := range []string{`"renderId":"render-1"`, `"message":"Test message"`, `"level":"info"`, `"timestamp":"2024-01-02T03:04:05Z"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("Expected %s in %s", key, data)
		}
	}
}

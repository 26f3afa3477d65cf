package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chrisdamba/weaning/internal/logger"
	"github.com/google/go-cmp/cmp"
)

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(Request{Query: " beef and broccoli ", WeightPerCube: 30, TargetCount: 10})

	for _, want := range []string{
		`"beef and broccoli"`,
		"Weight per cube: 30g",
		"Number of cubes: 10",
		"about 300g",
		"[Shopping list]",
		"[Steps]",
		"[Portioning tip]",
		"Total 300g (30g cube x 10)",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptDefaultsAndOverride(t *testing.T) {
	p := BuildPrompt(Request{Query: "pumpkin"})
	if !strings.Contains(p, "Total 280g (20g cube x 14)") {
		t.Errorf("expected default summary line in prompt:\n%s", p)
	}

	raw := "just tell me about rice"
	if got := BuildPrompt(Request{Query: "pumpkin", Prompt: raw}); got != raw {
		t.Errorf("expected verbatim prompt, got %q", got)
	}
}

func newTestServer(t *testing.T, status int, body string, seen *payload) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/test-model:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "secret" {
			t.Errorf("expected api key in query, got %q", r.URL.RawQuery)
		}
		if seen != nil {
			if err := json.NewDecoder(r.Body).Decode(seen); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient("secret", logger.Nop(), WithEndpoint(srv.URL), WithModel("test-model"))
}

func TestGenerateJoinsParts(t *testing.T) {
	var seen payload
	srv := newTestServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"[Steps] "},{"text":"boil"}]}},{"content":{"parts":[{"text":"ignored"}]}}]}`,
		&seen)

	got, err := newTestClient(srv).Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "[Steps] boil" {
		t.Fatalf("expected joined text, got %q", got)
	}

	want := payload{
		Contents:         []content{{Role: "user", Parts: []part{{Text: "hello"}}}},
		GenerationConfig: generationConfig{Temperature: 0.4},
	}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateEmptyAnswerIsNotAnError(t *testing.T) {
	for _, body := range []string{`{}`, `{"candidates":[]}`, `{"candidates":[{"content":{"parts":[]}}]}`} {
		srv := newTestServer(t, http.StatusOK, body, nil)
		got, err := newTestClient(srv).Generate(context.Background(), "p")
		if err != nil {
			t.Fatalf("body %s: unexpected error %v", body, err)
		}
		if got != "" {
			t.Fatalf("body %s: expected empty text, got %q", body, got)
		}
	}
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `quota`},
		{"not found", http.StatusNotFound, `{"error":"model"}`},
		{"bad json", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body, nil)
			_, err := newTestClient(srv).Generate(context.Background(), "p")
			if !errors.Is(err, ErrRequestFailed) {
				t.Fatalf("expected ErrRequestFailed, got %v", err)
			}
			if UserMessage(err) != GenericFailureMessage {
				t.Fatalf("unexpected user message %q", UserMessage(err))
			}
		})
	}
}

func TestGenerateTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := NewClient("secret", logger.Nop(), WithEndpoint(srv.URL))
	srv.Close()

	if _, err := c.Generate(context.Background(), "p"); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestGenerateWithoutKey(t *testing.T) {
	c := NewClient("", logger.Nop())
	if _, err := c.Generate(context.Background(), "p"); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

type stubGenerator struct {
	prompt string
	text   string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, nil
}

func TestHelperSearch(t *testing.T) {
	gen := &stubGenerator{text: "## [Steps]\n**boil** it\n"}
	h := NewHelper(gen)

	req := Request{Query: "carrot", WeightPerCube: 25, TargetCount: 4}
	got, err := h.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if gen.prompt != BuildPrompt(req) {
		t.Fatalf("helper sent an unexpected prompt:\n%s", gen.prompt)
	}
	if got != gen.text {
		t.Fatalf("search should return raw text, got %q", got)
	}
	if cleaned := Clean(got); cleaned != "[Steps]\nboil it" {
		t.Fatalf("unexpected cleaned text %q", cleaned)
	}
}

func TestUserMessage(t *testing.T) {
	if UserMessage(nil) != "" {
		t.Fatal("expected empty message for nil error")
	}
	if UserMessage(errors.New("anything")) != GenericFailureMessage {
		t.Fatal("expected generic message")
	}
}

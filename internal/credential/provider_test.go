package credential

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter returns canned answers in order, then io.EOF.
type scriptedPrompter struct {
	answers []string
	calls   int
}

func (s *scriptedPrompter) Prompt(string) (string, error) {
	s.calls++
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func TestGet_ReturnsStoredValueWithoutPrompt(t *testing.T) {
	store := &MemoryStore{Value: "stored-key"}
	prompter := &scriptedPrompter{}

	p := NewProvider(store, prompter, nil)
	key, err := p.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "stored-key", key)
	assert.Zero(t, prompter.calls)
	assert.Zero(t, store.Saves)
}

func TestGet_PromptsAndPersistsOnMiss(t *testing.T) {
	store := &MemoryStore{}
	prompter := &scriptedPrompter{answers: []string{"fresh-key"}}

	p := NewProvider(store, prompter, nil)
	key, err := p.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "fresh-key", key)
	assert.Equal(t, "fresh-key", store.Value)
	assert.Equal(t, 1, store.Saves)
}

func TestGet_RepromptsOnEmptyInput(t *testing.T) {
	store := &MemoryStore{}
	prompter := &scriptedPrompter{answers: []string{"", "", "third-time"}}
	var notices bytes.Buffer

	p := NewProvider(store, prompter, &notices)
	key, err := p.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "third-time", key)
	assert.Equal(t, 3, prompter.calls)
	assert.Equal(t, 2, strings.Count(notices.String(), "API key is required!"))
}

func TestGet_MissingWhenInputEnds(t *testing.T) {
	store := &MemoryStore{}
	prompter := &scriptedPrompter{answers: []string{""}}

	p := NewProvider(store, prompter, nil)
	_, err := p.Get(context.Background())

	require.ErrorIs(t, err, ErrCredentialMissing)
	assert.Zero(t, store.Saves)
}

func TestGet_SecondCallDoesNotPrompt(t *testing.T) {
	store := &MemoryStore{}
	prompter := &scriptedPrompter{answers: []string{"only-once"}}

	p := NewProvider(store, prompter, nil)
	first, err := p.Get(context.Background())
	require.NoError(t, err)
	second, err := p.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, prompter.calls)
	assert.Equal(t, 1, store.Saves)
}

func TestGet_FileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("STACKSEED_API_KEY", "")

	first := NewProvider(NewFileStore(path), &scriptedPrompter{answers: []string{"persisted-key"}}, nil)
	key, err := first.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "persisted-key", key)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "persisted-key")

	// A fresh provider, as in a new process, reads the file and never prompts.
	prompter := &scriptedPrompter{}
	second := NewProvider(NewFileStore(path), prompter, nil)
	key, err = second.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "persisted-key", key)
	assert.Zero(t, prompter.calls)
}

func TestGet_FileStoreSavesOnlyAPIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("STACKSEED_API_KEY", "")
	t.Setenv("STACKSEED_PROVIDER", "openai")

	p := NewProvider(NewFileStore(path), &scriptedPrompter{answers: []string{"k1"}}, nil)
	_, err := p.Get(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.YAMLEq(t, "api_key: k1", string(data))
}

func TestGet_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProvider(&MemoryStore{}, &scriptedPrompter{answers: []string{"x"}}, nil)
	_, err := p.Get(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTerminalPrompter_ReadsLines(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminalPrompter(strings.NewReader("\n  my-key  \n"), &out)

	first, err := p.Prompt("Enter your API key:")
	require.NoError(t, err)
	assert.Equal(t, "", first)

	second, err := p.Prompt("Enter your API key:")
	require.NoError(t, err)
	assert.Equal(t, "my-key", second)

	assert.Contains(t, out.String(), "Enter your API key:")
}

func TestTerminalPrompter_LastLineWithoutNewline(t *testing.T) {
	p := &TerminalPrompter{In: strings.NewReader("tail-key"), Out: &bytes.Buffer{}}

	answer, err := p.Prompt("key:")
	require.NoError(t, err)
	assert.Equal(t, "tail-key", answer)

	_, err = p.Prompt("key:")
	assert.Error(t, err)
}

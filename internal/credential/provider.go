package credential

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Prompt texts shown while resolving a missing credential.
const (
	promptMessage   = "Enter your API key:"
	requiredMessage = "API key is required!"
)

var (
	// ErrCredentialMissing is returned when no credential is stored and the
	// user supplied none before input ended.
	ErrCredentialMissing = errors.New("API key is missing")

	// ErrCredentialEmpty marks an empty answer. It is reported and the user
	// is asked again; it never escapes Get.
	ErrCredentialEmpty = errors.New(requiredMessage)
)

// Provider resolves the credential: stored value first, interactive prompt on
// a miss. The resolved value is remembered for the life of the Provider.
type Provider struct {
	Store    Store
	Prompter Prompter
	// Notices receives the re-prompt message; nil discards it.
	Notices io.Writer

	mu     sync.Mutex
	cached string
}

// NewProvider returns a Provider over store and prompter.
func NewProvider(store Store, prompter Prompter, notices io.Writer) *Provider {
	return &Provider{Store: store, Prompter: prompter, Notices: notices}
}

// Get returns the credential. On a miss it prompts until a non-empty value is
// entered, persists it, and then returns it. At most one Load and one Save
// happen per call.
func (p *Provider) Get(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached, nil
	}

	stored, err := p.Store.Load()
	if err != nil {
		return "", err
	}
	if stored != "" {
		p.cached = stored
		return stored, nil
	}

	value, err := p.ask(ctx)
	if err != nil {
		return "", err
	}

	if err := p.Store.Save(value); err != nil {
		return "", err
	}
	p.cached = value
	return value, nil
}

func (p *Provider) ask(ctx context.Context) (string, error) {
	if p.Prompter == nil {
		return "", ErrCredentialMissing
	}
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		answer, err := p.Prompter.Prompt(promptMessage)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrCredentialMissing
			}
			return "", fmt.Errorf("%w: %v", ErrCredentialMissing, err)
		}
		if answer != "" {
			return answer, nil
		}
		if p.Notices != nil {
			fmt.Fprintln(p.Notices, ErrCredentialEmpty.Error())
		}
	}
}

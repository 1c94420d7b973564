package evaluator

import (
	"context"
	"errors"
	"sync"

	"github.com/sells-group/namecast/internal/model"
)

type fakeDomains struct {
	mu         sync.Mutex
	registered map[string]bool
	failing    map[string]bool
	calls      []string
}

func (f *fakeDomains) Registered(_ context.Context, domain string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, domain)
	if f.failing[domain] {
		return false, errors.New("whois: connection refused")
	}
	return f.registered[domain], nil
}

type fakeSocial struct {
	taken   map[string]bool // "platform/handle"
	failing bool
}

func (f *fakeSocial) Available(_ context.Context, platform, handle string) (bool, error) {
	if f.failing {
		return false, errors.New("social: rate limited")
	}
	return !f.taken[platform+"/"+handle], nil
}

type fakeTrademark struct {
	result *model.TrademarkResult
	err    error
}

func (f *fakeTrademark) Search(context.Context, string) (*model.TrademarkResult, error) {
	return f.result, f.err
}

type fakePerception struct {
	result *model.PerceptionResult
	err    error
}

func (f *fakePerception) Perceive(context.Context, string, string) (*model.PerceptionResult, error) {
	return f.result, f.err
}

type fakeGenerator struct {
	names []string
	err   error
	count int
	desc  string
}

func (f *fakeGenerator) Generate(_ context.Context, description string, count int) ([]string, error) {
	f.desc, f.count = description, count
	return f.names, f.err
}

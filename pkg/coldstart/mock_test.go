package coldstart

import (
	"context"
	"iter"
	"sync"

	"github.com/younsl/initcost/internal/models"
)

// mockLogSource is a test double for LogSource.
type mockLogSource struct {
	groups    []string
	enumErr   error // yielded after all groups
	events    map[string][]string
	eventErrs map[string]error

	mu         sync.Mutex
	eventCalls []string
}

func (m *mockLogSource) LogGroups(_ context.Context, _ string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, g := range m.groups {
			if !yield(g, nil) {
				return
			}
		}
		if m.enumErr != nil {
			yield("", m.enumErr)
		}
	}
}

func (m *mockLogSource) InitEvents(_ context.Context, logGroup string, _ models.ScanWindow) ([]string, error) {
	m.mu.Lock()
	m.eventCalls = append(m.eventCalls, logGroup)
	m.mu.Unlock()
	if err := m.eventErrs[logGroup]; err != nil {
		return nil, err
	}
	return m.events[logGroup], nil
}

func (m *mockLogSource) calledFor(logGroup string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.eventCalls {
		if g == logGroup {
			return true
		}
	}
	return false
}

// mockFunctionSource is a test double for FunctionSource.
type mockFunctionSource struct {
	configs map[string]models.FunctionConfig
	errs    map[string]error
}

func (m *mockFunctionSource) FunctionConfig(_ context.Context, name string) (models.FunctionConfig, error) {
	if err := m.errs[name]; err != nil {
		return models.FunctionConfig{}, err
	}
	cfg, ok := m.configs[name]
	if !ok {
		return models.FunctionConfig{}, models.ErrNotFound
	}
	return cfg, nil
}

// mockInvocationSource is a test double for InvocationSource.
type mockInvocationSource struct {
	counts map[string]int64
	err    error
}

func (m *mockInvocationSource) Invocations(_ context.Context, name string, _ models.ScanWindow) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.counts[name], nil
}

func zipConfig(name string, memoryMB int32) models.FunctionConfig {
	return models.FunctionConfig{
		Name:          name,
		PackageType:   models.PackageTypeZip,
		Runtime:       "python3.12",
		MemoryMB:      memoryMB,
		Architectures: []string{"x86_64"},
	}
}

func reportLine(initMs string) string {
	return "REPORT RequestId: 8f5c2a51-3f5e-4c7d-9a1b-1d2e3f4a5b6c\tDuration: 12.34 ms\tBilled Duration: 13 ms\tMemory Size: 1024 MB\tMax Memory Used: 80 MB\tInit Duration: " + initMs + " ms\t"
}

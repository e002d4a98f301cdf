package report

import (
	"context"

	"github.com/sig-0/usdreport/provider"
)

type (
	generateDelegate func(context.Context, string) (string, error)
	publishDelegate  func(context.Context, *Payload, string) error
	attemptDelegate  func(context.Context) (*provider.Quote, error)
)

type mockGenerator struct {
	generateFn generateDelegate
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, prompt)
	}

	return "", nil
}

type mockPublisher struct {
	publishFn publishDelegate
}

func (m *mockPublisher) Publish(ctx context.Context, payload *Payload, article string) error {
	if m.publishFn != nil {
		return m.publishFn(ctx, payload, article)
	}

	return nil
}

type mockStrategy struct {
	name      string
	attemptFn attemptDelegate
}

func (m *mockStrategy) Name() string {
	return m.name
}

func (m *mockStrategy) Attempt(ctx context.Context) (*provider.Quote, error) {
	if m.attemptFn != nil {
		return m.attemptFn(ctx)
	}

	return nil, nil
}

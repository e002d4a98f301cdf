package provider

import "context"

type (
	nameDelegate    func() string
	attemptDelegate func(context.Context) (*Quote, error)
)

type mockStrategy struct {
	nameFn    nameDelegate
	attemptFn attemptDelegate
}

func (m *mockStrategy) Name() string {
	if m.nameFn != nil {
		return m.nameFn()
	}

	return ""
}

func (m *mockStrategy) Attempt(ctx context.Context) (*Quote, error) {
	if m.attemptFn != nil {
		return m.attemptFn(ctx)
	}

	return nil, nil
}

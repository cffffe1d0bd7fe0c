package i18n

import "context"

// Storage is the small key/value surface the preference needs; the local
// cache satisfies it.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Preference persists the chosen language across runs.
type Preference struct {
	store Storage
}

func NewPreference(store Storage) *Preference {
	return &Preference{store: store}
}

// Current returns the stored language, English when nothing usable is stored.
func (p *Preference) Current(ctx context.Context) (Lang, error) {
	v, ok, err := p.store.Get(ctx, PreferenceKey)
	if err != nil {
		return English, err
	}
	if !ok {
		return English, nil
	}
	return ParseOr(v, English), nil
}

// Toggle flips and persists the language, returning the new one.
func (p *Preference) Toggle(ctx context.Context) (Lang, error) {
	cur, err := p.Current(ctx)
	if err != nil {
		return cur, err
	}

	next := cur.Toggle()
	if err := p.store.Set(ctx, PreferenceKey, string(next)); err != nil {
		return cur, err
	}
	return next, nil
}

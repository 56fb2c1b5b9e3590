package datefield

import "context"

// LoadCalendar loads the calendar UI at most once per field, in the
// background, and reports the outcome to done. Later calls receive the
// stored outcome. On failure the field keeps working as a plain text field.
func (f *Field) LoadCalendar(ctx context.Context, done func(error)) {
	f.loadMu.Lock()
	if f.loadDone {
		err := f.loadErr
		f.loadMu.Unlock()
		if done != nil {
			done(err)
		}
		return
	}
	if done != nil {
		f.callbacks = append(f.callbacks, done)
	}
	f.loadMu.Unlock()

	f.loadOnce.Do(func() {
		go f.runLoader(ctx)
	})
}

// CalendarReady reports whether the calendar UI loaded successfully.
func (f *Field) CalendarReady() bool {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()
	return f.loadDone && f.loadErr == nil
}

func (f *Field) runLoader(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	err := ctx.Err()
	if err == nil && f.loader != nil {
		err = f.loader.Load(ctx)
	}
	if err != nil {
		f.logger.Warn().Err(err).Msg("datefield: calendar UI failed to load")
	}

	f.loadMu.Lock()
	f.loadDone = true
	f.loadErr = err
	callbacks := f.callbacks
	f.callbacks = nil
	f.loadMu.Unlock()

	for _, fn := range callbacks {
		fn(err)
	}
}

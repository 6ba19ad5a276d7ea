package notify

import "sync"

// Notification is one recorded message.
type Notification struct {
	Variant Variant
	Message string
}

// Recorder is a Notifier that captures messages for assertions in tests.
type Recorder struct {
	mu   sync.Mutex
	msgs []Notification
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(v Variant, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, Notification{Variant: v, Message: msg})
}

func (r *Recorder) Info(msg string)    { r.record(VariantInfo, msg) }
func (r *Recorder) Success(msg string) { r.record(VariantSuccess, msg) }
func (r *Recorder) Warning(msg string) { r.record(VariantWarning, msg) }
func (r *Recorder) Error(msg string)   { r.record(VariantError, msg) }

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// ByVariant returns the recorded messages of one variant.
func (r *Recorder) ByVariant(v Variant) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.msgs {
		if n.Variant == v {
			out = append(out, n.Message)
		}
	}
	return out
}

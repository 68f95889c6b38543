package model

// TaskKind distinguishes how a model maps a prompt to output text.
type TaskKind string

const (
	// TaskSeq2Seq covers encoder-decoder models served behind a
	// summarization-style endpoint.
	TaskSeq2Seq TaskKind = "seq2seq"
	// TaskCausal covers autoregressive models served behind a
	// text-generation endpoint.
	TaskCausal TaskKind = "causal"
)

// Descriptor identifies one configured model. Descriptors are resolved once
// at process start and never change afterwards.
type Descriptor struct {
	Key          string
	UpstreamID   string
	Task         TaskKind
	ContextLimit int // maximum prompt tokens accepted in one call
}

// Registry is the fixed set of models answers are generated with. Iteration
// order is the order descriptors were registered in, so answer sets come back
// in a stable order.
type Registry struct {
	order []string
	byKey map[string]Descriptor
}

// NewRegistry builds a registry from the given descriptors. Later duplicates
// of a key overwrite earlier ones without changing position.
func NewRegistry(descs ...Descriptor) *Registry {
	r := &Registry{byKey: make(map[string]Descriptor, len(descs))}
	for _, d := range descs {
		if _, ok := r.byKey[d.Key]; !ok {
			r.order = append(r.order, d.Key)
		}
		r.byKey[d.Key] = d
	}
	return r
}

// Default returns the standard three-model registry: one summarization-style
// seq2seq model and two causal models, all sharing the same context limit.
func Default(contextLimit int) *Registry {
	return NewRegistry(
		Descriptor{Key: "bart", UpstreamID: "facebook/bart-large-cnn", Task: TaskSeq2Seq, ContextLimit: contextLimit},
		Descriptor{Key: "gpt2", UpstreamID: "gpt2", Task: TaskCausal, ContextLimit: contextLimit},
		Descriptor{Key: "gpt_neo", UpstreamID: "EleutherAI/gpt-neo-2.7B", Task: TaskCausal, ContextLimit: contextLimit},
	)
}

// Get looks up a descriptor by key.
func (r *Registry) Get(key string) (Descriptor, bool) {
	d, ok := r.byKey[key]
	return d, ok
}

// Keys returns the model keys in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Len reports the number of configured models.
func (r *Registry) Len() int {
	return len(r.order)
}

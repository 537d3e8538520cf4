package capture

import (
	"sort"
	"time"

	"github.com/jasperwreed/ai-usage/internal/models"
)

// Reconstructor groups entries by session and folds each group into a
// conversation.
type Reconstructor struct {
	estimator TokenEstimator
}

func NewReconstructor(estimator TokenEstimator) *Reconstructor {
	if estimator == nil {
		estimator = NewCharTokenEstimator(DefaultCharsPerToken)
	}
	return &Reconstructor{estimator: estimator}
}

// Reconstruct returns one conversation per session key, in order of first
// appearance. Status and project context are left for the classifier.
func (r *Reconstructor) Reconstruct(entries []models.RawEntry) []models.Conversation {
	var order []string
	groups := make(map[string][]models.RawEntry)
	for _, entry := range entries {
		key := entry.SessionKey()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], entry)
	}

	conversations := make([]models.Conversation, 0, len(order))
	for _, key := range order {
		conversations = append(conversations, r.fold(key, sortByTimestamp(groups[key])))
	}
	return conversations
}

type timedEntry struct {
	entry models.RawEntry
	at    time.Time
	ok    bool
}

// sortByTimestamp orders a group chronologically. Entries without a
// parseable timestamp sort first and keep their file order.
func sortByTimestamp(entries []models.RawEntry) []timedEntry {
	timed := make([]timedEntry, len(entries))
	for i, entry := range entries {
		timed[i].entry = entry
		if entry.Timestamp != "" {
			if t, err := models.ParseTimestamp(entry.Timestamp); err == nil {
				timed[i].at, timed[i].ok = t, true
			}
		}
	}
	sort.SliceStable(timed, func(i, j int) bool {
		a, b := timed[i], timed[j]
		if a.ok != b.ok {
			return !a.ok
		}
		return a.ok && a.at.Before(b.at)
	})
	return timed
}

// conversationState is the accumulator threaded through fold.
type conversationState struct {
	conv                models.Conversation
	earliest, latest    time.Time
	hasEarly, hasLatest bool
}

func (r *Reconstructor) fold(key string, timed []timedEntry) models.Conversation {
	state := conversationState{
		conv: models.Conversation{
			ID:       key,
			Model:    models.UnknownModel,
			Messages: make([]models.Message, 0, len(timed)),
			Status:   models.StatusUnknown,
		},
	}
	for _, te := range timed {
		state = r.step(state, te)
	}
	return state.conv
}

func (r *Reconstructor) step(state conversationState, te timedEntry) conversationState {
	msg, model := normalizeEntry(te.entry, r.estimator)

	conv := &state.conv
	if conv.FilePath == "" {
		conv.FilePath = te.entry.Source
	}
	conv.Messages = append(conv.Messages, msg)
	conv.TotalTokens += msg.Tokens
	if model != "" {
		conv.Model = model
	}

	if te.ok {
		raw := te.entry.Timestamp
		if !state.hasEarly || te.at.Before(state.earliest) {
			state.earliest, state.hasEarly = te.at, true
			conv.CreatedAt = &raw
		}
		if !state.hasLatest || !te.at.Before(state.latest) {
			state.latest, state.hasLatest = te.at, true
			conv.LastActivity = &raw
		}
	}
	return state
}

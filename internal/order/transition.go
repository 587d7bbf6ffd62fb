package order

// TransitionPolicy decides whether an order may move between two statuses.
type TransitionPolicy interface {
	Allow(from, to Status) bool
}

type permissive struct{}

func (permissive) Allow(_, _ Status) bool { return true }

// Permissive lets any status follow any other, so administrators can correct
// an order in either direction.
var Permissive TransitionPolicy = permissive{}

// Table is a directed transition table keyed by the current status.
type Table map[Status][]Status

func (t Table) Allow(from, to Status) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Strict only allows forward moves, cancellation before shipping, and nothing
// out of a terminal state.
var Strict TransitionPolicy = Table{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPacked, StatusCancelled},
	StatusPacked:    {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
}

package order

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCancelled  Status = "cancelled"
)

// Cancellable reports whether an owner-initiated cancellation is allowed from
// this state. shipped and cancelled are terminal for the owner; admin status
// overwrites are not routed through this check.
func (s Status) Cancellable() bool {
	return s == StatusPending || s == StatusProcessing
}

package interfaces

// ProducerHandler publishes domain events. Implementations must be safe to
// call with a nil receiver so event publishing stays optional.
type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}

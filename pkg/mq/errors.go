package mq

// TempError marks an error as transient so the consumer requeues the delivery
// instead of dropping it. Business failures must not be wrapped; redelivery is
// reserved for infrastructure faults.
type TempError struct {
	Err error
}

func (e TempError) Error() string {
	return e.Err.Error()
}

func (e TempError) Unwrap() error {
	return e.Err
}

func (e TempError) Temporary() bool {
	return true
}

func Temporary(err error) error {
	return TempError{Err: err}
}

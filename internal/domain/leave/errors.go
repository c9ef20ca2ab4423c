package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("Leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("Leave request already processed")
)

package recognition

import "errors"

var (
	// ErrUnresolvedIdentity means the authenticated caller has no backing
	// employee record. Creation fails with it; query paths degrade to empty
	// results instead.
	ErrUnresolvedIdentity = errors.New("recognition: sender has no employee record")
	ErrSelfRecognition    = errors.New("recognition: sender and recipient must differ")
	ErrUnknownRecipient   = errors.New("recognition: recipient not found")
	ErrInvalidVisibility  = errors.New("recognition: invalid visibility")
)

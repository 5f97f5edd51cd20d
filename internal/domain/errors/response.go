package errors

// ErrorBody is the JSON shape of every client-visible error.
type ErrorBody struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

// Body renders an AppError for the client. Internal failures collapse to a
// generic body so no detail about the cause is exposed.
func Body(err AppError) ErrorBody {
	if err.HTTPCode() >= 500 {
		return ErrorBody{
			Code:    err.HTTPCode(),
			Reason:  ErrInternalError.ErrorCode(),
			Message: ErrInternalError.Message(),
		}
	}

	body := ErrorBody{
		Code:    err.HTTPCode(),
		Reason:  err.ErrorCode(),
		Message: err.Message(),
	}
	if located, ok := err.(interface{ Location() string }); ok {
		body.Location = located.Location()
	}

	return body
}

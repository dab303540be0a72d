// Package httpresp defines the success/error envelope returned by upstream calls.
//
// Response is closed: only Success and Failure implement it, so Match covers
// every case.
package httpresp

// Response is either a Success carrying data or a Failure carrying an error
// message and details.
type Response[T any] interface {
	isResponse()
}

// Success carries the payload of a successful call.
type Success[T any] struct {
	Data T `json:"data"`
}

// Failure carries a human-readable message and opaque details.
type Failure struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (Success[T]) isResponse() {}
func (Failure) isResponse()    {}

// Ok wraps data in a Success response.
func Ok[T any](data T) Response[T] {
	return Success[T]{Data: data}
}

// Fail builds a Failure response for any payload type.
func Fail[T any](message string, details any) Response[T] {
	return Failure{Message: message, Details: details}
}

// Match calls onSuccess or onFailure depending on the variant of resp.
// A nil resp is treated as a Failure.
func Match[T any](resp Response[T], onSuccess func(T), onFailure func(Failure)) {
	switch r := resp.(type) {
	case Success[T]:
		onSuccess(r.Data)
	case Failure:
		onFailure(r)
	default:
		onFailure(Failure{Message: "empty response"})
	}
}

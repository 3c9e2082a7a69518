package models

// ToastKind selects the icon/colour the display layer renders.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
	ToastLoading ToastKind = "loading"
)

// Toast is a transient user notification. ID is a millisecond timestamp,
// unique per emitter.
type Toast struct {
	ID      int64     `json:"id"`
	Message string    `json:"message"`
	Kind    ToastKind `json:"kind"`
}

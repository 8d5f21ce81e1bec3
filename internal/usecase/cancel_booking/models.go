package cancel_booking

// Request модель запроса на отмену записи
type Request struct {
	SlotID     int64
	Enrollment string
}

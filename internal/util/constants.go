package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	// ContextUserKey holds the *Claims of an authenticated request.
	ContextUserKey = "user"

	IdempotencyHeader = "Idempotency-Key"
)

const MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

package util

const TimeFormat = "2006-01-02 15:04:05"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
	StorageS3    = "s3"
)

const (
	MimeImage = "image/"
	MimePDF   = "application/pdf"
)

// Upper bound for images attached to a doubt question.
const MaxDoubtImageBytes = 4 << 20

package logger

// Standard field keys for structured logging across the ingestion service.
// Use these consistently so log aggregation queries stay stable across call sites.
const (
	KeyRequestID = "request_id"
	KeyUserID    = "user_id"
	KeyClientID  = "client_id"
	KeyOpType    = "op_type"
	KeySeqNo     = "seq_no"
	KeyBatchSize = "batch_size"
	KeyDuration  = "duration"
	KeyMethod    = "method"
	KeyPath      = "path"
	KeyStatus    = "status"
)

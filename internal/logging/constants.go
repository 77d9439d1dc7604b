package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldSource      = "source"
	FieldMessageType = "message_type"
	FieldStrategy    = "strategy"
	FieldBlocks      = "blocks"
	FieldBlockIndex  = "block"
	FieldReason      = "reason"
	FieldCode        = "code"
	FieldReader      = "reader"
	FieldRunID       = "run_id"
	FieldWorkers     = "workers"
	FieldFormat      = "format"
	FieldDirection   = "direction"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldDelimiter   = "delimiter"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldUnmapped    = "unmapped"
	FieldEmpty       = "empty"
)

package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldMethod       = "method"
	FieldDuration     = "duration_ms"
	FieldStatusCode   = "status_code"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldRunID        = "run_id"
	FieldRunNumber    = "run_number"
	FieldMonths       = "months"
	FieldFrequency    = "frequency"
	FieldFinalBalance = "final_balance"
	FieldCacheKey     = "cache_key"
	FieldCacheHit     = "cache_hit"
	FieldAddr         = "addr"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentGRPC       = "grpc"
	ComponentProjection = "projection"
	ComponentCache      = "cache"
	ComponentTelemetry  = "telemetry"
	ComponentConsole    = "console"
)

// Operations defines standard operation names
const (
	OpProject  = "project"
	OpConvert  = "convert_rate"
	OpList     = "list_runs"
	OpGet      = "get_run"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

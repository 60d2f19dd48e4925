package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldUserAgent   = "user_agent"
	FieldError       = "error"
	FieldExpenseID   = "expense_id"
	FieldPayer       = "payer"
	FieldAmountCents = "amount_cents"
	FieldChange      = "change"
	FieldCount       = "count"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentExpense = "expense"
	ComponentLedger  = "ledger"
	ComponentStore   = "store"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
)

package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldMethod    = "method"
	FieldDuration  = "duration_ms"
	FieldRevision  = "revision"
	FieldAreas     = "areas"
	FieldEntryID   = "entry_id"
	FieldExpenseID = "expense_id"
	FieldBank      = "bank"
	FieldBackend   = "backend"
	FieldCount     = "count"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentGRPC       = "grpc"
	ComponentStore      = "store"
	ComponentStorage    = "storage"
	ComponentAMQP       = "amqp"
	ComponentImport     = "import"
	ComponentInvestment = "investment"
	ComponentExpense    = "expense"
	ComponentDashboard  = "dashboard"
	ComponentCLI        = "cli"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpLoad     = "load"
	OpSave     = "save"
	OpImport   = "import"
	OpExport   = "export"
	OpPublish  = "publish"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

package errors

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

// Registered error codes.
const (
	// Configuration (E100-E199)
	ConfigRead     = "E101"
	ConfigParse    = "E102"
	ConfigInvalid  = "E103"
	ConfigLogLevel = "E104"

	// Protocol (E200-E299)
	ProtocolFrame     = "E201"
	ProtocolHandshake = "E202"
	ProtocolEvent     = "E203"

	// Transport (E300-E399)
	TransportListen  = "E301"
	TransportUpgrade = "E302"
	TransportSession = "E303"

	// Export (E400-E499)
	ExportRender  = "E401"
	ExportUpload  = "E402"
	ExportNoCreds = "E403"
	ExportBucket  = "E404"
)

// registry maps error codes to their templates.
var registry = map[string]Template{
	ConfigRead: {
		Category:   CategoryConfig,
		Message:    "Cannot read configuration file",
		Suggestion: "Check the --config path and file permissions.",
	},
	ConfigParse: {
		Category:   CategoryConfig,
		Message:    "Invalid YAML in configuration file",
		Suggestion: "Durations use Go syntax, e.g. 30s or 5m.",
	},
	ConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},
	ConfigLogLevel: {
		Category:   CategoryConfig,
		Message:    "Unknown log level",
		Suggestion: "Use one of debug, info, warn, error.",
	},
	ProtocolFrame: {
		Category: CategoryProtocol,
		Message:  "Malformed frame",
	},
	ProtocolHandshake: {
		Category:   CategoryProtocol,
		Message:    "Handshake failed",
		Suggestion: "Reload the page to obtain a fresh session.",
	},
	ProtocolEvent: {
		Category: CategoryProtocol,
		Message:  "Malformed event",
	},
	TransportListen: {
		Category:   CategoryTransport,
		Message:    "Cannot listen on address",
		Suggestion: "Pick another --addr or stop the process holding the port.",
	},
	TransportUpgrade: {
		Category: CategoryTransport,
		Message:  "WebSocket upgrade failed",
	},
	TransportSession: {
		Category: CategoryTransport,
		Message:  "Session unavailable",
	},
	ExportRender: {
		Category: CategoryExport,
		Message:  "Cannot render snapshot",
	},
	ExportUpload: {
		Category: CategoryExport,
		Message:  "Snapshot upload failed",
	},
	ExportNoCreds: {
		Category:   CategoryExport,
		Message:    "AWS credentials not found",
		Suggestion: "Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.",
	},
	ExportBucket: {
		Category:   CategoryExport,
		Message:    "No bucket configured",
		Suggestion: "Pass --bucket or set export.bucket in withhover.yaml.",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

package logger

// Error chain helpers exported for white-box tests.
var (
	CollectErrorChain = collectErrorChain
	FormatErrorChain  = formatErrorChain
)

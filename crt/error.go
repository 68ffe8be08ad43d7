package crt

// NotFoundError - Custom error to inform that a search completed without recovering a plaintext.
// Given the probabilistic coverage of a rainbow table this is a normal outcome, not a system fault.
type NotFoundError struct {
	msg string
}

// Error - Used to notify that no plaintext was recovered
func (E NotFoundError) Error() string {
	if E.msg == "" {
		return "no plaintext found"
	}
	return E.msg
}

// FormatError - Custom error to inform that external input didn't conform with expected format, such as
// a table file with a size inconsistent with its header, or a digest given in malformed hex.
type FormatError struct {
	msg string
}

// Error - Used to notify that input didn't conform with expected format
func (E FormatError) Error() string {
	if E.msg == "" {
		return "format error"
	}
	return E.msg
}

// NewFormatError - Returns a FormatError carrying a message
func NewFormatError(msg string) FormatError {
	return FormatError{msg: msg}
}

// ConfigError - Custom error to inform that given configuration can not produce a valid rainbow table,
// such as an unsupported plaintext length or chain parameters resulting in zero chains or columns.
type ConfigError struct {
	msg string
}

// Error - Used to notify that configuration is invalid
func (E ConfigError) Error() string {
	if E.msg == "" {
		return "invalid configuration"
	}
	return E.msg
}

// NewConfigError - Returns a ConfigError carrying a message
func NewConfigError(msg string) ConfigError {
	return ConfigError{msg: msg}
}

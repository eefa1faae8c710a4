// Package diag implements the assembler's diagnostics: a closed
// enumeration of errors and warnings, each carrying its fixed message
// text and the context fields it needs, plus a Reporter that formats
// them to a diagnostics stream with optional severity coloring.
package diag

import "fmt"

// Code identifies one diagnostic in the closed catalog below. The
// numbering matches the original error/warning catalog so that anyone
// cross-referencing a saved log against the source finds the same
// ordinal.
type Code int

const (
	ErrIllegalLabel Code = iota + 1
	ErrDuplicateSymbol
	ErrUnknownCommand
	ErrMissingColon
	ErrMissingOperandComma
	ErrExcessiveText
	ErrTooFewParameters
	ErrBadInputOperandType
	ErrBadOutputOperandType
	ErrNotALegalNumber
	ErrLabelTooLong
	ErrLabelMustStartWithLetter
	ErrLabelIllegalCharacters
	ErrMissingCommaBetweenNumbers
	ErrIllegalCharacter
	ErrExcessiveTrailingComma
	ErrStringMissingOpenQuote
	ErrStringMissingCloseQuote
	ErrExcessiveTextAfterString
	ErrIllegalCharacterDetected
	ErrEmptyStructDefinition
	ErrMissingNumberDefinition
	ErrStructNumberMissingComma
	ErrEntryExternAlreadyExists
	ErrEmptyNumbersList
	ErrUndeclaredVariable
	ErrNotDataOrExternType
	ErrNotAStructure
	ErrLabelDoesNotExist
	ErrLabelNotDataType
	ErrLabelFollowedByEmptyText
	ErrEmptyStringDefinition
)

const (
	WarnImmediateWontFit8 Code = iota + 1
	WarnLabelIgnoredWithEntryExtern
	WarnValueWontFit10
)

// errorText holds the verbatim catalog message for each error code.
var errorText = map[Code]string{
	ErrIllegalLabel:                 "is an illegal label.",
	ErrDuplicateSymbol:              "such symbol already exists.",
	ErrUnknownCommand:               "is an unknown command.",
	ErrMissingColon:                 "is missing a colon \":\".",
	ErrMissingOperandComma:          "operands should be separated with commas.",
	ErrExcessiveText:                "excessive text at the end of line.",
	ErrTooFewParameters:             "too few parameters.",
	ErrBadInputOperandType:          "incorrect input operand type.",
	ErrBadOutputOperandType:         "incorrect output operand type.",
	ErrNotALegalNumber:              "is not a legal number.",
	ErrLabelTooLong:                 "label name has too many characters.",
	ErrLabelMustStartWithLetter:     "label name should start with a letter.",
	ErrLabelIllegalCharacters:       "label contains illegal characters.",
	ErrMissingCommaBetweenNumbers:   "missing comma between numbers.",
	ErrIllegalCharacter:             "illegal character.",
	ErrExcessiveTrailingComma:       "excessive comma at the end of numbers list.",
	ErrStringMissingOpenQuote:       "string definition is missing opening double quotes.",
	ErrStringMissingCloseQuote:      "string definition is missing closing double quotes.",
	ErrExcessiveTextAfterString:     "excessive text following string definition.",
	ErrIllegalCharacterDetected:     "illegal character detected.",
	ErrEmptyStructDefinition:        "empty structure definition.",
	ErrMissingNumberDefinition:      "missing number definition.",
	ErrStructNumberMissingComma:     "number in structure definition should be followed by a comma.",
	ErrEntryExternAlreadyExists:     "entry/extern declaration error: such label already exists.",
	ErrEmptyNumbersList:             "numbers list is empty.",
	ErrUndeclaredVariable:           "undeclared variable.",
	ErrNotDataOrExternType:          "operand is not of data/extern type.",
	ErrNotAStructure:                "operand is not a structure.",
	ErrLabelDoesNotExist:            "the specified label does not exist.",
	ErrLabelNotDataType:             "the specified label is not of data type.",
	ErrLabelFollowedByEmptyText:     "the label was followed by empty text.",
	ErrEmptyStringDefinition:        "the string definition is empty.",
}

var warningText = map[Code]string{
	WarnImmediateWontFit8:           "value will not fit in 8 bits.",
	WarnLabelIgnoredWithEntryExtern: "line opening label will be ignored with \".entry\"/\".extern\" declarations.",
	WarnValueWontFit10:              "value will not fit in 10 bits.",
}

// Severity distinguishes an Error (suppresses output) from a Warning
// (noted, output still produced).
type Severity int

const (
	Error Severity = iota
	Warning
)

// Diagnostic is one reported error or warning: a code, its severity,
// the source line it refers to, and the optional token or symbol name
// that triggered it.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Line     int
	Token    string // optional; empty if the message has no offending token
	HasToken bool
}

// displayWidth is the token length above which a diagnostic truncates
// the offending label to its first 5 characters plus "...".
const displayWidth = 5

func truncateToken(s string) string {
	if len(s) <= displayWidth {
		return s
	}
	return s[:displayWidth] + "..."
}

// NewError builds an Error diagnostic with no offending token.
func NewError(line int, code Code) Diagnostic {
	return Diagnostic{Severity: Error, Code: code, Line: line}
}

// NewErrorToken builds an Error diagnostic carrying the offending token
// or symbol name, truncated per display rules.
func NewErrorToken(line int, code Code, token string) Diagnostic {
	return Diagnostic{Severity: Error, Code: code, Line: line, Token: truncateToken(token), HasToken: true}
}

// NewWarning builds a Warning diagnostic with no offending token.
func NewWarning(line int, code Code) Diagnostic {
	return Diagnostic{Severity: Warning, Code: code, Line: line}
}

// NewWarningToken builds a Warning diagnostic carrying an offending
// value's text representation (e.g. an out-of-range number).
func NewWarningToken(line int, code Code, token string) Diagnostic {
	return Diagnostic{Severity: Warning, Code: code, Line: line, Token: truncateToken(token), HasToken: true}
}

// text returns the fixed catalog message for d.
func (d Diagnostic) text() string {
	if d.Severity == Warning {
		return warningText[d.Code]
	}
	return errorText[d.Code]
}

// String formats d the way the original catalog printer does: a label
// ("Error"/"Warning"), the line number, the quoted offending token (if
// any), and the fixed message.
func (d Diagnostic) String() string {
	label := "Error"
	if d.Severity == Warning {
		label = "Warning"
	}
	if d.HasToken {
		return fmt.Sprintf("%s, line %d: \"%s\" %s", label, d.Line, d.Token, d.text())
	}
	return fmt.Sprintf("%s, line %d: %s", label, d.Line, d.text())
}

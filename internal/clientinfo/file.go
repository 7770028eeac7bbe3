package clientinfo

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Input validation failure kinds. Match with errors.Is.
var (
	ErrTooManyInputs  = eris.New("too many input files")
	ErrFileNotFound   = eris.New("input file not found")
	ErrNotCSV         = eris.New("input file is not csv")
	ErrHeaderMismatch = eris.New("input header mismatch")
)

// ValidationError is a file-level failure. Error returns the user-facing message.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Kind }

// ValidateInputs checks the paths supplied on the command line. No paths is valid.
// Otherwise there must be exactly one path naming an existing .csv file whose first
// row equals Header.
func ValidateInputs(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if len(paths) > 1 {
		return &ValidationError{Kind: ErrTooManyInputs, Message: "Only accept 1 input file"}
	}

	path := paths[0]
	if err := validateInputFile(path); err != nil {
		return err
	}
	return validateInputHeader(path)
}

func validateInputFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return &ValidationError{Kind: ErrFileNotFound, Message: "Cannot find file " + path}
	}
	if filepath.Ext(path) != ".csv" {
		return &ValidationError{Kind: ErrNotCSV, Message: "Please provide a CSV file"}
	}
	return nil
}

func validateInputHeader(path string) error {
	record, err := readFirstRecord(path)
	if err != nil {
		zap.L().Debug("clientinfo: unreadable header", zap.String("path", path), zap.Error(err))
	}
	if err == nil && isHeader(record) {
		return nil
	}
	return &ValidationError{Kind: ErrHeaderMismatch, Message: "Header should same as " + headerList()}
}
